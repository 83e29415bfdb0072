// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

// Interpreter executes commands immediately.
//
// There is one method per command variant and no fallback, so an interpreter
// that compiles handles the whole grammar. Side effects happen only here.
type Interpreter interface {
	Put(key string, value any) error
	Get(key string) (Reply, error)
	Delete(key string) error
}

// Interpret is the natural transformation from a command to its result.
// It dispatches cmd to the matching method of in and decodes the reply:
// Unit for Put and Delete, Option[V] for GetOp[V].
func Interpret(in Interpreter, cmd Command) (Erased, error) {
	switch cmd.Kind() {
	case KindPut:
		if err := in.Put(cmd.Key(), cmd.payload()); err != nil {
			return nil, err
		}
		return cmd.decode(Reply{})
	case KindGet:
		r, err := in.Get(cmd.Key())
		if err != nil {
			return nil, err
		}
		return cmd.decode(r)
	case KindDelete:
		if err := in.Delete(cmd.Key()); err != nil {
			return nil, err
		}
		return cmd.decode(Reply{})
	}
	unknownCommand(cmd.Kind())
	return nil, nil
}

// Funcs adapts three functions to an [Interpreter].
// All three must be set.
type Funcs struct {
	PutFunc    func(key string, value any) error
	GetFunc    func(key string) (Reply, error)
	DeleteFunc func(key string) error
}

func (f Funcs) Put(key string, value any) error { return f.PutFunc(key, value) }
func (f Funcs) Get(key string) (Reply, error)   { return f.GetFunc(key) }
func (f Funcs) Delete(key string) error         { return f.DeleteFunc(key) }
