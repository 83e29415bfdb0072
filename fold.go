// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

import "fmt"

// Monad is the effect dictionary an effect type M supplies to [FoldMap].
//
// The successful value of the M returned by the TailRec step function is an
// Either[Erased, Erased]: Left carries the next seed, Right the final value.
type Monad[M any] interface {
	// Unit injects a value into the effect.
	Unit(a Erased) M

	// Bind sequences m with the effect f builds from m's value.
	Bind(m M, f func(Erased) M) M

	// Fail injects a failure into the effect's own error channel.
	Fail(err error) M

	// TailRec iterates f from seed while it yields Left, and returns the
	// first Right. Implementations must not grow the call stack per step.
	TailRec(seed Erased, f func(Erased) M) M
}

// Compiler interprets commands into the effect type M.
//
// Like [Interpreter] it has one method per command variant. The value
// carried by the M from Get must be a [Reply]; the values carried by Put and
// Delete are ignored.
type Compiler[M any] interface {
	Put(key string, value any) M
	Get(key string) M
	Delete(key string) M
}

func compile[M any](c Compiler[M], cmd Command) M {
	switch cmd.Kind() {
	case KindPut:
		return c.Put(cmd.Key(), cmd.payload())
	case KindGet:
		return c.Get(cmd.Key())
	case KindDelete:
		return c.Delete(cmd.Key())
	}
	unknownCommand(cmd.Kind())
	var zero M
	return zero
}

// cursor is a program position between two commands.
type cursor struct {
	current Erased
	frame   frame
}

// FoldMap folds p into the effect M.
//
// Each command is compiled with c, its reply decoded, and the program
// resumed through m.Bind. The loop over commands is m.TailRec, so the fold
// is stack-safe whenever the Monad instance is. A decode failure (such as a
// type mismatch) is injected with m.Fail, as is a Get whose effect carries
// anything other than a [Reply].
func FoldMap[M, A any](p Program[A], m Monad[M], c Compiler[M]) M {
	current, f := p.head()
	return m.TailRec(cursor{current: current, frame: f}, func(s Erased) M {
		at := s.(cursor)
		v, y := advance(at.current, at.frame)
		if y == nil {
			return m.Unit(Right[Erased, Erased](v))
		}
		return m.Bind(compile(c, y.cmd), func(raw Erased) M {
			r, ok := raw.(Reply)
			if !ok && y.cmd.Kind() == KindGet {
				return m.Fail(&TypeMismatchError{Key: y.cmd.Key(), Want: "kvdsl.Reply", Got: fmt.Sprintf("%T", raw)})
			}
			next, err := y.cmd.decode(r)
			if err != nil {
				return m.Fail(err)
			}
			return m.Unit(Left[Erased, Erased](cursor{current: next, frame: y.rest}))
		})
	})
}

// loopStep splits a TailRec step value into the next seed or the final value.
func loopStep(v Erased) (next Erased, done Erased, more bool) {
	step := v.(Either[Erased, Erased])
	if next, ok := step.GetLeft(); ok {
		return next, nil, true
	}
	done, _ = step.GetRight()
	return nil, done, false
}
