// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

import (
	"fmt"
	"strconv"
)

// Unit is the result type of commands that produce no information.
type Unit = struct{}

// Kind identifies a command variant.
type Kind uint8

const (
	// KindPut identifies [PutOp].
	KindPut Kind = iota + 1
	// KindGet identifies [GetOp].
	KindGet
	// KindDelete identifies [DeleteOp].
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindPut:
		return "put"
	case KindGet:
		return "get"
	case KindDelete:
		return "delete"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// unknownCommand panics for a command kind outside the grammar.
// Extracted as a noinline function so that dispatch switches remain inlineable.
//
//go:noinline
func unknownCommand(k Kind) {
	panic("kvdsl: unknown command kind " + k.String())
}

// Reply is the raw answer an interpreter gives for a command.
// Put and Delete ignore it. For Get, Found reports whether the key exists
// and Value holds the stored value.
type Reply struct {
	Value any
	Found bool
}

// Command is a single key/value operation.
// The set of implementations is closed: [PutOp], [GetOp] and [DeleteOp].
type Command interface {
	Kind() Kind
	Key() string

	payload() any
	decode(r Reply) (Erased, error)
}

// Op is the F-bounded interface for commands with a statically known result.
// The self-referencing constraint gives the compiler knowledge of both the
// concrete command type and its result type.
type Op[O Op[O, A], A any] interface {
	Command
	OpResult() A // phantom type marker for result
}

// PutOp stores Value under Key.
type PutOp[V any] struct {
	key   string
	value V
}

// NewPut constructs a [PutOp]. It performs no side effect.
func NewPut[V any](key string, value V) PutOp[V] {
	return PutOp[V]{key: key, value: value}
}

func (PutOp[V]) OpResult() Unit { panic("phantom") }

// Kind returns [KindPut].
func (PutOp[V]) Kind() Kind { return KindPut }

// Key returns the target key.
func (o PutOp[V]) Key() string { return o.key }

// Value returns the value to be stored.
func (o PutOp[V]) Value() V { return o.value }

func (o PutOp[V]) String() string { return fmt.Sprintf("put(%q, %v)", o.key, o.value) }

func (o PutOp[V]) payload() any { return o.value }

func (PutOp[V]) decode(Reply) (Erased, error) { return Unit{}, nil }

// GetOp looks up Key, expecting a value of type V.
type GetOp[V any] struct {
	key string
}

// NewGet constructs a [GetOp]. It performs no side effect.
func NewGet[V any](key string) GetOp[V] {
	return GetOp[V]{key: key}
}

func (GetOp[V]) OpResult() Option[V] { panic("phantom") }

// Kind returns [KindGet].
func (GetOp[V]) Kind() Kind { return KindGet }

// Key returns the looked up key.
func (o GetOp[V]) Key() string { return o.key }

func (o GetOp[V]) String() string { return fmt.Sprintf("get(%q)", o.key) }

func (GetOp[V]) payload() any { return nil }

// decode converts a raw reply into Option[V].
// An absent key is None; a present value of another type is a mismatch.
func (o GetOp[V]) decode(r Reply) (Erased, error) {
	if !r.Found {
		return None[V](), nil
	}
	v, ok := r.Value.(V)
	if !ok {
		return nil, mismatch[V](o.key, r.Value)
	}
	return Some(v), nil
}

// DeleteOp removes Key. Deleting an absent key is not an error.
type DeleteOp struct {
	key string
}

// NewDelete constructs a [DeleteOp]. It performs no side effect.
func NewDelete(key string) DeleteOp {
	return DeleteOp{key: key}
}

func (DeleteOp) OpResult() Unit { panic("phantom") }

// Kind returns [KindDelete].
func (DeleteOp) Kind() Kind { return KindDelete }

// Key returns the target key.
func (o DeleteOp) Key() string { return o.key }

func (o DeleteOp) String() string { return fmt.Sprintf("delete(%q)", o.key) }

func (DeleteOp) payload() any { return nil }

func (DeleteOp) decode(Reply) (Erased, error) { return Unit{}, nil }
