// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

// Program is an immutable description of key/value commands producing A.
//
// A Program is either pure (it holds its result and runs no command) or a
// chain of frames starting somewhere before a command. Programs are plain
// values: building one has no side effects, and a built program may be
// run any number of times.
type Program[A any] struct {
	// value holds the result when frame is returnFrame.
	value A

	// frame holds the remaining frame chain.
	frame frame
}

// IsPure reports whether p runs no command.
func (p Program[A]) IsPure() bool {
	_, ok := p.frame.(returnFrame)
	return ok || p.frame == nil
}

// Value returns the result of a pure program and true,
// or zero and false if p still has frames to evaluate.
func (p Program[A]) Value() (A, bool) {
	if p.IsPure() {
		return p.value, true
	}
	var zero A
	return zero, false
}

// head returns the program's value and frame chain in erased form.
// The zero Program is treated as Pure(zero).
func (p Program[A]) head() (Erased, frame) {
	if p.frame == nil {
		return Erased(p.value), returnFrame{}
	}
	return Erased(p.value), p.frame
}

func erase[A any](p Program[A]) Program[Erased] {
	v, f := p.head()
	return Program[Erased]{value: v, frame: f}
}

// unerase recovers A from an erased result.
// A nil value completes with the zero value of A, so results whose type
// is an interface cannot distinguish nil from zero.
func unerase[A any](v Erased) A {
	if v == nil {
		var zero A
		return zero
	}
	return v.(A)
}

// Pure lifts a value into a program that runs no command.
func Pure[A any](a A) Program[A] {
	return Program[A]{value: a, frame: returnFrame{}}
}

// Perform lifts a single command into a program yielding its result.
//
// Type inference handles calls: Perform(NewGet[int]("k")) infers
// O=GetOp[int], A=Option[int].
func Perform[O Op[O, A], A any](op O) Program[A] {
	var zero A
	return Program[A]{
		value: zero,
		frame: &commandFrame{cmd: op},
	}
}

// Put returns a program storing value under key.
func Put[V any](key string, value V) Program[Unit] {
	return Perform(NewPut(key, value))
}

// Get returns a program looking up key.
// The result is None when key is absent.
func Get[V any](key string) Program[Option[V]] {
	return Perform(NewGet[V](key))
}

// Delete returns a program removing key.
func Delete(key string) Program[Unit] {
	return Perform(NewDelete(key))
}

// AndThen sequences p with the program f builds from p's result.
// If p is pure, f is applied immediately and no frame is emitted.
func AndThen[A, B any](p Program[A], f func(A) Program[B]) Program[B] {
	if p.IsPure() {
		return f(p.value)
	}
	bf := &bindFrame{
		f: func(a Erased) Program[Erased] {
			return erase(f(unerase[A](a)))
		},
	}
	var zero B
	return Program[B]{
		value: zero,
		frame: chainFrames(p.frame, bf),
	}
}

// Map transforms the result of p with f without adding a command.
func Map[A, B any](p Program[A], f func(A) B) Program[B] {
	if p.IsPure() {
		return Pure(f(p.value))
	}
	mf := &mapFrame{
		f: func(a Erased) Erased {
			return f(unerase[A](a))
		},
	}
	var zero B
	return Program[B]{
		value: zero,
		frame: chainFrames(p.frame, mf),
	}
}

// Then sequences p before q, discarding p's result.
func Then[A, B any](p Program[A], q Program[B]) Program[B] {
	if p.IsPure() {
		return q
	}
	tf := &thenFrame{second: erase(q)}
	var zero B
	return Program[B]{
		value: zero,
		frame: chainFrames(p.frame, tf),
	}
}
