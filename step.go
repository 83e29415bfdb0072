// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

import "sync/atomic"

// Stepping boundary for external drivers.
// Step yields control at each command, unlike Run which folds through an
// Interpreter to completion.

// Suspension is a program stopped at a command.
// It holds the pending command and a one-shot resumption handle.
//
// Suspension enforces affine semantics: Resume may be called at most once.
// Calling Resume twice panics. Use Discard to explicitly abandon a suspension.
type Suspension[A any] struct {
	used atomic.Uintptr
	cmd  Command
	rest frame
}

// Command returns the command the program is waiting on.
func (s *Suspension[A]) Command() Command { return s.cmd }

// Resume answers the pending command with r and runs the program to its
// next command or to completion. It returns (value, nil, nil) on completion,
// (zero, next, nil) when suspended again, or the decode error for r.
// Put and Delete ignore r.
// Panics if the suspension has already been resumed or discarded.
func (s *Suspension[A]) Resume(r Reply) (A, *Suspension[A], error) {
	if s.used.Add(1) != 1 {
		panic("kvdsl: suspension resumed twice")
	}
	return s.resume(r)
}

// TryResume is like Resume but returns [ErrSuspensionUsed] instead of
// panicking when the suspension was already used.
func (s *Suspension[A]) TryResume(r Reply) (A, *Suspension[A], error) {
	if s.used.Add(1) != 1 {
		var zero A
		return zero, nil, ErrSuspensionUsed
	}
	return s.resume(r)
}

// Discard marks the suspension as consumed without resuming.
// The rest of the program is dropped.
func (s *Suspension[A]) Discard() {
	if s.used.CompareAndSwap(0, 1) {
		s.rest = nil
	}
}

func (s *Suspension[A]) resume(r Reply) (A, *Suspension[A], error) {
	v, err := s.cmd.decode(r)
	if err != nil {
		var zero A
		return zero, nil, err
	}
	a, next := stepFrom[A](v, s.rest)
	return a, next, nil
}

// Step runs p until it either completes or reaches a command.
// Returns (value, nil) if the program completed, or (zero, suspension) if pending.
//
// Example:
//
//	var err error
//	result, susp := Step(prog)
//	for susp != nil && err == nil {
//	    reply := answer(susp.Command())
//	    result, susp, err = susp.Resume(reply)
//	}
func Step[A any](p Program[A]) (A, *Suspension[A]) {
	current, f := p.head()
	return stepFrom[A](current, f)
}

func stepFrom[A any](current Erased, f frame) (A, *Suspension[A]) {
	v, y := advance(current, f)
	if y != nil {
		var zero A
		return zero, &Suspension[A]{cmd: y.cmd, rest: y.rest}
	}
	return unerase[A](v), nil
}
