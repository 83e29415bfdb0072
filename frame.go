// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

// Erased represents a type-erased value in the defunctionalized frame chain.
// Frame types use Erased parameters to process heterogeneous value types
// through a homogeneous evaluation pipeline. Concrete types are recovered
// via type assertions at frame boundaries.
type Erased = any

// frame is the interface for defunctionalized continuation frames.
// Dispatch uses type switches, not tags.
type frame interface {
	frame() // unexported marker method
}

// returnFrame signals completion: the current value is the result.
type returnFrame struct{}

func (returnFrame) frame() {}

// bindFrame feeds the current value to f and continues with its program.
type bindFrame struct {
	f func(Erased) Program[Erased]
}

func (*bindFrame) frame() {}

// mapFrame replaces the current value with f(current).
type mapFrame struct {
	f func(Erased) Erased
}

func (*mapFrame) frame() {}

// thenFrame discards the current value and continues with second.
type thenFrame struct {
	second Program[Erased]
}

func (*thenFrame) frame() {}

// commandFrame suspends on a command. The decoded command result becomes
// the current value of the frames that follow.
type commandFrame struct {
	cmd Command
}

func (*commandFrame) frame() {}

// chainedFrame represents a frame followed by more frames.
// This enables composing frame chains without mutation.
type chainedFrame struct {
	first frame
	rest  frame
}

func (*chainedFrame) frame() {}

// chainFrames links two frame chains together.
// Returns the other operand when either side is returnFrame (the identity
// element for frame composition), avoiding unnecessary chainedFrame allocation.
//
// Construction is O(1): it returns an operand or creates one chainedFrame node.
func chainFrames(first, second frame) frame {
	if _, ok := first.(returnFrame); ok {
		return second
	}
	if _, ok := second.(returnFrame); ok {
		return first
	}
	return &chainedFrame{first: first, rest: second}
}
