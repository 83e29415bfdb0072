// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

import "context"

// frameProcessor is an F-bounded interface for the program evaluation strategies.
// The type parameter P is the concrete processor (self-referential bound), R is the
// result type. Shared frame iteration lives in evalFrames; processors define only
// the commandFrame and returnFrame handling that diverges between runners.
type frameProcessor[P frameProcessor[P, R], R any] interface {
	processCommand(cmd Command, rest frame) (Erased, frame, R, bool)
	processReturn(current Erased) R
}

// evalFrames is the iterative evaluator for program frame chains.
// The processor type P is known at monomorphization time, enabling the compiler to
// devirtualize processCommand/processReturn calls. Two processors:
//   - interpretProcessor: dispatches commandFrame to an Interpreter (Run)
//   - yieldProcessor: stops at commandFrame with a *yield (Step, FoldMap)
//
// Left-nested chains are rotated into right-nested ones one node at a time,
// so neither long sequences nor deep AndThen nesting grow the call stack.
func evalFrames[P frameProcessor[P, R], R any](current Erased, f frame, p P) R {
	for {
		var rest frame = returnFrame{}
		for {
			cf, ok := f.(*chainedFrame)
			if !ok {
				break
			}
			if nested, ok := cf.first.(*chainedFrame); ok {
				f = &chainedFrame{
					first: nested.first,
					rest:  chainFrames(nested.rest, cf.rest),
				}
				continue
			}
			f, rest = cf.first, cf.rest
			break
		}

		switch h := f.(type) {
		case returnFrame:
			if _, ok := rest.(returnFrame); ok {
				return p.processReturn(current)
			}
			f = rest
		case *bindFrame:
			next := h.f(current)
			current = next.value
			f = chainFrames(next.frame, rest)
		case *mapFrame:
			current = h.f(current)
			f = rest
		case *thenFrame:
			current = h.second.value
			f = chainFrames(h.second.frame, rest)
		case *commandFrame:
			next, nextFrame, result, ok := p.processCommand(h.cmd, rest)
			if !ok {
				return result
			}
			current = next
			f = nextFrame
		default:
			panic("kvdsl: unknown frame type")
		}
	}
}

// interpretProcessor dispatches each command to an Interpreter and resumes
// with the decoded result. The first failure is stored in err and stops
// evaluation; the remaining continuation is discarded.
type interpretProcessor struct {
	ctx context.Context
	in  Interpreter
	err *error
}

func (p interpretProcessor) processCommand(cmd Command, rest frame) (Erased, frame, Erased, bool) {
	if err := p.ctx.Err(); err != nil {
		*p.err = err
		return nil, nil, nil, false
	}
	v, err := Interpret(p.in, cmd)
	if err != nil {
		*p.err = err
		return nil, nil, nil, false
	}
	return v, rest, nil, true
}

func (interpretProcessor) processReturn(current Erased) Erased {
	return current
}

// yield is a program stopped at a command. The decoded command result
// resumes evaluation of rest.
type yield struct {
	cmd  Command
	rest frame
}

// yieldProcessor stops at the first commandFrame.
// Returns *yield or the final value via Erased.
type yieldProcessor struct{}

func (yieldProcessor) processCommand(cmd Command, rest frame) (Erased, frame, Erased, bool) {
	return nil, nil, &yield{cmd: cmd, rest: rest}, false
}

func (yieldProcessor) processReturn(current Erased) Erased {
	return current
}

// advance evaluates pure frames from (current, f) until the program either
// completes or reaches a command.
func advance(current Erased, f frame) (Erased, *yield) {
	r := evalFrames(current, f, yieldProcessor{})
	if y, ok := r.(*yield); ok {
		return nil, y
	}
	return r, nil
}
