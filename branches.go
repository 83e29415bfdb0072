// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

// Branches is the simulation effect: every possible outcome of a step.
// A Left branch is a failed outcome and is never continued.
type Branches = []Either[error, Erased]

// BranchMonad is the [Monad] instance for [Branches].
// Outcomes keep depth-first order: all outcomes of the first branch come
// before those of the second.
type BranchMonad struct{}

func (BranchMonad) Unit(a Erased) Branches { return Branches{Right[error](a)} }

func (BranchMonad) Fail(err error) Branches { return Branches{Left[error, Erased](err)} }

func (BranchMonad) Bind(m Branches, f func(Erased) Branches) Branches {
	out := make(Branches, 0, len(m))
	for _, b := range m {
		v, ok := b.GetRight()
		if !ok {
			out = append(out, b)
			continue
		}
		out = append(out, f(v)...)
	}
	return out
}

// branchWork is an entry of the TailRec work list: either a seed still to
// be stepped or a finished outcome waiting for its turn in the output.
type branchWork struct {
	seed     Erased
	outcome  Either[error, Erased]
	finished bool
}

func (BranchMonad) TailRec(seed Erased, f func(Erased) Branches) Branches {
	var out Branches
	stack := []branchWork{{seed: seed}}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if w.finished {
			out = append(out, w.outcome)
			continue
		}
		bs := f(w.seed)
		// Push in reverse so the first branch is popped first.
		for i := len(bs) - 1; i >= 0; i-- {
			v, ok := bs[i].GetRight()
			if !ok {
				stack = append(stack, branchWork{outcome: bs[i], finished: true})
				continue
			}
			next, done, more := loopStep(v)
			if more {
				stack = append(stack, branchWork{seed: next})
				continue
			}
			stack = append(stack, branchWork{outcome: Right[error](done), finished: true})
		}
	}
	return out
}

// replicas simulates a set of replicated stores.
type replicas struct {
	stores []Store
}

// Replicas returns a simulation [Compiler] over the given stores.
//
// Put and Delete apply to every replica and have a single outcome.
// Get forks one outcome per replica, reading that replica. The replicas are
// shared by all branches, so a write made while exploring one branch is
// visible to the branches explored after it. With no replicas a Get has no
// outcome and the program produces none.
func Replicas(stores ...Store) Compiler[Branches] {
	return replicas{stores: stores}
}

func (r replicas) Put(key string, value any) Branches {
	for _, s := range r.stores {
		s.Store(key, value)
	}
	return Branches{Right[error, Erased](Unit{})}
}

func (r replicas) Get(key string) Branches {
	out := make(Branches, 0, len(r.stores))
	for _, s := range r.stores {
		v, ok := s.Load(key)
		out = append(out, Right[error, Erased](Reply{Value: v, Found: ok}))
	}
	return out
}

func (r replicas) Delete(key string) Branches {
	for _, s := range r.stores {
		s.Delete(key)
	}
	return Branches{Right[error, Erased](Unit{})}
}

// RunBranches folds p with c in the [Branches] effect and returns every
// outcome in depth-first order.
func RunBranches[A any](p Program[A], c Compiler[Branches]) []Either[error, A] {
	bs := FoldMap[Branches, A](p, BranchMonad{}, c)
	out := make([]Either[error, A], len(bs))
	for i, b := range bs {
		out[i] = MapEither(b, unerase[A])
	}
	return out
}
