// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

// Result is the synchronous effect: a value, or the error that stopped the fold.
type Result = Either[error, Erased]

// ResultMonad is the [Monad] instance for [Result].
type ResultMonad struct{}

func (ResultMonad) Unit(a Erased) Result { return Right[error](a) }

func (ResultMonad) Fail(err error) Result { return Left[error, Erased](err) }

func (ResultMonad) Bind(m Result, f func(Erased) Result) Result {
	return FlatMapEither(m, f)
}

func (ResultMonad) TailRec(seed Erased, f func(Erased) Result) Result {
	for {
		r := f(seed)
		v, ok := r.GetRight()
		if !ok {
			return r
		}
		next, done, more := loopStep(v)
		if !more {
			return Right[error](done)
		}
		seed = next
	}
}

// liftCompiler runs an Interpreter inside the Result effect.
type liftCompiler struct{ in Interpreter }

// Lift turns an immediate interpreter into a [Compiler] for [Result].
func Lift(in Interpreter) Compiler[Result] {
	return liftCompiler{in: in}
}

func (c liftCompiler) Put(key string, value any) Result {
	if err := c.in.Put(key, value); err != nil {
		return Left[error, Erased](err)
	}
	return Right[error, Erased](Unit{})
}

func (c liftCompiler) Get(key string) Result {
	r, err := c.in.Get(key)
	if err != nil {
		return Left[error, Erased](err)
	}
	return Right[error, Erased](r)
}

func (c liftCompiler) Delete(key string) Result {
	if err := c.in.Delete(key); err != nil {
		return Left[error, Erased](err)
	}
	return Right[error, Erased](Unit{})
}

// RunResult folds p with c in the [Result] effect.
func RunResult[A any](p Program[A], c Compiler[Result]) Either[error, A] {
	return MapEither(FoldMap[Result, A](p, ResultMonad{}, c), unerase[A])
}
