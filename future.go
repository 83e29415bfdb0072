// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Future is a single-assignment result cell.
// The first Resolve or Reject wins; later calls report false.
// Future is safe for concurrent use.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewFuture returns a pending future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future completed with v.
func Resolved[T any](v T) *Future[T] {
	f := NewFuture[T]()
	f.Resolve(v)
	return f
}

// Rejected returns a future failed with err.
func Rejected[T any](err error) *Future[T] {
	f := NewFuture[T]()
	f.Reject(err)
	return f
}

// Resolve completes f with v. It reports whether f was still pending.
func (f *Future[T]) Resolve(v T) bool {
	ok := false
	f.once.Do(func() {
		f.value = v
		ok = true
		close(f.done)
	})
	return ok
}

// Reject fails f with err. It reports whether f was still pending.
func (f *Future[T]) Reject(err error) bool {
	ok := false
	f.once.Do(func() {
		f.err = err
		ok = true
		close(f.done)
	})
	return ok
}

// Done returns a channel closed once f completes.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await blocks until f completes or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	if f.completed() {
		return f.value, f.err
	}
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) completed() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// FutureMonad is the [Monad] instance for *Future[Erased].
//
// Each step waits for the previous future before starting the next, so
// commands run strictly in order. Once Ctx is done the fold stops, the
// remaining continuation is discarded and the result fails with Ctx.Err().
// A nil Ctx means context.Background().
type FutureMonad struct {
	Ctx context.Context
}

func (m FutureMonad) ctx() context.Context {
	if m.Ctx == nil {
		return context.Background()
	}
	return m.Ctx
}

func (FutureMonad) Unit(a Erased) *Future[Erased] { return Resolved(a) }

func (FutureMonad) Fail(err error) *Future[Erased] { return Rejected[Erased](err) }

func (m FutureMonad) Bind(fut *Future[Erased], f func(Erased) *Future[Erased]) *Future[Erased] {
	if fut.completed() {
		if fut.err != nil {
			return Rejected[Erased](fut.err)
		}
		return f(fut.value)
	}
	ctx := m.ctx()
	out := NewFuture[Erased]()
	go func() {
		v, err := fut.Await(ctx)
		if err != nil {
			out.Reject(err)
			return
		}
		v, err = f(v).Await(ctx)
		if err != nil {
			out.Reject(err)
			return
		}
		out.Resolve(v)
	}()
	return out
}

func (m FutureMonad) TailRec(seed Erased, f func(Erased) *Future[Erased]) *Future[Erased] {
	ctx := m.ctx()
	out := NewFuture[Erased]()
	go func() {
		for {
			if err := ctx.Err(); err != nil {
				out.Reject(err)
				return
			}
			v, err := f(seed).Await(ctx)
			if err != nil {
				out.Reject(err)
				return
			}
			next, done, more := loopStep(v)
			if !more {
				out.Resolve(done)
				return
			}
			seed = next
		}
	}()
	return out
}

// GoOption configures [Go].
type GoOption func(*goCompiler)

// WithMaxInFlight bounds the number of commands running at once across all
// programs sharing the compiler. n <= 0 means unbounded, the default.
func WithMaxInFlight(n int64) GoOption {
	return func(c *goCompiler) {
		if n > 0 {
			c.sem = semaphore.NewWeighted(n)
		}
	}
}

// goCompiler runs every command on its own goroutine.
type goCompiler struct {
	ctx context.Context
	in  Interpreter
	sem *semaphore.Weighted
}

// Go turns in into an asynchronous [Compiler]: each command runs on a new
// goroutine and resolves a future. in must be safe for concurrent use when
// the compiler is shared by programs running at the same time.
// Once ctx is done, commands not yet started fail with ctx.Err() without
// touching in. A nil ctx means context.Background().
func Go(ctx context.Context, in Interpreter, opts ...GoOption) Compiler[*Future[Erased]] {
	if ctx == nil {
		ctx = context.Background()
	}
	c := &goCompiler{ctx: ctx, in: in}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *goCompiler) spawn(fn func() (Erased, error)) *Future[Erased] {
	fut := NewFuture[Erased]()
	go func() {
		if c.sem != nil {
			if err := c.sem.Acquire(c.ctx, 1); err != nil {
				fut.Reject(err)
				return
			}
			defer c.sem.Release(1)
		}
		if err := c.ctx.Err(); err != nil {
			fut.Reject(err)
			return
		}
		v, err := fn()
		if err != nil {
			fut.Reject(err)
			return
		}
		fut.Resolve(v)
	}()
	return fut
}

func (c *goCompiler) Put(key string, value any) *Future[Erased] {
	return c.spawn(func() (Erased, error) {
		return Unit{}, c.in.Put(key, value)
	})
}

func (c *goCompiler) Get(key string) *Future[Erased] {
	return c.spawn(func() (Erased, error) {
		return c.in.Get(key)
	})
}

func (c *goCompiler) Delete(key string) *Future[Erased] {
	return c.spawn(func() (Erased, error) {
		return Unit{}, c.in.Delete(key)
	})
}

// RunFuture folds p with c in the future effect. The returned future
// completes with the program's result, or fails with the first command
// error or ctx.Err().
func RunFuture[A any](ctx context.Context, p Program[A], c Compiler[*Future[Erased]]) *Future[A] {
	folded := FoldMap[*Future[Erased], A](p, FutureMonad{Ctx: ctx}, c)
	out := NewFuture[A]()
	go func() {
		v, err := folded.Await(ctx)
		if err != nil {
			out.Reject(err)
			return
		}
		out.Resolve(unerase[A](v))
	}()
	return out
}
