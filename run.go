// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run folds p through in and returns the program's result.
// The first interpreter error aborts the fold and is returned unchanged.
func Run[A any](p Program[A], in Interpreter) (A, error) {
	return RunContext(context.Background(), p, in)
}

// RunContext is like [Run] but checks ctx before each command.
// Once ctx is done the remaining continuation is discarded and ctx.Err()
// is returned; a command already in progress is not interrupted.
func RunContext[A any](ctx context.Context, p Program[A], in Interpreter) (A, error) {
	var err error
	current, f := p.head()
	v := evalFrames(current, f, interpretProcessor{ctx: ctx, in: in, err: &err})
	if err != nil {
		var zero A
		return zero, err
	}
	return unerase[A](v), nil
}

// RunAll runs independent programs concurrently against in, which must be
// safe for concurrent use (for example a [StoreInterpreter] over a
// [SyncStore]). Results are returned in the order of ps.
// The first failure cancels the programs still running and is returned.
func RunAll[A any](ctx context.Context, in Interpreter, ps ...Program[A]) ([]A, error) {
	out := make([]A, len(ps))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range ps {
		g.Go(func() error {
			v, err := RunContext(ctx, p, in)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
