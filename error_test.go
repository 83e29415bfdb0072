// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl_test

import (
	"context"
	"errors"
	"testing"

	"code.hybscloud.com/kvdsl"
)

// mismatchProgram stores a string and reads it back as an int.
func mismatchProgram(after *bool) kvdsl.Program[int] {
	return kvdsl.AndThen(kvdsl.Then(kvdsl.Put("k", "text"), kvdsl.Get[int]("k")), func(o kvdsl.Option[int]) kvdsl.Program[int] {
		*after = true
		return kvdsl.Pure(o.GetOrElse(0))
	})
}

func TestTypeMismatchRun(t *testing.T) {
	var after bool
	_, err := kvdsl.Run(mismatchProgram(&after), kvdsl.NewMemory())
	if !errors.Is(err, kvdsl.ErrTypeMismatch) {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
	var tm *kvdsl.TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("err = %T, want *TypeMismatchError", err)
	}
	if tm.Key != "k" || tm.Want != "int" || tm.Got != "string" {
		t.Fatalf("got %+v", tm)
	}
	if after {
		t.Fatal("continuation ran after a failed command")
	}
}

func TestTypeMismatchResult(t *testing.T) {
	var after bool
	r := kvdsl.RunResult(mismatchProgram(&after), kvdsl.Lift(kvdsl.NewMemory()))
	err, ok := r.GetLeft()
	if !ok {
		t.Fatal("expected Left")
	}
	if !errors.Is(err, kvdsl.ErrTypeMismatch) {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
	if after {
		t.Fatal("continuation ran after a failed command")
	}
}

func TestTypeMismatchFuture(t *testing.T) {
	var after bool
	ctx := context.Background()
	in := kvdsl.NewStoreInterpreter(kvdsl.NewSyncStore())
	_, err := kvdsl.RunFuture(ctx, mismatchProgram(&after), kvdsl.Go(ctx, in)).Await(ctx)
	if !errors.Is(err, kvdsl.ErrTypeMismatch) {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestTypeMismatchBranches(t *testing.T) {
	var after bool
	outcomes := kvdsl.RunBranches(mismatchProgram(&after), kvdsl.Replicas(kvdsl.NewMapStore()))
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}
	err, ok := outcomes[0].GetLeft()
	if !ok || !errors.Is(err, kvdsl.ErrTypeMismatch) {
		t.Fatalf("outcome = %v, %v; want ErrTypeMismatch", err, ok)
	}
}

func TestInterpreterErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	deletes := 0
	in := kvdsl.Funcs{
		PutFunc:    func(string, any) error { return nil },
		GetFunc:    func(string) (kvdsl.Reply, error) { return kvdsl.Reply{}, boom },
		DeleteFunc: func(string) error { deletes++; return nil },
	}
	prog := kvdsl.Then(kvdsl.Put("k", 1), kvdsl.Then(kvdsl.Get[int]("k"), kvdsl.Delete("k")))
	if _, err := kvdsl.Run(prog, in); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if deletes != 0 {
		t.Fatal("command after the failure was executed")
	}

	r := kvdsl.RunResult(prog, kvdsl.Lift(in))
	if err, ok := r.GetLeft(); !ok || !errors.Is(err, boom) {
		t.Fatalf("Result = %v, %v; want boom", err, ok)
	}
	if deletes != 0 {
		t.Fatal("command after the failure was executed")
	}
}

func TestTypeMismatchErrorMessage(t *testing.T) {
	err := &kvdsl.TypeMismatchError{Key: "k", Want: "int", Got: "string"}
	want := `kvdsl: key "k" holds string, want int`
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestEither(t *testing.T) {
	r := kvdsl.Right[string](21)
	if !r.IsRight() || r.IsLeft() {
		t.Fatal("Right reported as Left")
	}
	doubled := kvdsl.MapEither(r, func(x int) int { return x * 2 })
	if v, _ := doubled.GetRight(); v != 42 {
		t.Fatalf("MapEither = %d, want 42", v)
	}
	l := kvdsl.Left[string, int]("bad")
	chained := kvdsl.FlatMapEither(l, func(x int) kvdsl.Either[string, int] { return kvdsl.Right[string](x) })
	if e, ok := chained.GetLeft(); !ok || e != "bad" {
		t.Fatalf("FlatMapEither on Left = %v, %v", e, ok)
	}
	got := kvdsl.MatchEither(l, func(e string) string { return "L:" + e }, func(int) string { return "R" })
	if got != "L:bad" {
		t.Fatalf("MatchEither = %q", got)
	}
}

// rawGet is a Result compiler whose Get carries the stored value itself
// instead of a Reply.
type rawGet struct{ m kvdsl.MapStore }

func (c rawGet) Put(key string, value any) kvdsl.Result {
	c.m.Store(key, value)
	return kvdsl.Right[error, kvdsl.Erased](kvdsl.Unit{})
}

func (c rawGet) Get(key string) kvdsl.Result {
	v, _ := c.m.Load(key)
	return kvdsl.Right[error, kvdsl.Erased](v)
}

func (c rawGet) Delete(key string) kvdsl.Result {
	c.m.Delete(key)
	return kvdsl.Right[error, kvdsl.Erased](kvdsl.Unit{})
}

func TestFoldMapGetWithoutReplyFails(t *testing.T) {
	prog := kvdsl.Then(kvdsl.Put("k", 1), kvdsl.Get[int]("k"))
	r := kvdsl.RunResult(prog, rawGet{m: kvdsl.NewMapStore()})
	err, ok := r.GetLeft()
	if !ok {
		v, _ := r.GetRight()
		t.Fatalf("got %v, want a failure", v)
	}
	var tm *kvdsl.TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("err = %T, want *TypeMismatchError", err)
	}
	if tm.Key != "k" || tm.Want != "kvdsl.Reply" || tm.Got != "int" {
		t.Fatalf("got %+v", tm)
	}
}
