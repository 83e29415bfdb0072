// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl_test

import (
	"context"
	"strconv"
	"testing"

	"code.hybscloud.com/kvdsl"
)

const deepN = 100_000

// leftNested builds ((put >>= put) >>= put) ... by folding AndThen over
// the accumulated program, then reads the counter.
func leftNested(n int) kvdsl.Program[kvdsl.Option[int]] {
	p := kvdsl.Put("n", 0)
	for i := 1; i < n; i++ {
		p = kvdsl.AndThen(p, func(kvdsl.Unit) kvdsl.Program[kvdsl.Unit] {
			return kvdsl.Put("n", i)
		})
	}
	return kvdsl.Then(p, kvdsl.Get[int]("n"))
}

// rightNested builds put >>= (put >>= (put ...)) lazily inside continuations.
func rightNested(i, n int) kvdsl.Program[int] {
	if i == n {
		return kvdsl.GetOr("n", -1)
	}
	return kvdsl.AndThen(kvdsl.Update("n", func(x int) int { return x + 1 }), func(kvdsl.Unit) kvdsl.Program[int] {
		return rightNested(i+1, n)
	})
}

func TestRunLeftNestedStackSafe(t *testing.T) {
	got, err := kvdsl.Run(leftNested(deepN), kvdsl.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	mustSome(t, got, deepN-1)
}

func TestRunRightNestedStackSafe(t *testing.T) {
	in := kvdsl.NewMemory()
	in.Store().Store("n", 0)
	got, err := kvdsl.Run(rightNested(0, deepN), in)
	if err != nil {
		t.Fatal(err)
	}
	if got != deepN {
		t.Fatalf("got %d, want %d", got, deepN)
	}
}

func TestRunDeepMapChain(t *testing.T) {
	p := kvdsl.Map(kvdsl.Put("k", 1), func(kvdsl.Unit) int { return 0 })
	for range deepN {
		p = kvdsl.Map(p, func(x int) int { return x + 1 })
	}
	got, err := kvdsl.Run(p, kvdsl.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	if got != deepN {
		t.Fatalf("got %d, want %d", got, deepN)
	}
}

func TestRunDeepThenChain(t *testing.T) {
	p := kvdsl.Put("k", 0)
	for i := 1; i < deepN; i++ {
		p = kvdsl.Then(p, kvdsl.Put("k", i))
	}
	got, err := kvdsl.Run(kvdsl.Then(p, kvdsl.GetOr("k", -1)), kvdsl.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	if got != deepN-1 {
		t.Fatalf("got %d, want %d", got, deepN-1)
	}
}

func TestFoldMapResultStackSafe(t *testing.T) {
	r := kvdsl.RunResult(leftNested(deepN), kvdsl.Lift(kvdsl.NewMemory()))
	got, ok := r.GetRight()
	if !ok {
		e, _ := r.GetLeft()
		t.Fatal(e)
	}
	mustSome(t, got, deepN-1)
}

func TestFoldMapBranchesStackSafe(t *testing.T) {
	outcomes := kvdsl.RunBranches(leftNested(deepN), kvdsl.Replicas(kvdsl.NewMapStore()))
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}
	got, ok := outcomes[0].GetRight()
	if !ok {
		t.Fatal("outcome is Left")
	}
	mustSome(t, got, deepN-1)
}

func TestFoldMapFutureStackSafe(t *testing.T) {
	ctx := context.Background()
	in := kvdsl.NewStoreInterpreter(kvdsl.NewSyncStore())
	got, err := kvdsl.RunFuture(ctx, leftNested(deepN/10), kvdsl.Go(ctx, in)).Await(ctx)
	if err != nil {
		t.Fatal(err)
	}
	mustSome(t, got, deepN/10-1)
}

func TestStepDeepProgram(t *testing.T) {
	store := map[string]any{}
	result, susp := kvdsl.Step(leftNested(deepN))
	steps := 0
	for susp != nil {
		steps++
		var reply kvdsl.Reply
		switch c := susp.Command().(type) {
		case kvdsl.PutOp[int]:
			store[c.Key()] = c.Value()
		case kvdsl.GetOp[int]:
			v, ok := store[c.Key()]
			reply = kvdsl.Reply{Value: v, Found: ok}
		default:
			t.Fatalf("unexpected command %T", c)
		}
		var err error
		result, susp, err = susp.Resume(reply)
		if err != nil {
			t.Fatal(err)
		}
	}
	if steps != deepN+1 {
		t.Fatalf("stepped %d commands, want %d", steps, deepN+1)
	}
	mustSome(t, result, deepN-1)
}

func TestSequenceOrder(t *testing.T) {
	in := kvdsl.NewMemory()
	ps := make([]kvdsl.Program[string], 0, 5)
	for i := range 5 {
		k := strconv.Itoa(i)
		ps = append(ps, kvdsl.Then(kvdsl.Put(k, "v"+k), kvdsl.GetOr(k, "")))
	}
	got, err := kvdsl.Run(kvdsl.Sequence(ps...), in)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"v0", "v1", "v2", "v3", "v4"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSequenceEmpty(t *testing.T) {
	p := kvdsl.Sequence[int]()
	if !p.IsPure() {
		t.Fatal("empty Sequence should be pure")
	}
	got, err := kvdsl.Run(p, kvdsl.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("got %#v, want empty non-nil slice", got)
	}
}

func TestSequenceRerunDoesNotAlias(t *testing.T) {
	in := kvdsl.NewMemory()
	p := kvdsl.Sequence(kvdsl.GetOr("a", 0), kvdsl.GetOr("b", 0))
	first, err := kvdsl.Run(p, in)
	if err != nil {
		t.Fatal(err)
	}
	in.Store().Store("a", 1)
	in.Store().Store("b", 2)
	second, err := kvdsl.Run(p, in)
	if err != nil {
		t.Fatal(err)
	}
	if first[0] != 0 || first[1] != 0 {
		t.Fatalf("first run changed to %v", first)
	}
	if second[0] != 1 || second[1] != 2 {
		t.Fatalf("second run = %v, want [1 2]", second)
	}
}

func TestSequenceLong(t *testing.T) {
	ps := make([]kvdsl.Program[int], deepN)
	for i := range ps {
		ps[i] = kvdsl.Map(kvdsl.Put("k", i), func(kvdsl.Unit) int { return i })
	}
	got, err := kvdsl.Run(kvdsl.Sequence(ps...), kvdsl.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != deepN || got[0] != 0 || got[deepN-1] != deepN-1 {
		t.Fatalf("unexpected sequence result of length %d", len(got))
	}
}
