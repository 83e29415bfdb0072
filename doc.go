// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package kvdsl provides a key/value command language whose programs are
// plain data, together with pluggable interpreters and a stack-safe runner.
//
// A [Program] describes a sequence of key/value commands in which each step
// may depend on the result of the previous one. Building a program never
// touches a store: it only produces a defunctionalized frame chain that can
// be inspected, stepped, discarded, or run any number of times.
//
// # Grammar
//
// The command set is closed. Only this package implements [Command]:
//
//   - [PutOp]: store a value under a key, result [Unit]
//   - [GetOp]: look up a key, result [Option]
//   - [DeleteOp]: remove a key, result [Unit]
//
// # Building Programs
//
// Smart constructors lift single commands:
//
//   - [Put], [Get], [Delete]: one-command programs
//   - [Pure]: a program that runs no command
//   - [Perform]: lift an already constructed [Command]
//
// Combinators compose programs without running them:
//
//   - [AndThen]: dependent sequencing, the sole composition primitive
//   - [Map]: transform the eventual result
//   - [Then]: sequence, discarding the first result
//   - [Update], [GetOr], [Sequence]: derived from [AndThen] and [Map]
//
// AndThen on a pure program applies its continuation at build time, so no
// frame is emitted for it.
//
// # Interpreters
//
// An [Interpreter] has one method per command variant. Adding a variant to
// the grammar therefore breaks every interpreter at compile time, and the
// runner's dispatch stays total. [Interpret] is the natural transformation
// from a command to its decoded result.
//
//   - [StoreInterpreter]: immediate interpreter over a [Store]
//   - [Recorder]: records calls, never mutates, reports every key absent
//   - [Logged]: logrus decorator around any interpreter
//
// Interpreters targeting other effect types implement [Compiler] for an
// effect type M and are folded with [FoldMap] and the effect's [Monad]:
//
//   - [Lift] with [ResultMonad]: synchronous, failures as [Either] Left
//   - [Go] with [FutureMonad]: each command resolves a [Future]
//   - [Replicas] with [BranchMonad]: reads fork one branch per replica
//
// # Running Programs
//
//   - [Run], [RunContext]: fold with an [Interpreter]
//   - [FoldMap]: fold into any effect with a [Monad] instance
//   - [RunResult], [RunFuture], [RunBranches]: typed FoldMap wrappers
//   - [RunAll]: run independent programs concurrently
//   - [Step]: one command at a time, for external drivers
//
// Every runner is a trampoline over the frame chain. Neither long command
// sequences nor deeply left-nested [AndThen] chains grow the call stack.
//
// # Errors
//
// A Get for an absent key is not an error; it yields [None]. A stored value
// that cannot be returned as the requested type fails with a
// [*TypeMismatchError] (matching [ErrTypeMismatch]). Runners never catch,
// retry, or substitute defaults for interpreter failures: they surface
// through the effect's own failure channel.
//
// # Example
//
//	prog := kvdsl.Then(
//		kvdsl.Put("k", 2),
//		kvdsl.Then(
//			kvdsl.Update("k", func(x int) int { return x + 10 }),
//			kvdsl.Get[int]("k"),
//		),
//	)
//	v, err := kvdsl.Run(prog, kvdsl.NewMemory())
//	// v == Some(12), err == nil
package kvdsl
