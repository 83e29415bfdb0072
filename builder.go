// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

// Derived builders. Each is expressed with AndThen and Map only.

// Update applies f to the value stored under key and writes the result back.
// An absent key is left untouched.
func Update[V any](key string, f func(V) V) Program[Unit] {
	return AndThen(Get[V](key), func(o Option[V]) Program[Unit] {
		if v, ok := o.Get(); ok {
			return Put(key, f(v))
		}
		return Pure(Unit{})
	})
}

// GetOr looks up key, yielding def when the key is absent.
func GetOr[V any](key string, def V) Program[V] {
	return Map(Get[V](key), func(o Option[V]) V {
		return o.GetOrElse(def)
	})
}

// list is a persistent stack used by Sequence.
// Runs never share a mutable buffer, so a sequenced program can be re-run.
type list[A any] struct {
	head A
	tail *list[A]
	n    int
}

func (l *list[A]) slice() []A {
	if l == nil {
		return []A{}
	}
	out := make([]A, l.n)
	for i := l.n - 1; l != nil; i, l = i-1, l.tail {
		out[i] = l.head
	}
	return out
}

// Sequence runs ps in order and collects their results.
func Sequence[A any](ps ...Program[A]) Program[[]A] {
	acc := Pure[*list[A]](nil)
	for _, p := range ps {
		acc = AndThen(acc, func(l *list[A]) Program[*list[A]] {
			return Map(p, func(a A) *list[A] {
				n := 1
				if l != nil {
					n = l.n + 1
				}
				return &list[A]{head: a, tail: l, n: n}
			})
		})
	}
	return Map(acc, (*list[A]).slice)
}
