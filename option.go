// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

import "fmt"

// Option is the result of a Get: a value, or nothing when the key is absent.
type Option[A any] struct {
	ok    bool
	value A
}

// Some wraps a present value.
func Some[A any](a A) Option[A] {
	return Option[A]{ok: true, value: a}
}

// None returns the absent value.
func None[A any]() Option[A] {
	return Option[A]{}
}

// IsSome reports whether a value is present.
func (o Option[A]) IsSome() bool { return o.ok }

// IsNone reports whether the value is absent.
func (o Option[A]) IsNone() bool { return !o.ok }

// Get returns the value and true, or zero and false.
func (o Option[A]) Get() (A, bool) {
	return o.value, o.ok
}

// GetOrElse returns the value, or def when absent.
func (o Option[A]) GetOrElse(def A) A {
	if o.ok {
		return o.value
	}
	return def
}

func (o Option[A]) String() string {
	if o.ok {
		return fmt.Sprintf("Some(%v)", o.value)
	}
	return "None"
}

// MapOption applies f to a present value.
func MapOption[A, B any](o Option[A], f func(A) B) Option[B] {
	if o.ok {
		return Some(f(o.value))
	}
	return None[B]()
}
