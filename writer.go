// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

// Call is one command observed by a [Recorder].
type Call struct {
	Kind  Kind
	Key   string
	Value any
}

// Recorder is a no-op interpreter that accumulates the calls it receives.
// It never stores anything, so every Get reports the key as absent.
// It is not safe for concurrent use.
type Recorder struct {
	calls []Call
}

func (r *Recorder) Put(key string, value any) error {
	r.calls = append(r.calls, Call{Kind: KindPut, Key: key, Value: value})
	return nil
}

func (r *Recorder) Get(key string) (Reply, error) {
	r.calls = append(r.calls, Call{Kind: KindGet, Key: key})
	return Reply{}, nil
}

func (r *Recorder) Delete(key string) error {
	r.calls = append(r.calls, Call{Kind: KindDelete, Key: key})
	return nil
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []Call {
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
}
