// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

import (
	"github.com/sirupsen/logrus"
)

// Interpreter decorators. A decorator wraps another Interpreter and forwards
// every command to it, so decorators compose by nesting.

// LogOption configures [Logged].
type LogOption func(*logged)

// WithLevel sets the level successful commands are logged at.
// The default is logrus.DebugLevel. Failures are always logged at warning level.
func WithLevel(level logrus.Level) LogOption {
	return func(l *logged) { l.level = level }
}

// logged decorates an Interpreter with structured logging.
type logged struct {
	in    Interpreter
	log   logrus.FieldLogger
	level logrus.Level
}

// Logged wraps in so that every command is logged to log with the fields
// "op" and "key". Results and errors from in pass through unchanged.
func Logged(in Interpreter, log logrus.FieldLogger, opts ...LogOption) Interpreter {
	l := &logged{in: in, log: log, level: logrus.DebugLevel}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *logged) entry(k Kind, key string) *logrus.Entry {
	return l.log.WithFields(logrus.Fields{"op": k.String(), "key": key})
}

func (l *logged) done(e *logrus.Entry, err error) {
	if err != nil {
		e.WithError(err).Warn("kvdsl: command failed")
		return
	}
	e.Log(l.level, "kvdsl: command")
}

func (l *logged) Put(key string, value any) error {
	err := l.in.Put(key, value)
	l.done(l.entry(KindPut, key), err)
	return err
}

func (l *logged) Get(key string) (Reply, error) {
	r, err := l.in.Get(key)
	l.done(l.entry(KindGet, key).WithField("found", r.Found), err)
	return r, err
}

func (l *logged) Delete(key string) error {
	err := l.in.Delete(key)
	l.done(l.entry(KindDelete, key), err)
	return err
}
