// Package diag implements opt-in structural-edit trace logging for the
// in-place editor, using go.uber.org/zap the way the corpus reaches for
// zap wherever zerolog's console-oriented writer isn't the fit: high
// frequency, structured, and normally discarded entirely.
package diag

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	mu      sync.Mutex
	tracer  *zap.Logger
	enabled int32
)

// Enable turns on splice tracing with a development zap logger writing
// to stderr. Safe to call more than once.
func Enable() error {
	mu.Lock()
	defer mu.Unlock()
	if tracer != nil {
		atomic.StoreInt32(&enabled, 1)
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	tracer = l
	atomic.StoreInt32(&enabled, 1)
	return nil
}

// Disable suppresses further splice trace entries without discarding the
// underlying logger.
func Disable() {
	atomic.StoreInt32(&enabled, 0)
}

// Enabled reports whether splice tracing is currently active.
func Enabled() bool {
	return atomic.LoadInt32(&enabled) == 1
}

// Splice records one editor operation: the key it targeted, the kind of
// splice applied, and the resulting byte-length delta.
func Splice(op, key string, delta int) {
	if !Enabled() {
		return
	}
	mu.Lock()
	l := tracer
	mu.Unlock()
	if l == nil {
		return
	}
	l.Debug("splice",
		zap.String("op", op),
		zap.String("key", key),
		zap.Int("delta", delta),
	)
}
