// Package compressor implements the pluggable byte-stream compression
// port used both for whole-container file I/O and for the inner body of
// a CompressedObject tag (spec.md §4.5).
package compressor

import (
	"fmt"
	"io"
	"sync"
)

// WriteCloser is a compressing sink. Close must be called to flush any
// trailer bytes the format requires (spec.md §4.5's finalization
// contract); callers must not treat a bare io.Writer as sufficient.
type WriteCloser interface {
	io.Writer
	io.Closer
}

// Compressor is a named pair of streaming adapters. Implementations must
// be safe for concurrent use across distinct streams (but need not
// support concurrent use of a single wrapped stream).
type Compressor interface {
	// Name is the identifier stored in a CompressedObject tag's
	// compressor-name header, and the key used to look the instance up
	// in the registry.
	Name() string

	// WrapReader returns a decompressing reader over source. The
	// returned reader's Close releases any resources; it does not close
	// source itself unless the implementation documents otherwise.
	WrapReader(source io.Reader) (io.ReadCloser, error)

	// WrapWriter returns a compressing writer over sink. Close must be
	// called to flush trailers.
	WrapWriter(sink io.Writer) (WriteCloser, error)
}

var (
	mu       sync.RWMutex
	registry = map[string]Compressor{}
)

func init() {
	Register(Identity)
	Register(GZIP)
	Register(Zlib)
	Register(Zstd)
	Register(LZ4)
}

// Register adds c to the process-wide registry under c.Name(), replacing
// any previous entry with that name. Built-ins are registered by this
// package's init(); callers add custom compressors the same way.
func Register(c Compressor) {
	mu.Lock()
	defer mu.Unlock()
	registry[c.Name()] = c
}

// Lookup returns the Compressor registered under name, if any.
func Lookup(name string) (Compressor, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := registry[name]
	return c, ok
}

// Names returns the names of all currently registered compressors.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// ErrUnknown is returned (wrapped with the requested name) by callers
// that need an error rather than a (Compressor, bool) pair; the ods
// package wraps Lookup misses in its own UnknownCompressorError instead
// of using this directly, but it's exposed for standalone callers of
// this package.
type ErrUnknown struct{ Name string }

func (e *ErrUnknown) Error() string {
	return fmt.Sprintf("compressor: no compressor registered under name %q", e.Name)
}
