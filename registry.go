package ods

import (
	"sync"

	"github.com/ryandw11/ODS/compressor"
	"github.com/ryandw11/ODS/internal/diag"
)

// CustomTagCodec describes how to encode/decode a user-defined tag type.
// Decode plays the role of the teacher's reflective (name, value)
// constructor requirement (spec.md §7's InvalidCustomTag): if Decode is
// nil, construction is considered unsupported and decoding such a tag
// fails with InvalidCustomTagError rather than UnknownTypeError.
type CustomTagCodec struct {
	TypeName string
	Encode   func(t Tag) ([]byte, error)
	Decode   func(name string, raw []byte) (Tag, error)
}

type customTagEntry struct {
	typ   Type
	codec CustomTagCodec
}

type customTagRegistryT struct {
	mu     sync.RWMutex
	byType map[Type]customTagEntry
}

var customTagRegistry = &customTagRegistryT{byType: map[Type]customTagEntry{}}

func (r *customTagRegistryT) get(typ Type) (customTagEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byType[typ]
	return e, ok
}

// RegisterCustomTag adds a custom tag type to the process-wide registry
// (spec.md §4.7). typ must lie outside the reserved 0..=15 range, or
// ReservedTypeIDError is returned.
func RegisterCustomTag(typ Type, codec CustomTagCodec) error {
	if uint8(typ) <= reservedTypeMax {
		return ReservedTypeIDErrorf("cannot register custom tag under reserved type id %d (0..=%d are reserved)", typ, reservedTypeMax)
	}
	customTagRegistry.mu.Lock()
	defer customTagRegistry.mu.Unlock()
	customTagRegistry.byType[typ] = customTagEntry{typ: typ, codec: codec}
	return nil
}

// RegisterCompressor adds a Compressor to the process-wide registry
// (spec.md §4.5, §4.7), under the name it reports via Name().
func RegisterCompressor(c compressor.Compressor) {
	compressor.Register(c)
}

// LookupCompressor returns the Compressor registered under name.
func LookupCompressor(name string) (compressor.Compressor, bool) {
	return compressor.Lookup(name)
}

// SetTolerantMode is a convenience wrapper that flips the process-wide
// tolerant-parsing flag without replacing the rest of Config.
func SetTolerantMode(enabled bool) {
	cfg := GetConfig()
	cfg.TolerantMode = enabled
	OverrideConfig(cfg)
}

// SetTraceEditor turns the editor's opt-in zap-based splice tracer on or
// off (spec.md §4.1): once enabled, every delete/replace/insert splice
// applied by editor.go logs its key and byte-length delta at Debug.
func SetTraceEditor(enabled bool) error {
	if !enabled {
		diag.Disable()
		return nil
	}
	return diag.Enable()
}
