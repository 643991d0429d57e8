package ods

import "fmt"

// MalformedError indicates the header fields of a tag were inconsistent,
// or a structured parse underflowed/overflowed its buffer.
type MalformedError struct{ error }

// CompressedTraversalError indicates an attempt to descend by key into a
// CompressedObject tag, which is opaque to the navigator (spec.md §4.2).
type CompressedTraversalError struct{ error }

// UnknownTypeError indicates a type-id with neither a built-in nor a
// registered custom handler, encountered while tolerant mode is off.
type UnknownTypeError struct{ error }

// ReservedTypeIDError indicates an attempt to register a custom tag
// under a type-id reserved for built-ins (0..=15).
type ReservedTypeIDError struct{ error }

// UnknownCompressorError indicates a CompressedObject or container
// referenced a compressor name with no registered instance.
type UnknownCompressorError struct{ error }

// InvalidCustomTagError indicates a custom tag type does not expose the
// required (name, value) two-argument constructor.
type InvalidCustomTagError struct{ error }

// KeyNotFoundError indicates set(key, nil) was called with a key that
// does not resolve to an existing tag.
type KeyNotFoundError struct{ error }

// IOError wraps an underlying stream, file, or compression failure.
type IOError struct {
	error
	cause error
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *IOError) Unwrap() error { return e.cause }

// MalformedErrorf raises a MalformedError.
func MalformedErrorf(format string, a ...any) *MalformedError {
	return &MalformedError{fmt.Errorf(format, a...)}
}

// CompressedTraversalErrorf raises a CompressedTraversalError naming the
// offending tag.
func CompressedTraversalErrorf(format string, a ...any) *CompressedTraversalError {
	return &CompressedTraversalError{fmt.Errorf(format, a...)}
}

// UnknownTypeErrorf raises an UnknownTypeError.
func UnknownTypeErrorf(format string, a ...any) *UnknownTypeError {
	return &UnknownTypeError{fmt.Errorf(format, a...)}
}

// ReservedTypeIDErrorf raises a ReservedTypeIDError.
func ReservedTypeIDErrorf(format string, a ...any) *ReservedTypeIDError {
	return &ReservedTypeIDError{fmt.Errorf(format, a...)}
}

// UnknownCompressorErrorf raises an UnknownCompressorError.
func UnknownCompressorErrorf(format string, a ...any) *UnknownCompressorError {
	return &UnknownCompressorError{fmt.Errorf(format, a...)}
}

// InvalidCustomTagErrorf raises an InvalidCustomTagError.
func InvalidCustomTagErrorf(format string, a ...any) *InvalidCustomTagError {
	return &InvalidCustomTagError{fmt.Errorf(format, a...)}
}

// KeyNotFoundErrorf raises a KeyNotFoundError.
func KeyNotFoundErrorf(format string, a ...any) *KeyNotFoundError {
	return &KeyNotFoundError{fmt.Errorf(format, a...)}
}

// IOErrorf wraps cause in an IOError, formatting a message describing
// what operation was being attempted.
func IOErrorf(cause error, format string, a ...any) *IOError {
	return &IOError{error: fmt.Errorf(format+": %w", append(a, cause)...), cause: cause}
}
