// Package errs defines the sentinel error taxonomy shared by the ipc and
// page packages: callers match on these with errors.Is, and the codecs
// wrap them with fmt.Errorf("%w: ...") to attach the offending value or
// offset before propagating.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfSpec is returned when the caller's inputs violate a static
	// contract, e.g. a Dense union whose offsets length differs from its
	// row count.
	ErrOutOfSpec = errors.New("out of spec")

	// ErrNotYetImplemented is returned for an encoding/type combination the
	// decoder has not learned yet. Distinct from ErrOutOfSpec so callers can
	// route these to a slow path instead of failing hard.
	ErrNotYetImplemented = errors.New("not yet implemented")

	// ErrCorruptStream is returned when input bytes contradict themselves:
	// a length mismatch after decompression, non-monotonic offsets, invalid
	// UTF-8 in a Utf8 array, or a dictionary index out of range.
	ErrCorruptStream = errors.New("corrupt stream")

	// ErrMissingDictionary is returned when the IPC reader encounters a
	// dictionary-encoded field referencing an id not yet registered.
	ErrMissingDictionary = errors.New("missing dictionary")

	// ErrIO wraps a transport error surfaced by the reader/writer collaborator.
	ErrIO = errors.New("io error")
)

// OutOfSpec wraps ErrOutOfSpec with a formatted message.
func OutOfSpec(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrOutOfSpec, fmt.Sprintf(format, args...))
}

// NotYetImplemented wraps ErrNotYetImplemented with a formatted message.
func NotYetImplemented(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotYetImplemented, fmt.Sprintf(format, args...))
}

// CorruptStream wraps ErrCorruptStream with a formatted message.
func CorruptStream(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptStream, fmt.Sprintf(format, args...))
}

// MissingDictionary wraps ErrMissingDictionary with the offending dictionary id.
func MissingDictionary(id uint64) error {
	return fmt.Errorf("%w: id %d", ErrMissingDictionary, id)
}

// IO wraps a transport error with ErrIO so callers can errors.Is(err, ErrIO)
// regardless of the underlying transport's own error type.
func IO(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrIO, err)
}
