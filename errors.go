package carvekit

import (
	"errors"
	"fmt"
)

// Common scan errors
var (
	ErrBufferTooLarge   = errors.New("buffer exceeds scan limit")
	ErrUnknownFormat    = errors.New("unknown format")
	ErrUnknownAlgorithm = errors.New("unknown checksum algorithm")
	ErrUnknownPlane     = errors.New("unknown bit plane")
	ErrNotSupported     = errors.New("operation not supported")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// ScanError records an error together with the operation and the size of
// the buffer it was asked to process
type ScanError struct {
	Op   string
	Size int
	Err  error
}

// Error implements the error interface
func (e *ScanError) Error() string {
	return fmt.Sprintf("%s (%d bytes): %v", e.Op, e.Size, e.Err)
}

// Unwrap returns the underlying error
func (e *ScanError) Unwrap() error {
	return e.Err
}

// IsBufferTooLarge reports whether an error indicates that a buffer was
// rejected for exceeding the configured scan limit
func IsBufferTooLarge(err error) bool {
	return errors.Is(err, ErrBufferTooLarge)
}

// IsUnknownFormat reports whether an error indicates a format kind the
// catalog does not know
func IsUnknownFormat(err error) bool {
	return errors.Is(err, ErrUnknownFormat)
}

// IsNotSupported reports whether an error indicates an operation the
// format does not support
func IsNotSupported(err error) bool {
	return errors.Is(err, ErrNotSupported)
}
