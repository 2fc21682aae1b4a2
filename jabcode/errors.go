package jabcode

import "github.com/pkg/errors"

// Error taxonomy from the codec's error handling design: FatalError and DetectError are never
// recoverable by the caller; MetadataError and DataError carry enough information for a caller to
// decide whether to retry. All five types, EncodeError included, wrap github.com/pkg/errors causes for stack context.

// FatalError signals allocation failure, invalid bitmap dimensions, or an internal buffer
// overflow. Never recoverable.
type FatalError struct{ cause error }

func (e *FatalError) Error() string { return "jabcode: fatal: " + e.cause.Error() }
func (e *FatalError) Unwrap() error { return e.cause }

// NewFatalError wraps cause as a FatalError.
func NewFatalError(cause error) *FatalError { return &FatalError{cause: errors.WithStack(cause)} }

// DetectError signals fewer than 3 finder patterns found, inconsistent module sizes, or a
// side-version mod-4 residue of 3 on both axes.
type DetectError struct{ cause error }

func (e *DetectError) Error() string { return "jabcode: detect: " + e.cause.Error() }
func (e *DetectError) Unwrap() error { return e.cause }

// NewDetectError wraps cause as a DetectError.
func NewDetectError(cause error) *DetectError { return &DetectError{cause: errors.WithStack(cause)} }

// MetadataError signals metadata Part I LDPC decoding failed even after the default-mode
// fallback, or SE/SS bits implied wc >= wr.
type MetadataError struct{ cause error }

func (e *MetadataError) Error() string { return "jabcode: metadata: " + e.cause.Error() }
func (e *MetadataError) Unwrap() error { return e.cause }

// NewMetadataError wraps cause as a MetadataError.
func NewMetadataError(cause error) *MetadataError {
	return &MetadataError{cause: errors.WithStack(cause)}
}

// DataError signals LDPC decoding of the payload failed.
type DataError struct{ cause error }

func (e *DataError) Error() string { return "jabcode: data: " + e.cause.Error() }
func (e *DataError) Unwrap() error { return e.cause }

// NewDataError wraps cause as a DataError.
func NewDataError(cause error) *DataError { return &DataError{cause: errors.WithStack(cause)} }

// EncodeError signals no encoding mode could represent a character, or the payload exceeds
// capacity even at the lowest ECC level.
type EncodeError struct{ cause error }

func (e *EncodeError) Error() string { return "jabcode: encode: " + e.cause.Error() }
func (e *EncodeError) Unwrap() error { return e.cause }

// NewEncodeError wraps cause as an EncodeError.
func NewEncodeError(cause error) *EncodeError { return &EncodeError{cause: errors.WithStack(cause)} }
