// Package codec provides common errors and interfaces for JABCode symbologies.
package codec

import "errors"

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry.
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter indicates encoding/decoding parameters are invalid.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNoData indicates encoding was requested with an empty payload.
	ErrNoData = errors.New("no input data")
)
