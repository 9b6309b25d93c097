package ingest

import "errors"

// Sentinel errors returned by the loaders.
var (
	// ErrUnsupportedFormat is returned for a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported transaction file format")

	// ErrUnknownKind is returned for a transaction kind that is neither food
	// nor non-food where the kind decides how impact is computed.
	ErrUnknownKind = errors.New("unknown transaction kind")

	// ErrNoInput is returned when no input paths were given.
	ErrNoInput = errors.New("no input files specified")
)
