// Package errs defines the sentinel errors shared across the hipdiff packages.
//
// Callers should match these with errors.Is; packages wrap them with
// fmt.Errorf("...: %w", err) to add context without losing the sentinel.
package errs

import "errors"

// Stream errors. These indicate the byte source itself is unreadable or
// shorter than the structure it declares, and always abort the decode.
var (
	// ErrUnexpectedEOF is returned when a primitive read runs past the end of
	// the input buffer or of the enclosing block region.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")
)

// Structural errors. The stream is readable but its self-described structure
// is inconsistent; the decode of the whole package is aborted.
var (
	// ErrDepthExceeded is returned when entering a block would exceed the
	// maximum nesting depth.
	ErrDepthExceeded = errors.New("block nesting depth exceeded")

	// ErrStackUnderflow is returned when exiting a block with no block open.
	// This indicates a decoder bug, not malformed input.
	ErrStackUnderflow = errors.New("block stack underflow")

	// ErrBlockOverrun is returned when a child block's declared length runs
	// past the end of its parent region.
	ErrBlockOverrun = errors.New("block overruns enclosing region")

	// ErrMissingRootMarker is returned when the stream does not begin with the
	// HIPA marker block.
	ErrMissingRootMarker = errors.New("missing HIPA root marker block")

	// ErrEntryCountMismatch is returned when the number of asset or layer
	// header blocks found in a directory does not match the declared count.
	ErrEntryCountMismatch = errors.New("directory entry count mismatch")

	// ErrLayerCoverageMismatch is returned when the asset IDs listed across
	// all layers do not add up to the declared asset count.
	ErrLayerCoverageMismatch = errors.New("layer asset coverage mismatch")
)
