// Package hipdiff decodes HIP game-asset archives and computes structural
// diffs between two of them.
//
// HIP archives are nested-chunk binary containers: big-endian blocks of
// `tag | length | payload`, where the tag is four ASCII characters and
// payloads either hold scalars and NUL-terminated strings or further blocks.
// A package carries header metadata, an asset directory, a layer directory
// and a raw data stream of asset payloads.
//
// # Core Features
//
//   - Tolerant chunk walker: unknown blocks and trailing bytes inside known
//     blocks are skipped, so newer archive revisions still decode
//   - Structural diffing: assets matched by stable ID, layers positionally
//     within per-type groups, metadata scalar by scalar
//   - Derivative suppression: an added or removed asset is reported once, not
//     again as a membership change of every layer that lists it
//   - Checksum-trust mode for payload comparison without reading payloads
//   - Transparent zstd/S2/LZ4 unwrapping of compressed archive files
//
// # Basic Usage
//
// Comparing two archives:
//
//	baseline, err := hipdiff.Load("game_v1.hip")
//	if err != nil {
//	    return err
//	}
//	modified, err := hipdiff.Load("game_v2.hip")
//	if err != nil {
//	    return err
//	}
//
//	result := hipdiff.Compare(baseline, modified, diff.Options{Detailed: true})
//	if result.Empty() {
//	    fmt.Println("archives are identical")
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the hip, diff
// and compress packages, simplifying the most common use cases. For
// fine-grained control (decoder tracing, codec selection, custom rendering)
// use those packages directly.
package hipdiff

import (
	"fmt"
	"os"

	"github.com/arloliu/hipdiff/compress"
	"github.com/arloliu/hipdiff/diff"
	"github.com/arloliu/hipdiff/hip"
)

// Decode decodes an uncompressed HIP archive image into a Package.
//
// Parameters:
//   - data: Complete archive image, starting with the HIPA root marker
//   - opts: Optional decoder configuration (see hip.DecoderOption)
//
// Returns:
//   - *hip.Package: The decoded package.
//   - error: A structural error describing the offending chunk, if any.
func Decode(data []byte, opts ...hip.DecoderOption) (*hip.Package, error) {
	return hip.Decode(data, opts...)
}

// Load reads an archive file and decodes it. Compressed files (zstd, S2 or
// LZ4 wrapped) are detected by their magic bytes and unwrapped first, so the
// caller never needs to know how the archive was stored.
//
// Parameters:
//   - path: Path of the archive file
//   - opts: Optional decoder configuration (see hip.DecoderOption)
//
// Returns:
//   - *hip.Package: The decoded package.
//   - error: A read, unwrap or decode error, wrapped with the file path.
func Load(path string, opts ...hip.DecoderOption) (*hip.Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", path, err)
	}

	raw, err := compress.DecompressAuto(data)
	if err != nil {
		return nil, fmt.Errorf("unwrap archive %s: %w", path, err)
	}

	pkg, err := hip.Decode(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("decode archive %s: %w", path, err)
	}

	return pkg, nil
}

// Compare diffs two decoded packages, baseline against modified.
//
// It is a thin wrapper over diff.Diff; see diff.Options for the available
// comparison modes.
func Compare(baseline, modified *hip.Package, opts diff.Options) *diff.Result {
	return diff.Diff(baseline, modified, opts)
}
