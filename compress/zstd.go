package compress

// ZstdCompressor wraps archive images in Zstandard frames.
//
// Zstd gives the best ratio of the supported formats on chunked binary
// archives, at a moderate speed cost, which fits the write-once,
// inspect-occasionally life cycle of shipped asset packages.
//
// Two implementations back this type: a cgo binding when cgo is available
// and a pure-Go fallback otherwise. Both produce standard Zstd frames and
// decompress each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
