package compress

import "fmt"

// Format identifies the outer compression wrapper of an archive file.
//
// HIP archives themselves are uncompressed chunk streams, but build
// pipelines routinely ship them wrapped in a general-purpose container.
// The decoder accepts wrapped files transparently; Format names the
// wrapper that was (or should be) applied.
type Format uint8

const (
	// FormatNone means the file is a bare HIP chunk stream.
	FormatNone Format = iota
	// FormatZstd is a Zstandard frame.
	FormatZstd
	// FormatS2 is an S2/Snappy framed stream.
	FormatS2
	// FormatLZ4 is an LZ4 frame.
	FormatLZ4
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatZstd:
		return "zstd"
	case FormatS2:
		return "s2"
	case FormatLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// Compressor compresses whole archive images in one shot.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores whole archive images in one shot.
//
// Implementations validate the wrapped format and return an error when the
// data is corrupted or was produced by a different algorithm.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Format]Codec{
	FormatNone: NewNoOpCompressor(),
	FormatZstd: NewZstdCompressor(),
	FormatS2:   NewS2Compressor(),
	FormatLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified format.
//
// Returns:
//   - Codec: Codec instance for the format
//   - error: Unsupported format error
func GetCodec(format Format) (Codec, error) {
	if codec, ok := builtinCodecs[format]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression format: %s", format)
}
