package compress

import "bytes"

// Wrapper magics. Zstd and LZ4 write their frame magic little-endian; the
// S2/Snappy framed stream opens with a fixed identifier chunk.
var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
	s2Magic   = []byte{0xFF, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// Sniff inspects the leading bytes of a file image and reports which
// compression wrapper, if any, it carries. Data that matches no known magic
// is classified as FormatNone; a bare HIP chunk stream starts with the
// ASCII tag "HIPA", which collides with none of them.
func Sniff(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return FormatZstd
	case bytes.HasPrefix(data, lz4Magic):
		return FormatLZ4
	case bytes.HasPrefix(data, s2Magic):
		return FormatS2
	default:
		return FormatNone
	}
}

// DecompressAuto sniffs the wrapper format of data and unwraps it. Unwrapped
// input comes back untouched, so callers can feed any archive file through
// this without knowing how it was stored.
func DecompressAuto(data []byte) ([]byte, error) {
	codec, err := GetCodec(Sniff(data))
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}
