package chunk

// Tag is a four-character block identifier packed into a big-endian uint32,
// e.g. "HIPA" is 0x48495041.
type Tag uint32

// MakeTag packs a four-character ASCII name into a Tag.
// It panics if name is not exactly four bytes; tags are compile-time constants.
func MakeTag(name string) Tag {
	if len(name) != 4 {
		panic("chunk: tag name must be exactly 4 bytes")
	}

	return Tag(uint32(name[0])<<24 | uint32(name[1])<<16 | uint32(name[2])<<8 | uint32(name[3]))
}

// String renders the tag as its four ASCII characters. Non-printable bytes
// are replaced with '.' so unknown tags stay safe to log.
func (t Tag) String() string {
	buf := [4]byte{
		byte(t >> 24),
		byte(t >> 16),
		byte(t >> 8),
		byte(t),
	}
	for i, c := range buf {
		if c < 0x20 || c > 0x7e {
			buf[i] = '.'
		}
	}

	return string(buf[:])
}
