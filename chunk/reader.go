// Package chunk implements the low-level cursor over a HIP archive's nested
// block structure.
//
// A block is a self-describing region: a 4-byte ASCII tag, a big-endian
// uint32 payload length, and that many payload bytes, which may themselves
// contain further blocks. The Reader walks this structure with an explicit
// block stack: Enter descends into the next child of the current region,
// Exit seeks past the current block regardless of how much of it was read.
// That unconditional seek is what makes unknown or extended blocks safe to
// skip without any special-casing by callers.
//
// Enter distinguishes three outcomes: a child block was entered, the current
// region has no more children, or the stream failed. Callers must treat only
// the second as normal termination; a truncated stream always surfaces as an
// error.
package chunk

import (
	"github.com/arloliu/hipdiff/endian"
	"github.com/arloliu/hipdiff/errs"
)

// MaxDepth is the maximum block nesting depth. The HIP grammar needs five
// levels; eight matches the format's historical stack bound.
const MaxDepth = 8

type block struct {
	tag Tag
	end int // absolute offset where this block's payload ends
}

// Reader is a sequential cursor over an in-memory archive image.
//
// The Reader does not copy or retain the input slice beyond its own lifetime
// and never writes to it. It is not safe for concurrent use.
type Reader struct {
	engine endian.EndianEngine
	data   []byte
	pos    int
	stack  []block
}

// NewReader creates a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{
		engine: endian.GetBigEndianEngine(),
		data:   data,
		stack:  make([]block, 0, MaxDepth),
	}
}

// Pos returns the absolute stream offset of the cursor.
func (r *Reader) Pos() int {
	return r.pos
}

// Depth returns the number of blocks currently open.
func (r *Reader) Depth() int {
	return len(r.stack)
}

// Tag returns the tag of the innermost open block, or 0 at the top level.
func (r *Reader) Tag() Tag {
	if len(r.stack) == 0 {
		return 0
	}

	return r.stack[len(r.stack)-1].tag
}

// BlockEnd returns the absolute end offset of the current region: the end of
// the innermost open block, or the end of the whole stream at the top level.
func (r *Reader) BlockEnd() int {
	if len(r.stack) == 0 {
		return len(r.data)
	}

	return r.stack[len(r.stack)-1].end
}

// Remaining returns the number of unread bytes left in the current region.
func (r *Reader) Remaining() int {
	if n := r.BlockEnd() - r.pos; n > 0 {
		return n
	}

	return 0
}

// ReadUint32 reads the next 4 bytes as a big-endian uint32.
//
// Returns:
//   - uint32: Decoded value
//   - error: errs.ErrUnexpectedEOF if fewer than 4 bytes remain in the stream
func (r *Reader) ReadUint32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, errs.ErrUnexpectedEOF
	}

	v := r.engine.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4

	return v, nil
}

// ReadString reads a NUL-terminated string with a fixed maximum storage size.
//
// Up to max bytes are consumed looking for the terminator; at most max-1
// content bytes are kept. If the terminator was not found within max bytes,
// the excess is consumed and discarded until a NUL appears, so the cursor
// always ends just past a terminator. When the total number of bytes consumed
// (terminator and discarded excess included) is odd, one padding byte is
// skipped so the next field starts on an even stream offset.
//
// Parameters:
//   - max: Fixed storage size of the field, including the terminator
//
// Returns:
//   - string: Stored content, truncated to at most max-1 bytes
//   - error: errs.ErrUnexpectedEOF if the stream ends before the terminator
func (r *Reader) ReadString(max int) (string, error) {
	consumed := 0
	terminated := false
	start := r.pos

	for consumed < max {
		if r.pos >= len(r.data) {
			return "", errs.ErrUnexpectedEOF
		}
		c := r.data[r.pos]
		r.pos++
		consumed++
		if c == 0 {
			terminated = true
			break
		}
	}

	content := r.data[start : start+consumed]
	if terminated {
		content = content[:consumed-1]
	} else if max > 0 {
		// Storage always reserves the final byte for the terminator.
		content = content[:max-1]
	}

	// Drain excess bytes past the storage size up to the real terminator.
	if !terminated {
		for {
			if r.pos >= len(r.data) {
				return "", errs.ErrUnexpectedEOF
			}
			c := r.data[r.pos]
			r.pos++
			consumed++
			if c == 0 {
				break
			}
		}
	}

	// Even-alignment padding. The original format seeks unconditionally, so a
	// pad byte missing at the very end of the stream is not an error.
	if consumed&1 == 1 && r.pos < len(r.data) {
		r.pos++
	}

	return string(content), nil
}

// ReadBytes reads the next n bytes and returns them as a fresh copy, so the
// caller owns the result independently of the underlying archive image.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, errs.ErrUnexpectedEOF
	}

	buf := make([]byte, n)
	copy(buf, r.data[r.pos:r.pos+n])
	r.pos += n

	return buf, nil
}

// Skip advances the cursor n bytes without reading them.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return errs.ErrUnexpectedEOF
	}
	r.pos += n

	return nil
}

// Enter descends into the next child block of the current region.
//
// The three outcomes are kept distinct:
//   - (tag, true, nil): a child block was entered; the cursor is at the start
//     of its payload and Exit must be called to leave it.
//   - (0, false, nil): the current region has no remaining bytes. This is the
//     normal end-of-children signal, not a failure.
//   - (0, false, err): the stream is truncated mid-header, the child's
//     declared length overruns the enclosing region, or the nesting depth
//     limit was reached.
func (r *Reader) Enter() (Tag, bool, error) {
	if len(r.stack) >= MaxDepth {
		return 0, false, errs.ErrDepthExceeded
	}

	if r.pos >= r.BlockEnd() {
		return 0, false, nil
	}

	tag, err := r.ReadUint32()
	if err != nil {
		return 0, false, err
	}
	length, err := r.ReadUint32()
	if err != nil {
		return 0, false, err
	}

	end := r.pos + int(length)
	if end > r.BlockEnd() {
		return 0, false, errs.ErrBlockOverrun
	}

	r.stack = append(r.stack, block{tag: Tag(tag), end: end})

	return Tag(tag), true, nil
}

// Exit pops the innermost block and seeks the cursor to its end offset,
// discarding any unread trailing bytes. The unconditional seek also recovers
// from any child that consumed more than its declared length.
func (r *Reader) Exit() error {
	if len(r.stack) == 0 {
		return errs.ErrStackUnderflow
	}

	blk := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.pos = blk.end

	return nil
}
