package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/hipdiff/endian"
	"github.com/arloliu/hipdiff/errs"
)

// buildBlock frames payload as a tag+length block.
func buildBlock(tag string, payload []byte) []byte {
	engine := endian.GetBigEndianEngine()
	buf := []byte(tag)
	buf = engine.AppendUint32(buf, uint32(len(payload)))

	return append(buf, payload...)
}

func u32(v uint32) []byte {
	return endian.GetBigEndianEngine().AppendUint32(nil, v)
}

func TestMakeTag(t *testing.T) {
	tag := MakeTag("HIPA")
	require.Equal(t, Tag(0x48495041), tag)
	require.Equal(t, "HIPA", tag.String())

	require.Panics(t, func() { MakeTag("HIP") })
}

func TestTagString_NonPrintable(t *testing.T) {
	require.Equal(t, "AB..", Tag(0x41420019).String())
}

func TestReadUint32(t *testing.T) {
	t.Run("big-endian regardless of host", func(t *testing.T) {
		r := NewReader([]byte{0x00, 0x00, 0x01, 0x02})
		v, err := r.ReadUint32()
		require.NoError(t, err)
		require.Equal(t, uint32(0x0102), v)
		require.Equal(t, 4, r.Pos())
	})

	t.Run("truncated", func(t *testing.T) {
		r := NewReader([]byte{0x01, 0x02})
		_, err := r.ReadUint32()
		require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	})
}

func TestReadString(t *testing.T) {
	t.Run("short string with even total", func(t *testing.T) {
		// "abc" + NUL is 4 bytes consumed, no padding.
		r := NewReader([]byte{'a', 'b', 'c', 0, 'X'})
		s, err := r.ReadString(32)
		require.NoError(t, err)
		require.Equal(t, "abc", s)
		require.Equal(t, 4, r.Pos())
	})

	t.Run("short string with odd total skips pad byte", func(t *testing.T) {
		// "ab" + NUL is 3 bytes consumed, one pad byte skipped.
		r := NewReader([]byte{'a', 'b', 0, 0xEE, 'X'})
		s, err := r.ReadString(32)
		require.NoError(t, err)
		require.Equal(t, "ab", s)
		require.Equal(t, 4, r.Pos())
	})

	t.Run("string exactly at storage size", func(t *testing.T) {
		// max=4: three content bytes plus terminator fit exactly.
		r := NewReader([]byte{'a', 'b', 'c', 0, 'X'})
		s, err := r.ReadString(4)
		require.NoError(t, err)
		require.Equal(t, "abc", s)
		require.Equal(t, 4, r.Pos())
	})

	t.Run("overlong string truncates and drains", func(t *testing.T) {
		// max=4 but content is 6 bytes: keep 3, drain through the NUL.
		// Total consumed is 7 (odd), so one pad byte is skipped too.
		r := NewReader([]byte{'a', 'b', 'c', 'd', 'e', 'f', 0, 0xEE, 'X'})
		s, err := r.ReadString(4)
		require.NoError(t, err)
		require.Equal(t, "abc", s)
		require.Equal(t, 8, r.Pos())
	})

	t.Run("missing terminator is a stream error", func(t *testing.T) {
		r := NewReader([]byte{'a', 'b'})
		_, err := r.ReadString(32)
		require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	})

	t.Run("pad byte absent at end of stream is tolerated", func(t *testing.T) {
		r := NewReader([]byte{'a', 'b', 0})
		s, err := r.ReadString(32)
		require.NoError(t, err)
		require.Equal(t, "ab", s)
		require.Equal(t, 3, r.Pos())
	})
}

func TestEnterExit(t *testing.T) {
	t.Run("walks nested blocks", func(t *testing.T) {
		inner := buildBlock("PVER", u32(7))
		outer := buildBlock("PACK", inner)
		r := NewReader(outer)

		tag, ok, err := r.Enter()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, MakeTag("PACK"), tag)
		require.Equal(t, 1, r.Depth())

		tag, ok, err = r.Enter()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, MakeTag("PVER"), tag)
		require.Equal(t, 4, r.Remaining())

		v, err := r.ReadUint32()
		require.NoError(t, err)
		require.Equal(t, uint32(7), v)

		require.NoError(t, r.Exit())
		require.NoError(t, r.Exit())
		require.Equal(t, 0, r.Depth())

		// End of stream is the no-children signal, not an error.
		_, ok, err = r.Enter()
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("no-children signal exactly at region end", func(t *testing.T) {
		child := buildBlock("AINF", u32(1))
		parent := buildBlock("ATOC", child)
		r := NewReader(parent)

		_, ok, err := r.Enter()
		require.NoError(t, err)
		require.True(t, ok)

		_, ok, err = r.Enter()
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, r.Exit())

		// Child consumed the whole parent region.
		_, ok, err = r.Enter()
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("truncated header mid-block is an error, not no-children", func(t *testing.T) {
		// Parent declares 6 payload bytes, enough to start but not finish a
		// child header.
		payload := []byte{'A', 'I', 'N', 'F', 0x00, 0x00}
		parent := buildBlock("ATOC", payload)
		r := NewReader(parent)

		_, ok, err := r.Enter()
		require.NoError(t, err)
		require.True(t, ok)

		_, ok, err = r.Enter()
		require.Error(t, err)
		require.False(t, ok)
	})

	t.Run("child overrunning parent region is an error", func(t *testing.T) {
		child := buildBlock("AINF", make([]byte, 64))
		parent := buildBlock("ATOC", child[:12]) // truncated child inside parent
		r := NewReader(parent)

		_, ok, err := r.Enter()
		require.NoError(t, err)
		require.True(t, ok)

		_, _, err = r.Enter()
		require.ErrorIs(t, err, errs.ErrBlockOverrun)
	})

	t.Run("exit discards unread trailing bytes", func(t *testing.T) {
		// Known fields followed by unknown trailing data; Exit must seek past.
		payload := append(u32(5), []byte{0xDE, 0xAD, 0xBE, 0xEF}...)
		blockA := buildBlock("PFLG", payload)
		blockB := buildBlock("PMOD", u32(9))
		r := NewReader(append(blockA, blockB...))

		_, ok, err := r.Enter()
		require.NoError(t, err)
		require.True(t, ok)

		v, err := r.ReadUint32()
		require.NoError(t, err)
		require.Equal(t, uint32(5), v)
		require.NoError(t, r.Exit())

		tag, ok, err := r.Enter()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, MakeTag("PMOD"), tag)
	})

	t.Run("depth limit", func(t *testing.T) {
		// Build MaxDepth+1 nested blocks.
		payload := []byte{}
		for i := 0; i <= MaxDepth; i++ {
			payload = buildBlock("NEST", payload)
		}
		r := NewReader(payload)

		for i := 0; i < MaxDepth; i++ {
			_, ok, err := r.Enter()
			require.NoError(t, err)
			require.True(t, ok)
		}

		_, _, err := r.Enter()
		require.ErrorIs(t, err, errs.ErrDepthExceeded)
	})

	t.Run("exit with no open block", func(t *testing.T) {
		r := NewReader(nil)
		require.ErrorIs(t, r.Exit(), errs.ErrStackUnderflow)
	})
}

func TestReadBytesAndSkip(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	require.NoError(t, r.Skip(1))

	buf, err := r.ReadBytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte{2, 3, 4}, buf)

	// Returned slice is an independent copy.
	buf[0] = 0xFF
	require.Equal(t, byte(2), r.data[1])

	_, err = r.ReadBytes(2)
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	require.ErrorIs(t, r.Skip(2), errs.ErrUnexpectedEOF)
}
