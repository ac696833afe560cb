package hipdiff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/hipdiff/compress"
	"github.com/arloliu/hipdiff/diff"
)

// markerOnlyArchive is the smallest valid archive: the HIPA root marker with
// an empty payload.
func markerOnlyArchive() []byte {
	return []byte{'H', 'I', 'P', 'A', 0, 0, 0, 0}
}

func TestLoad_PlainAndCompressed(t *testing.T) {
	dir := t.TempDir()

	plainPath := filepath.Join(dir, "plain.hip")
	require.NoError(t, os.WriteFile(plainPath, markerOnlyArchive(), 0o644))

	codec, err := compress.GetCodec(compress.FormatZstd)
	require.NoError(t, err)
	wrapped, err := codec.Compress(markerOnlyArchive())
	require.NoError(t, err)

	zstdPath := filepath.Join(dir, "wrapped.hip.zst")
	require.NoError(t, os.WriteFile(zstdPath, wrapped, 0o644))

	baseline, err := Load(plainPath)
	require.NoError(t, err)
	modified, err := Load(zstdPath)
	require.NoError(t, err)

	result := Compare(baseline, modified, diff.Options{})
	require.True(t, result.Empty())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hip"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "nope.hip")
}

func TestLoad_InvalidArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.hip")
	require.NoError(t, os.WriteFile(path, []byte("not an archive at all"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode archive")
}

func TestDecode_Wrapper(t *testing.T) {
	pkg, err := Decode(markerOnlyArchive())
	require.NoError(t, err)
	require.Empty(t, pkg.Assets)
	require.Empty(t, pkg.Layers)
}
