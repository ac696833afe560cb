package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeArchive(t *testing.T, name string, image []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, image, 0o644))

	return path
}

func markerOnly() []byte {
	return []byte{'H', 'I', 'P', 'A', 0, 0, 0, 0}
}

func TestRootCmd_IdenticalArchives(t *testing.T) {
	baseline := writeArchive(t, "a.hip", markerOnly())
	modified := writeArchive(t, "b.hip", markerOnly())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--no-color", "-w", "30", baseline, modified})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "No differences found.")
	require.Contains(t, out.String(), "a.hip")
	require.Contains(t, out.String(), "b.hip")
}

func TestRootCmd_FlagParsing(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-a", "-d", "-c", "-o", "-p", "-w", "72", "--no-color", "--trace"}))

	for _, name := range []string{"assets-only", "detailed", "trust-checksums", "offsets", "pluses", "no-color", "trace"} {
		v, err := cmd.Flags().GetBool(name)
		require.NoError(t, err)
		require.True(t, v, name)
	}
	w, err := cmd.Flags().GetInt("width")
	require.NoError(t, err)
	require.Equal(t, 72, w)
}

func TestRootCmd_ArgCount(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"only-one.hip"})

	require.Error(t, cmd.Execute())
}

func TestRootCmd_DecodeFailure(t *testing.T) {
	baseline := writeArchive(t, "a.hip", markerOnly())
	bogus := writeArchive(t, "bogus.hip", []byte("not an archive"))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{baseline, bogus})

	require.Error(t, cmd.Execute())
}
