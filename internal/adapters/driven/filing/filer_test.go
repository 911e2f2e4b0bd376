package filing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFiler(t *testing.T) (*Filer, string) {
	t.Helper()
	root := t.TempDir()
	filer, err := NewFiler(root)
	require.NoError(t, err)
	return filer, root
}

func dropDocument(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("PO content"), 0600))
	return path
}

func TestFiler_File_MovesIntoEntityFolder(t *testing.T) {
	filer, root := newTestFiler(t)
	src := dropDocument(t, "PO_4500111111.txt")

	dest, err := filer.File(src, "2. GREEN PLANET")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2. GREEN PLANET", "PO_4500111111.txt"), dest)
	assert.NoFileExists(t, src)
	assert.FileExists(t, dest)
}

func TestFiler_File_CollisionGetsTimestampSuffix(t *testing.T) {
	filer, _ := newTestFiler(t)

	first, err := filer.File(dropDocument(t, "PO.txt"), "1. TTIVN MFG")
	require.NoError(t, err)

	second, err := filer.File(dropDocument(t, "PO.txt"), "1. TTIVN MFG")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.FileExists(t, first)
	assert.FileExists(t, second)
	assert.Regexp(t, `PO_\d{14}\.txt$`, second)
}

func TestFiler_File_MissingSource(t *testing.T) {
	filer, _ := newTestFiler(t)

	_, err := filer.File(filepath.Join(t.TempDir(), "gone.txt"), "1. TTIVN MFG")

	assert.Error(t, err)
}

func TestFiler_Locate(t *testing.T) {
	filer, root := newTestFiler(t)

	for _, folder := range []string{"1. TTIVN MFG", "2. GREEN PLANET"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, folder), 0700))
	}
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "1. TTIVN MFG", "PO_4500111111.txt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "2. GREEN PLANET", "other.txt"), []byte("x"), 0600))

	matches, err := filer.Locate("4500111111")

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0], "PO_4500111111.txt")
}

func TestFiler_Locate_NoMatches(t *testing.T) {
	filer, _ := newTestFiler(t)

	matches, err := filer.Locate("999999")

	require.NoError(t, err)
	assert.Empty(t, matches)
}
