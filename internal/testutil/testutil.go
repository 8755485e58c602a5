// Package testutil builds zip and directory fixtures for tests.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

// ZipEntry describes one entry of a fixture archive.
// Names ending in "/" with no data are written as directory markers.
type ZipEntry struct {
	Name   string
	Data   []byte
	Method uint16
}

// ZipFile is an entry read back from an archive.
type ZipFile struct {
	Name   string
	Data   []byte
	Method uint16
	Size   uint64
}

// WriteZip writes entries, in order, to a new archive at path.
func WriteZip(tb testing.TB, path string, entries []ZipEntry) {
	tb.Helper()

	f, err := os.Create(path)
	require.NoError(tb, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: e.Method})
		require.NoError(tb, err)
		_, err = w.Write(e.Data)
		require.NoError(tb, err)
	}
	require.NoError(tb, zw.Close())
	require.NoError(tb, f.Close())
}

// ReadZip returns every entry of the archive at path in stored order.
func ReadZip(tb testing.TB, path string) []ZipFile {
	tb.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(tb, err)
	defer zr.Close()
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	files := make([]ZipFile, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(tb, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(tb, err)
		files = append(files, ZipFile{
			Name:   f.Name,
			Data:   data,
			Method: f.Method,
			Size:   f.UncompressedSize64,
		})
	}
	return files
}

// ZipNames returns the entry names of the archive at path in stored order.
func ZipNames(tb testing.TB, path string) []string {
	tb.Helper()

	files := ReadZip(tb, path)
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

// WriteTree creates files under dir. Keys are slash-separated relative paths.
func WriteTree(tb testing.TB, dir string, files map[string][]byte) {
	tb.Helper()

	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(tb, os.WriteFile(path, data, 0o644))
	}
}
