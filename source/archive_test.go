package source

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/zipsplit/internal/testutil"
)

type collected struct {
	Name   string
	Size   uint64
	Origin string
	Data   string
}

func collect(t *testing.T, src Source) []collected {
	t.Helper()

	var out []collected
	for e, err := range src.Entries() {
		require.NoError(t, err)
		rc, err := e.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		out = append(out, collected{Name: e.Name, Size: e.Size, Origin: e.Origin, Data: string(data)})
	}
	return out
}

func TestArchive_PayloadDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pkg-1.0-maven-repository.zip")
	testutil.WriteZip(t, path, []testutil.ZipEntry{
		{Name: "pkg-1.0/"},
		{Name: "pkg-1.0/maven-repository/"},
		{Name: "pkg-1.0/maven-repository/a.jar", Data: []byte("0123456789")},
		{Name: "pkg-1.0/examples/readme.txt", Data: []byte("hello")},
		{Name: "pkg-1.0/licenses/LICENSE", Data: []byte("MIT")},
	})

	src, err := OpenArchive(path)
	require.NoError(t, err)
	defer src.Close()

	assert.True(t, src.Layout().HasPayload())
	assert.Equal(t, []collected{
		{Name: "a.jar", Size: 10, Origin: "pkg-1.0/maven-repository/a.jar", Data: "0123456789"},
	}, collect(t, src))
}

func TestArchive_StripsTopLevel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "foo.zip")
	testutil.WriteZip(t, path, []testutil.ZipEntry{
		{Name: "foo/"},
		{Name: "foo/a.txt", Data: []byte("aaaaa")},
		{Name: "foo/sub/"},
		{Name: "foo/sub/b.txt", Data: []byte("bbbbb"), Method: zip.Deflate},
	})

	src, err := OpenArchive(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, []collected{
		{Name: "a.txt", Size: 5, Origin: "foo/a.txt", Data: "aaaaa"},
		{Name: "sub/b.txt", Size: 5, Origin: "foo/sub/b.txt", Data: "bbbbb"},
	}, collect(t, src))
}

func TestArchive_MultipleTopLevel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.zip")
	testutil.WriteZip(t, path, []testutil.ZipEntry{
		{Name: "foo/a.txt", Data: []byte("a")},
		{Name: "bar/b.txt", Data: []byte("b")},
	})

	src, err := OpenArchive(path)
	require.ErrorIs(t, err, ErrMultipleTopLevel)
	assert.Nil(t, src)
}

func TestArchive_SkipsDirectoryEntriesWithSize(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "odd.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.CreateRaw(&zip.FileHeader{
		Name:               "pkg/maven-repository/org/",
		Method:             zip.Store,
		UncompressedSize64: 5,
	})
	require.NoError(t, err)
	w, err := zw.Create("pkg/maven-repository/org/a.pom")
	require.NoError(t, err)
	_, err = w.Write([]byte("pom"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	src, err := OpenArchive(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, []collected{
		{Name: "org/a.pom", Size: 3, Origin: "pkg/maven-repository/org/a.pom", Data: "pom"},
	}, collect(t, src))
}

func TestArchive_ZstdEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "zstd.zip")
	content := bytes.Repeat([]byte("zstd"), 1000)
	testutil.WriteZip(t, path, []testutil.ZipEntry{
		{Name: "root/data.bin", Data: content, Method: zstd.ZipMethodWinZip},
	})

	src, err := OpenArchive(path)
	require.NoError(t, err)
	defer src.Close()

	got := collect(t, src)
	require.Len(t, got, 1)
	assert.Equal(t, "data.bin", got[0].Name)
	assert.Equal(t, string(content), got[0].Data)
}

func TestArchive_DebugTrace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "foo.zip")
	testutil.WriteZip(t, path, []testutil.ZipEntry{
		{Name: "foo/a.txt", Data: []byte("a")},
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	quiet, err := OpenArchive(path, WithLogger(logger))
	require.NoError(t, err)
	withoutTrace := collect(t, quiet)
	require.NoError(t, quiet.Close())
	assert.NotContains(t, buf.String(), "mapping")

	traced, err := OpenArchive(path, WithLogger(logger), WithDebug(true))
	require.NoError(t, err)
	withTrace := collect(t, traced)
	require.NoError(t, traced.Close())

	assert.Equal(t, withoutTrace, withTrace)
	assert.Contains(t, buf.String(), "from=foo/a.txt to=a.txt")
}

func TestArchive_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "foo.zip")
	testutil.WriteZip(t, path, []testutil.ZipEntry{{Name: "foo/a.txt", Data: []byte("a")}})

	src, err := OpenArchive(path)
	require.NoError(t, err)
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
}

func TestArchive_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := OpenArchive(filepath.Join(t.TempDir(), "missing.zip"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
