package zipsplit

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/zipsplit/internal/testutil"
)

func TestFromArchive_PayloadDirectory(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := filepath.Join(tmp, "pkg-1.0-maven-repository.zip")
	testutil.WriteZip(t, src, []testutil.ZipEntry{
		{Name: "pkg-1.0/maven-repository/a.jar", Data: []byte("0123456789")},
		{Name: "pkg-1.0/examples/readme.txt", Data: []byte("hello")},
		{Name: "pkg-1.0/licenses/LICENSE", Data: []byte("MIT")},
	})
	out := filepath.Join(tmp, "out")

	paths, err := FromArchive(context.Background(), src, out)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "part-000.zip")}, paths)

	files := testutil.ReadZip(t, paths[0])
	require.Len(t, files, 1)
	assert.Equal(t, "a.jar", files[0].Name)
	assert.Equal(t, []byte("0123456789"), files[0].Data)
}

func TestFromArchive_StripsTopLevel(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := filepath.Join(tmp, "foo.zip")
	testutil.WriteZip(t, src, []testutil.ZipEntry{
		{Name: "foo/"},
		{Name: "foo/a.txt", Data: []byte("aaaaa")},
		{Name: "foo/sub/b.txt", Data: []byte("bbbbb")},
	})
	out := filepath.Join(tmp, "out")

	paths, err := FromArchive(context.Background(), src, out)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, testutil.ZipNames(t, paths[0]))
}

func TestFromArchive_MultipleTopLevel(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := filepath.Join(tmp, "bad.zip")
	testutil.WriteZip(t, src, []testutil.ZipEntry{
		{Name: "foo/a.txt", Data: []byte("a")},
		{Name: "bar/b.txt", Data: []byte("b")},
	})
	out := filepath.Join(tmp, "out")

	paths, err := FromArchive(context.Background(), src, out)
	require.ErrorIs(t, err, ErrMultipleTopLevel)
	assert.Nil(t, paths)

	_, statErr := os.Stat(out)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestFromArchive_Rollover(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := filepath.Join(tmp, "letters.zip")
	var entries []testutil.ZipEntry
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		entries = append(entries, testutil.ZipEntry{Name: "root/" + name, Data: []byte(name)})
	}
	testutil.WriteZip(t, src, entries)
	out := filepath.Join(tmp, "out")

	paths, err := FromArchive(context.Background(), src, out, WithMaxCount(2))
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, []string{"A", "B"}, testutil.ZipNames(t, paths[0]))
	assert.Equal(t, []string{"C", "D"}, testutil.ZipNames(t, paths[1]))
	assert.Equal(t, []string{"E"}, testutil.ZipNames(t, paths[2]))
}

func TestFromArchive_Debug(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := filepath.Join(tmp, "foo.zip")
	testutil.WriteZip(t, src, []testutil.ZipEntry{{Name: "foo/a.txt", Data: []byte("a")}})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	paths, err := FromArchive(context.Background(), src, filepath.Join(tmp, "out"),
		WithLogger(logger), WithDebug(true))
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Contains(t, buf.String(), "from=foo/a.txt to=a.txt")
	assert.Contains(t, buf.String(), "part closed")
}

func TestFromDirectory_RoundTrip(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	srcDir := filepath.Join(tmp, "src")
	files := map[string][]byte{}
	for i := range 10 {
		files[fmt.Sprintf("dir%d/file%d.txt", i%3, i)] = bytes.Repeat([]byte{byte('a' + i)}, 10+i)
	}
	testutil.WriteTree(t, srcDir, files)
	out := filepath.Join(tmp, "out")

	paths, err := FromDirectory(context.Background(), srcDir, out, WithMaxCount(3), WithMaxSize(40))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	got := map[string][]byte{}
	for _, p := range paths {
		part := testutil.ReadZip(t, p)
		assert.LessOrEqual(t, len(part), 3)
		var total uint64
		for _, f := range part {
			_, dup := got[f.Name]
			assert.False(t, dup, "duplicate entry %s", f.Name)
			got[f.Name] = f.Data
			total += f.Size
		}
		assert.Less(t, total, uint64(40))
	}
	assert.Equal(t, files, got)
}

func TestFromDirectory_ProgressAndParts(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	srcDir := filepath.Join(tmp, "src")
	testutil.WriteTree(t, srcDir, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("22"),
		"c": []byte("333"),
	})

	var events []ProgressEvent
	var parts []Part
	paths, err := FromDirectory(context.Background(), srcDir, filepath.Join(tmp, "out"),
		WithMaxCount(2),
		WithProgress(func(e ProgressEvent) { events = append(events, e) }),
		WithPartHandler(func(p Part) { parts = append(parts, p) }),
	)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	require.Len(t, parts, 2)
	assert.Equal(t, paths[0], parts[0].Path)
	assert.Equal(t, paths[1], parts[1].Path)

	var stages []ProgressStage
	for _, e := range events {
		stages = append(stages, e.Stage)
	}
	assert.Equal(t, []ProgressStage{
		StageScanning,
		StageWriting, StageWriting,
		StagePartClosed,
		StageWriting,
		StagePartClosed,
	}, stages)

	last := events[4]
	assert.Equal(t, 3, last.FilesDone)
	assert.Equal(t, uint64(6), last.BytesDone)
	assert.Equal(t, 1, last.Part)
}

func TestFromDirectory_FollowsFileSymlinks(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	testutil.WriteTree(t, src, map[string][]byte{"a.txt": []byte("a"), "real.jar": []byte("jar")})
	require.NoError(t, os.Symlink("real.jar", filepath.Join(src, "lib.jar")))

	paths, err := FromDirectory(context.Background(), src, filepath.Join(tmp, "out"))
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.ElementsMatch(t, []string{"a.txt", "lib.jar", "real.jar"}, testutil.ZipNames(t, paths[0]))
}

func TestFromDirectory_ListIncludesExistingFiles(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	srcDir := filepath.Join(tmp, "src")
	testutil.WriteTree(t, srcDir, map[string][]byte{"a": []byte("1")})
	out := filepath.Join(tmp, "out")
	require.NoError(t, os.MkdirAll(out, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "README"), []byte("x"), 0o644))

	paths, err := FromDirectory(context.Background(), srcDir, out)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "README"), filepath.Join(out, "part-000.zip")}, paths)
}

func TestFromDirectory_Empty(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	paths, err := FromDirectory(context.Background(), tmp, filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestFromDirectory_MissingSource(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	_, err := FromDirectory(context.Background(), filepath.Join(tmp, "missing"), filepath.Join(tmp, "out"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
