package source

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/meigma/zipsplit/internal/pathutil"
)

// Archive yields the payload of an existing zip archive.
//
// Opening the archive reads its central directory and computes the
// [Layout]. Entries then streams through the stored order applying it:
//   - empty directory markers are skipped;
//   - with a payload directory, only entries under it are kept, with the
//     "<root>/<payload>/" prefix removed;
//   - without one, every entry is kept with its first component removed;
//   - names that are empty or still end in "/" after remapping are skipped,
//     so a directory entry that declares data never reaches a part.
//
// Content is read back from the original entry, so only metadata for the
// whole archive is held in memory.
type Archive struct {
	path   string
	zr     *zip.ReadCloser
	layout Layout
	cfg    config
	closed bool
}

var _ Source = (*Archive)(nil)

// OpenArchive opens the zip at path and detects its layout. A structural
// error closes the archive before returning. The returned Archive must be
// closed.
func OpenArchive(path string, opts ...Option) (*Archive, error) {
	cfg := newConfig(opts)

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	names := make([]string, len(zr.File))
	for i, f := range zr.File {
		names[i] = f.Name
	}
	layout, err := DetectLayout(names, cfg.payloadDir)
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.log().Debug("archive layout detected",
		slog.String("archive", path),
		slog.String("root", layout.Root),
		slog.String("payload_prefix", layout.Prefix),
		slog.Int("entries", len(zr.File)))

	return &Archive{path: path, zr: zr, layout: layout, cfg: cfg}, nil
}

// Layout returns the layout computed when the archive was opened.
func (a *Archive) Layout() Layout {
	return a.layout
}

// Entries yields the remapped entries in stored order.
func (a *Archive) Entries() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		trace := a.cfg.traceLog()
		for _, f := range a.zr.File {
			if pathutil.IsDirMarker(f.Name, f.UncompressedSize64) {
				continue
			}
			name, ok := a.layout.Rename(f.Name)
			if !ok {
				a.cfg.log().Debug("dropped entry outside payload", "name", f.Name)
				continue
			}
			if name == "" {
				continue
			}
			if strings.HasSuffix(name, "/") {
				a.cfg.log().Debug("skipped directory entry with data", "name", f.Name,
					slog.Uint64("size", f.UncompressedSize64))
				continue
			}
			if trace != nil {
				trace.Info("mapping", slog.String("from", f.Name), slog.String("to", name))
			}

			e := Entry{
				Name:     name,
				Size:     f.UncompressedSize64,
				Origin:   f.Name,
				Modified: f.Modified,
				Mode:     f.Mode().Perm(),
				Content:  f,
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

// Close releases the archive handle.
func (a *Archive) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.zr.Close()
}
