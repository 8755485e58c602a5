package partition

import (
	"context"
	_ "crypto/sha256" // registers digest.Canonical
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/opencontainers/go-digest"

	"github.com/meigma/zipsplit/internal/file"
	"github.com/meigma/zipsplit/internal/sizing"
	"github.com/meigma/zipsplit/internal/write"
	"github.com/meigma/zipsplit/source"
)

// MaxParts is the number of parts the naming scheme keeps in sort order.
const MaxParts = 1000

// PartName returns the file name of the part with the given zero-based index.
func PartName(index int) string {
	return fmt.Sprintf("part-%03d.zip", index)
}

// Part describes a finalized part archive.
type Part struct {
	// Index is the zero-based sequence number encoded in the name.
	Index int

	// Path is the location of the archive on disk.
	Path string

	// Entries is the number of entries written to the part.
	Entries int

	// DeclaredSize is the sum of the entries' declared sizes.
	DeclaredSize uint64

	// Bytes is the size of the finished archive on disk.
	Bytes uint64

	// Digest is the sha256 digest of the finished archive.
	Digest digest.Digest
}

// Writer distributes entries over part archives in an output directory.
//
// A Writer is not safe for concurrent use; each partitioning run gets its own.
type Writer struct {
	dir   string
	cfg   config
	cur   *openPart
	next  int
	parts []Part
	buf   []byte
}

// openPart is the archive currently receiving entries, with its accumulators.
type openPart struct {
	index    int
	path     string
	f        *os.File
	counter  *file.CountingWriter
	digester digest.Digester
	zw       *zip.Writer
	count    int
	size     uint64
}

// New returns a Writer that places parts in dir, creating it if needed.
// No part is created until the first Append.
func New(dir string, opts ...Option) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Writer{
		dir: dir,
		cfg: newConfig(opts),
		buf: make([]byte, file.CopyBufferSize),
	}, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (w *Writer) log() *slog.Logger {
	if w.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.cfg.logger
}

// Append writes e into the current part, rolling over to a new part first
// when the rollover rule holds. Counters advance by one entry and by the
// entry's declared size.
func (w *Writer) Append(ctx context.Context, e source.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.shouldRollover(e.Size) {
		if err := w.rollover(); err != nil {
			return err
		}
	}
	if err := w.writeEntry(ctx, e); err != nil {
		return err
	}
	w.cur.count++
	w.cur.size += e.Size
	return nil
}

// shouldRollover reports whether an entry of the given declared size must
// start a new part.
func (w *Writer) shouldRollover(size uint64) bool {
	if w.cur == nil {
		return true
	}
	if w.cur.count >= w.cfg.maxCount {
		return true
	}
	total, ok := sizing.AddUint64(w.cur.size, size)
	return !ok || total >= w.cfg.maxSize
}

// rollover finalizes the open part, if any, and opens the next one.
func (w *Writer) rollover() error {
	if err := w.Close(); err != nil {
		return err
	}
	if w.next >= MaxParts {
		return fmt.Errorf("%w: limit is %d", ErrTooManyParts, MaxParts)
	}
	p, err := w.open(w.next)
	if err != nil {
		return err
	}
	w.cur = p
	w.next++
	return nil
}

func (w *Writer) open(index int) (*openPart, error) {
	path := filepath.Join(w.dir, PartName(index))
	f, err := os.Create(path) //nolint:gosec // output directory is caller-provided
	if err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}

	digester := digest.Canonical.Digester()
	counter := &file.CountingWriter{W: io.MultiWriter(f, digester.Hash())}
	zw := zip.NewWriter(counter)
	level := w.cfg.deflateLevel
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor(
		zstd.WithEncoderConcurrency(1),
		zstd.WithLowerEncoderMem(true),
	))

	w.log().Debug("part opened", slog.String("path", path), slog.Int("index", index))
	return &openPart{
		index:    index,
		path:     path,
		f:        f,
		counter:  counter,
		digester: digester,
		zw:       zw,
	}, nil
}

// writeEntry streams the entry's content into the open part.
func (w *Writer) writeEntry(ctx context.Context, e source.Entry) error {
	method := w.cfg.compression.method()
	if method != zip.Store && write.ShouldSkip(e.Name, e.Size, w.cfg.skipCompression) {
		method = zip.Store
	}

	hdr := &zip.FileHeader{
		Name:     e.Name,
		Method:   method,
		Modified: e.Modified,
	}
	if e.Mode != 0 {
		hdr.SetMode(e.Mode)
	}
	dst, err := w.cur.zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("write %s to %s: %w", e.Name, w.cur.path, err)
	}

	rc, err := e.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", e.Origin, err)
	}
	defer rc.Close()

	n, err := file.CopyWithContext(ctx, dst, rc, w.buf)
	if err != nil {
		return fmt.Errorf("write %s to %s: %w", e.Name, w.cur.path, err)
	}

	w.log().Debug("entry written",
		slog.String("name", e.Name),
		slog.String("origin", e.Origin),
		slog.Uint64("declared_size", e.Size),
		slog.Uint64("bytes", n),
		slog.Int("part", w.cur.index))
	return nil
}

// Close finalizes the open part, if any. It is safe to call more than once
// and when no part was ever opened. A later Append starts a new part.
func (w *Writer) Close() error {
	p := w.cur
	if p == nil {
		return nil
	}
	w.cur = nil

	if err := p.zw.Close(); err != nil {
		p.f.Close()
		return fmt.Errorf("finalize %s: %w", p.path, err)
	}
	if err := p.f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", p.path, err)
	}

	part := Part{
		Index:        p.index,
		Path:         p.path,
		Entries:      p.count,
		DeclaredSize: p.size,
		Bytes:        p.counter.N,
		Digest:       p.digester.Digest(),
	}
	w.parts = append(w.parts, part)
	w.log().Info("part closed",
		slog.String("path", part.Path),
		slog.Int("entries", part.Entries),
		slog.Uint64("declared_size", part.DeclaredSize),
		slog.Uint64("bytes", part.Bytes),
		slog.String("digest", part.Digest.String()))
	if w.cfg.onClose != nil {
		w.cfg.onClose(part)
	}
	return nil
}

// CurrentPart returns the index of the open part, or -1 when none is open.
func (w *Writer) CurrentPart() int {
	if w.cur == nil {
		return -1
	}
	return w.cur.index
}

// Parts returns the finalized parts in creation order.
func (w *Writer) Parts() []Part {
	return slices.Clone(w.parts)
}

// List returns the path of every file in the output directory, sorted
// ascending. Call it after Close so the last part is complete.
func (w *Writer) List() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("list output directory: %w", err)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(w.dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}
