package zipsplit

import (
	"context"
	"log/slog"

	"github.com/meigma/zipsplit/partition"
	"github.com/meigma/zipsplit/source"
)

// FromDirectory packs every regular file below srcDir into parts in outDir
// and returns the sorted paths of the files in outDir.
//
// Entry names are paths relative to srcDir with forward slashes. Nothing is
// filtered or renamed. outDir is created if needed.
func FromDirectory(ctx context.Context, srcDir, outDir string, opts ...Option) ([]string, error) {
	cfg := newConfig(opts)
	cfg.log().Info("partitioning directory",
		slog.String("source", srcDir),
		slog.String("output", outDir),
		slog.Int("max_count", cfg.maxCount),
		slog.Uint64("max_size", cfg.maxSize),
		slog.String("compression", cfg.compression.String()))
	cfg.reportProgress(StageScanning, srcDir, -1, 0, 0)

	src, err := source.OpenDir(srcDir, cfg.sourceOptions()...)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return run(ctx, src, outDir, &cfg)
}

// FromArchive repackages the zip at srcArchive into parts in outDir and
// returns the sorted paths of the files in outDir.
//
// The archive is scanned once before anything is written: it must have a
// single top-level directory, otherwise ErrMultipleTopLevel is returned and
// outDir is left untouched. See the package documentation for how entries
// are renamed and filtered.
func FromArchive(ctx context.Context, srcArchive, outDir string, opts ...Option) ([]string, error) {
	cfg := newConfig(opts)
	cfg.log().Info("partitioning archive",
		slog.String("source", srcArchive),
		slog.String("output", outDir),
		slog.Int("max_count", cfg.maxCount),
		slog.Uint64("max_size", cfg.maxSize),
		slog.String("compression", cfg.compression.String()))
	cfg.reportProgress(StageScanning, srcArchive, -1, 0, 0)

	src, err := source.OpenArchive(srcArchive, cfg.sourceOptions()...)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if layout := src.Layout(); layout.HasPayload() {
		cfg.log().Info("using payload directory", slog.String("prefix", layout.Prefix))
	}

	return run(ctx, src, outDir, &cfg)
}

// run feeds every entry of src into a fresh writer.
func run(ctx context.Context, src source.Source, outDir string, cfg *config) ([]string, error) {
	w, err := partition.New(outDir, cfg.partitionOptions()...)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	var (
		files int
		bytes uint64
	)
	for e, err := range src.Entries() {
		if err != nil {
			return nil, err
		}
		if err := w.Append(ctx, e); err != nil {
			return nil, err
		}
		files++
		bytes += e.Size
		cfg.reportProgress(StageWriting, e.Name, w.CurrentPart(), files, bytes)
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	paths, err := w.List()
	if err != nil {
		return nil, err
	}

	cfg.log().Info("partitioning complete",
		slog.Int("parts", len(w.Parts())),
		slog.Int("entries", files),
		slog.Uint64("declared_size", bytes))
	return paths, nil
}
