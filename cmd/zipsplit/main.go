// Command zipsplit repackages directories and zip archives into
// size- and count-bounded part archives.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/zipsplit"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "zipsplit: %v\n", err)
		}
		os.Exit(2)
	}
}

// result collects the parts produced for one source.
type result struct {
	source string
	paths  []string
	parts  []zipsplit.Part
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	s, err := parseSettings(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if s.verbose || s.debug {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	results := make([]result, len(s.sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)
	for i, src := range s.sources {
		out := s.output
		if len(s.sources) > 1 {
			out = filepath.Join(s.output, sourceStem(src))
		}
		g.Go(func() error {
			res, err := partitionSource(ctx, s, logger.With(slog.String("source", src)), src, out)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		printResult(stdout, res)
	}
	return nil
}

// partitionSource runs one source with its own writer and output directory.
func partitionSource(ctx context.Context, s settings, logger *slog.Logger, src, out string) (result, error) {
	res := result{source: src}
	opts := []zipsplit.Option{
		zipsplit.WithMaxCount(s.maxCount),
		zipsplit.WithMaxSize(s.maxSize),
		zipsplit.WithCompression(s.compression),
		zipsplit.WithPayloadDir(s.payloadDir),
		zipsplit.WithDebug(s.debug),
		zipsplit.WithLogger(logger),
		zipsplit.WithPartHandler(func(p zipsplit.Part) {
			res.parts = append(res.parts, p)
		}),
	}
	if s.storeCompressed {
		opts = append(opts, zipsplit.WithSkipCompression(zipsplit.DefaultSkipCompression(0)))
	}

	info, err := os.Stat(src)
	if err != nil {
		return result{}, err
	}
	if info.IsDir() {
		res.paths, err = zipsplit.FromDirectory(ctx, src, out, opts...)
	} else {
		res.paths, err = zipsplit.FromArchive(ctx, src, out, opts...)
	}
	if err != nil {
		return result{}, err
	}
	return res, nil
}

// sourceStem names the per-source output directory.
func sourceStem(src string) string {
	return strings.TrimSuffix(filepath.Base(filepath.Clean(src)), ".zip")
}

func printResult(w io.Writer, res result) {
	fmt.Fprintf(w, "%s: %d part(s)\n", res.source, len(res.paths))
	for _, p := range res.parts {
		fmt.Fprintf(w, "  %s\t%d entries\t%s\t%s\n",
			p.Path, p.Entries, humanize.Bytes(p.Bytes), p.Digest)
	}
}
