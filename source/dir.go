package source

import (
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/meigma/zipsplit/internal/platform"
	"github.com/meigma/zipsplit/internal/sizing"
	"github.com/meigma/zipsplit/internal/write"
)

// Dir yields every regular file below a directory. Nothing is filtered or
// renamed beyond making the path relative and slash-separated.
type Dir struct {
	path   string
	root   *os.Root
	cfg    config
	closed bool
}

var _ Source = (*Dir)(nil)

// OpenDir opens dir for enumeration. The returned Dir must be closed.
func OpenDir(dir string, opts ...Option) (*Dir, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	return &Dir{path: dir, root: root, cfg: newConfig(opts)}, nil
}

// Entries walks the tree in directory-listing order. Symlinks to regular
// files are followed and yielded under the link's own name; a dangling link
// or one pointing outside the directory ends the walk with an error.
// Directories, links to directories and other non-regular files are not
// yielded.
func (d *Dir) Entries() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		err := fs.WalkDir(d.root.FS(), ".", func(name string, de fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if de.IsDir() {
				return nil
			}

			fsPath := filepath.FromSlash(name)
			reg, ok, err := write.ResolveRegular(d.root, fsPath, de)
			if err != nil {
				return err
			}
			if !ok {
				d.cfg.log().Debug("skipped non-regular file", "path", name)
				return nil
			}
			info := reg.Info
			size, err := sizing.FromInt64(info.Size())
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			e := Entry{
				Name:     name,
				Size:     size,
				Origin:   name,
				Modified: info.ModTime(),
				Mode:     info.Mode().Perm(),
				Content:  fileOpener{root: d.root, path: fsPath, follow: reg.Linked},
			}
			if !yield(e, nil) {
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			yield(Entry{}, fmt.Errorf("walk %s: %w", d.path, err))
		}
	}
}

// Close releases the directory handle.
func (d *Dir) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.root.Close()
}

// fileOpener reopens a file inside the walked root on every call.
type fileOpener struct {
	root   *os.Root
	path   string
	follow bool
}

func (o fileOpener) Open() (io.ReadCloser, error) {
	if o.follow {
		return o.root.Open(o.path)
	}
	return platform.OpenNoFollow(o.root, o.path)
}
