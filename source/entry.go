package source

import (
	"io"
	"io/fs"
	"iter"
	"time"
)

// Opener produces the raw bytes of one entry. Each call returns a fresh
// reader positioned at the start of the content; the caller closes it.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// Entry is one file to be placed into a part archive.
type Entry struct {
	// Name is the logical output name, slash-separated with no leading slash.
	Name string

	// Size is the declared size in bytes. It drives rollover accounting and
	// is not checked against the bytes actually read.
	Size uint64

	// Origin is where the entry came from: the path relative to the source
	// directory, or the original name inside the source archive.
	Origin string

	// Modified is the modification time carried into the output header.
	Modified time.Time

	// Mode holds the permission bits carried into the output header.
	Mode fs.FileMode

	// Content opens the entry's bytes.
	Content Opener
}

// Open opens the entry's content.
func (e Entry) Open() (io.ReadCloser, error) {
	return e.Content.Open()
}

// Source is a read-only sequence of entries backed by an open handle.
type Source interface {
	// Entries yields entries in source order. A non-nil error ends the
	// sequence.
	Entries() iter.Seq2[Entry, error]

	// Close releases the underlying handle. It is safe to call more than once.
	Close() error
}
