//go:build !unix

// Package platform wraps the OS specific parts of opening source files.
package platform

import (
	"errors"
	"io/fs"
	"os"
)

// ErrSymlink is returned when a source path turns out to be a symbolic link.
var ErrSymlink = errors.New("symbolic links not supported")

// OpenNoFollow opens name inside root for reading. Without O_NOFOLLOW the
// link check is an Lstat followed by Open, which is racy but good enough
// for build output directories.
func OpenNoFollow(root *os.Root, name string) (*os.File, error) {
	info, err := root.Lstat(name)
	if err != nil {
		return nil, err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return nil, ErrSymlink
	}
	return root.Open(name)
}
