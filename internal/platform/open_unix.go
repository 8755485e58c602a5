//go:build unix

// Package platform wraps the OS specific parts of opening source files.
package platform

import (
	"errors"
	"os"
	"syscall"
)

// ErrSymlink is returned when a source path turns out to be a symbolic link.
var ErrSymlink = errors.New("symbolic links not supported")

// OpenNoFollow opens name inside root for reading without following a
// trailing symlink. A symlink swapped in after the walk saw a regular file
// yields ErrSymlink.
func OpenNoFollow(root *os.Root, name string) (*os.File, error) {
	f, err := root.OpenFile(name, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if errors.Is(err, syscall.ELOOP) {
			return nil, ErrSymlink
		}
		return nil, err
	}
	return f, nil
}
