// Package write holds the per-file decisions made while feeding a source
// tree into part archives.
package write

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrBadLink is returned for a symlink whose target is missing or lies
// outside the walked root.
var ErrBadLink = errors.New("symlink target missing or outside source directory")

// Regular describes a walked entry that resolves to a regular file.
type Regular struct {
	// Info describes the file itself, or the link target when Linked is set.
	Info fs.FileInfo
	// Linked is set when the entry is a symlink that was followed.
	Linked bool
}

// ResolveRegular reports whether a walked entry is, or links to, a regular
// file. Directories, devices and sockets report ok=false and are skipped by
// the caller, as are symlinks to directories. Symlinks are followed inside
// root; a dangling link or one escaping root yields ErrBadLink.
//
// Entries whose type is unknown to the directory reader are resolved with
// an Lstat inside root.
func ResolveRegular(root *os.Root, fsPath string, d fs.DirEntry) (r Regular, ok bool, err error) {
	dtype := d.Type()
	if dtype == 0 {
		linfo, err := root.Lstat(fsPath)
		if err != nil {
			return Regular{}, false, err
		}
		if linfo.Mode().IsRegular() {
			return Regular{Info: linfo}, true, nil
		}
		dtype = linfo.Mode().Type()
	}

	if dtype&fs.ModeSymlink != 0 {
		return followLink(root, fsPath)
	}
	if !dtype.IsRegular() {
		return Regular{}, false, nil
	}

	info, err := d.Info()
	if err != nil {
		return Regular{}, false, err
	}
	if !info.Mode().IsRegular() {
		return Regular{}, false, nil
	}
	return Regular{Info: info}, true, nil
}

func followLink(root *os.Root, fsPath string) (Regular, bool, error) {
	info, err := root.Stat(fsPath)
	if err != nil {
		return Regular{}, false, fmt.Errorf("%w: %s: %w", ErrBadLink, fsPath, err)
	}
	if !info.Mode().IsRegular() {
		return Regular{}, false, nil
	}
	return Regular{Info: info, Linked: true}, true, nil
}
