// Package pathutil provides path manipulation for slash-separated archive paths.
package pathutil

import "strings"

// TopLevel returns the first element of a slash-separated path.
// A path without a slash is its own top level.
func TopLevel(name string) string {
	top, _, _ := strings.Cut(name, "/")
	return top
}

// StripTopLevel removes the first element of a slash-separated path.
// A path without a slash is returned unchanged.
func StripTopLevel(name string) string {
	_, rest, ok := strings.Cut(name, "/")
	if !ok {
		return name
	}
	return rest
}

// DirPrefix joins elements into a directory prefix with a trailing slash,
// suitable for strings.HasPrefix matching of children.
func DirPrefix(elems ...string) string {
	return strings.Join(elems, "/") + "/"
}

// IsDirMarker reports whether an archive entry is an empty directory marker.
func IsDirMarker(name string, size uint64) bool {
	return strings.HasSuffix(name, "/") && size == 0
}
