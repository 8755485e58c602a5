package source

import (
	"fmt"
	"slices"
	"strings"

	"github.com/meigma/zipsplit/internal/pathutil"
)

// Layout is the result of scanning every name in an archive once. It is
// computed before any entry is yielded and never changes afterwards.
type Layout struct {
	// Root is the single top-level path component shared by every entry.
	Root string

	// Prefix is "<root>/<payload>/" when a payload directory was found,
	// and empty otherwise.
	Prefix string
}

// HasPayload reports whether a payload directory was found.
func (l Layout) HasPayload() bool {
	return l.Prefix != ""
}

// DetectLayout finds the top-level component shared by names and whether a
// directory called payloadDir sits directly beneath it.
//
// A name counts toward the payload only when it is nested below the
// payload directory or is the directory's own marker ("root/payload/").
// More than one distinct top-level component is an error.
func DetectLayout(names []string, payloadDir string) (Layout, error) {
	tops := make(map[string]struct{})
	var layout Layout
	for _, name := range names {
		parts := strings.Split(name, "/")
		tops[parts[0]] = struct{}{}
		if len(parts) < 3 {
			continue
		}
		if parts[1] == payloadDir {
			layout.Prefix = pathutil.DirPrefix(parts[0], parts[1])
		}
	}

	if len(tops) > 1 {
		found := make([]string, 0, len(tops))
		for top := range tops {
			found = append(found, top)
		}
		slices.Sort(found)
		return Layout{}, fmt.Errorf("%w: %s", ErrMultipleTopLevel, strings.Join(found, ", "))
	}
	for top := range tops {
		layout.Root = top
	}
	return layout, nil
}

// Rename maps an original archive name to its output name. It returns
// false when the entry lies outside the payload directory and must be
// dropped.
func (l Layout) Rename(name string) (string, bool) {
	if l.HasPayload() {
		rest, ok := strings.CutPrefix(name, l.Prefix)
		return rest, ok
	}
	return pathutil.StripTopLevel(name), true
}
