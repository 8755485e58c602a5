package write

import (
	"path"
	"strings"
)

// SkipCompressionFunc returns true when an entry should be stored
// uncompressed. It receives the logical entry name and its declared size
// and is called once per entry, so keep it cheap.
type SkipCompressionFunc func(name string, size uint64) bool

// DefaultSkipCompression returns a SkipCompressionFunc that skips entries
// smaller than minSize and known already-compressed extensions, including
// the jar/war/ear family that dominates Maven repositories.
func DefaultSkipCompression(minSize uint64) SkipCompressionFunc {
	return func(name string, size uint64) bool {
		if minSize > 0 && size < minSize {
			return true
		}
		ext := strings.ToLower(path.Ext(name))
		_, ok := defaultSkipCompressionExts[ext]
		return ok
	}
}

// ShouldSkip checks if any predicate returns true for the given entry.
func ShouldSkip(name string, size uint64, predicates []SkipCompressionFunc) bool {
	for _, fn := range predicates {
		if fn == nil {
			continue
		}
		if fn(name, size) {
			return true
		}
	}
	return false
}

var defaultSkipCompressionExts = map[string]struct{}{
	".7z":    {},
	".aar":   {},
	".br":    {},
	".bz2":   {},
	".ear":   {},
	".gif":   {},
	".gz":    {},
	".jar":   {},
	".jpeg":  {},
	".jpg":   {},
	".png":   {},
	".rar":   {},
	".tgz":   {},
	".war":   {},
	".webp":  {},
	".woff":  {},
	".woff2": {},
	".xz":    {},
	".zip":   {},
	".zst":   {},
}
