// Package sizing provides safe size arithmetic and conversions to prevent overflow.
package sizing

import "errors"

// ErrNegative is returned when a size reported by the filesystem is negative.
var ErrNegative = errors.New("negative size")

// AddUint64 adds two uint64 values, returning (result, false) on overflow.
func AddUint64(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// FromInt64 converts a filesystem size to uint64, rejecting negative values.
func FromInt64(size int64) (uint64, error) {
	if size < 0 {
		return 0, ErrNegative
	}
	return uint64(size), nil
}
