package zipsplit

import (
	"github.com/meigma/zipsplit/partition"
	"github.com/meigma/zipsplit/source"
)

// Errors re-exported from source.
var (
	// ErrMultipleTopLevel is returned when a source archive has more than one
	// top-level entry. Nothing is written when it occurs.
	ErrMultipleTopLevel = source.ErrMultipleTopLevel
)

// Errors re-exported from partition.
var (
	// ErrTooManyParts is returned when a run needs more than partition.MaxParts parts.
	ErrTooManyParts = partition.ErrTooManyParts
)
