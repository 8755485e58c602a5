package partition

import "errors"

// ErrTooManyParts is returned when a run would need more parts than the
// three-digit naming scheme can express in sort order.
var ErrTooManyParts = errors.New("zipsplit: too many parts")
