package source

import "errors"

// ErrMultipleTopLevel is returned when a source archive has more than one
// distinct top-level path component.
var ErrMultipleTopLevel = errors.New("zipsplit: invalid structure: multiple top-level entries")
