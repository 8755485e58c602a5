// Package source enumerates the entries that get repackaged into part
// archives.
//
// Two sources exist:
//   - [Dir] walks a directory tree and yields every regular file unchanged.
//   - [Archive] reads an existing zip, detects its single top-level wrapper
//     directory and an optional payload directory beneath it, and yields
//     the remapped entries.
//
// Sources hold only metadata. Entry content is opened on demand through
// [Opener], so a multi-gigabyte archive is never loaded into memory.
package source
