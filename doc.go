// Package zipsplit repackages a directory tree or an existing zip archive
// into an ordered sequence of size- and count-bounded zip archives, ready
// for upload to a repository manager with per-archive limits.
//
// # Quick Start
//
// Partition a directory:
//
//	parts, err := zipsplit.FromDirectory(ctx, "./build/repo", "./out")
//
// Partition a release archive, keeping only its payload directory:
//
//	parts, err := zipsplit.FromArchive(ctx, "pkg-1.0-maven-repository.zip", "./out",
//	    zipsplit.WithMaxSize(500_000_000),
//	    zipsplit.WithCompression(zipsplit.CompressionZstd),
//	)
//
// Both return the paths of part-000.zip, part-001.zip, ... in creation
// order.
//
// # Archive layout
//
// A source archive must have exactly one top-level directory; its name does
// not matter. If that directory contains a maven-repository directory, only
// the content below it is repackaged and everything else (examples,
// licenses, ...) is dropped. Otherwise everything is repackaged with the
// top-level directory removed from each name.
//
// # Limits
//
// A part holds at most [DefaultMaxCount] entries and stays below
// [DefaultMaxSize] bytes of declared (uncompressed) entry size, unless a
// single entry is larger than the limit on its own. Use [WithMaxCount] and
// [WithMaxSize] to change them.
//
// The low-level building blocks live in the [source] and [partition]
// subpackages.
package zipsplit
