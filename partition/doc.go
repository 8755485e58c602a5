// Package partition writes a stream of entries into a sequence of size- and
// count-bounded zip archives.
//
// A [Writer] keeps at most one part open. Before each entry it evaluates
// the rollover rule:
//
//	no part open || count >= maxCount || size+entry.Size >= maxSize
//
// and, when it holds, finalizes the open part and starts the next one.
// Sizes are the entries' declared sizes, not compressed bytes. An entry
// whose declared size alone reaches maxSize still gets written, alone in
// its own part.
//
// Parts are named part-000.zip, part-001.zip, ... so that lexicographic
// order equals creation order.
package partition
