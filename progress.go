package zipsplit

// ProgressEvent reports progress of a partitioning run.
type ProgressEvent struct {
	// Stage identifies the current phase of the run.
	Stage ProgressStage

	// Path is the entry just written, or the part just closed.
	Path string

	// Part is the index of the part the event refers to, -1 if none.
	Part int

	// FilesDone is the number of entries written so far.
	FilesDone int

	// BytesDone is the declared size of the entries written so far.
	BytesDone uint64
}

// ProgressStage identifies the current phase of a run.
type ProgressStage uint8

const (
	// StageScanning indicates the source is being opened and inspected.
	StageScanning ProgressStage = iota

	// StageWriting indicates an entry was written to a part.
	StageWriting

	// StagePartClosed indicates a part was finalized.
	StagePartClosed
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageScanning:
		return "scanning"
	case StageWriting:
		return "writing"
	case StagePartClosed:
		return "part closed"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates. It is called synchronously from
// the partitioning goroutine.
type ProgressFunc func(ProgressEvent)
