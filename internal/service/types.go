package service

// FileStatus is the terminal state of one translatable file in a run.
type FileStatus int

const (
	// StatusTranslated means the file was (re)translated this run and its
	// entry persisted to metadata.
	StatusTranslated FileStatus = iota
	// StatusSkipped means the stored hash matched the current content.
	StatusSkipped
	// StatusFailed means the file could not be processed; the rest of the
	// batch still ran.
	StatusFailed
)

func (s FileStatus) String() string {
	switch s {
	case StatusTranslated:
		return "Translated"
	case StatusSkipped:
		return "Skipped"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// FileResult captures the outcome for a single translatable file.
type FileResult struct {
	Path   string
	Status FileStatus
	Err    error
}

// Summary reports the outcome of one run.
type Summary struct {
	Commit string

	// Total is the number of translatable files discovered.
	Total int
	// Translated is how many were newly translated this run.
	Translated int
	// Skipped is how many were already up to date.
	Skipped int
	// Failed is how many could not be processed.
	Failed int
	// Copied is the number of pass-through files mirrored verbatim.
	Copied int

	Results []FileResult
}
