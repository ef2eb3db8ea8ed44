package contracts

import "time"

// FolderResult is the outcome of composing one directory. Failures are
// recorded here instead of unwinding through the batch loop, so one
// directory's error never affects another's.
type FolderResult struct {
	Folder      string
	OutputPath  string
	Pages       int
	InputBytes  int64
	OutputBytes int64
	Elapsed     time.Duration
	Err         error
}

// BatchReport aggregates the per-directory outcomes of one run.
type BatchReport struct {
	Results     []FolderResult
	Converted   int
	Failed      int
	InputBytes  int64
	OutputBytes int64
}

// Add folds one folder outcome into the aggregate counters.
func (r *BatchReport) Add(fr FolderResult) {
	r.Results = append(r.Results, fr)
	if fr.Err != nil {
		r.Failed++
		return
	}
	r.Converted++
	r.InputBytes += fr.InputBytes
	r.OutputBytes += fr.OutputBytes
}
