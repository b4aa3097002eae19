package pipeline

import (
	"fmt"
	"time"
)

// Result is the outcome of one variant job.
type Result struct {
	Video   string // asset base name
	Variant string // catalog suffix
	Skipped bool
	Elapsed time.Duration
	Err     error
}

// Report aggregates the outcomes of a single pipeline run.
type Report struct {
	RunID   string
	Results []Result
}

func (r *Report) Built() int {
	n := 0
	for _, res := range r.Results {
		if !res.Skipped && res.Err == nil {
			n++
		}
	}
	return n
}

func (r *Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.Skipped {
			n++
		}
	}
	return n
}

func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err summarizes the run as a single error, nil when every variant succeeded
// or was skipped.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}

	first := failed[0]
	return fmt.Errorf("%d of %d variant builds failed, first: %s/%s: %w",
		len(failed), len(r.Results), first.Video, first.Variant, first.Err)
}
