package domain

import "time"

// Stage is a state of a single ETL run.
type Stage string

const (
	StageIdle         Stage = "idle"
	StageExtracting   Stage = "extracting"
	StageTransforming Stage = "transforming"
	StageLoading      Stage = "loading"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

var stageTransitions = map[Stage][]Stage{
	StageIdle:         {StageExtracting},
	StageExtracting:   {StageTransforming, StageFailed},
	StageTransforming: {StageLoading, StageFailed},
	StageLoading:      {StageDone, StageFailed},
}

// CanTransition reports whether a run may move from s to next.
// Done and Failed are terminal.
func (s Stage) CanTransition(next Stage) bool {
	for _, allowed := range stageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s ends a run.
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageFailed
}

// RunStatus is the outcome of a run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// RunResult summarizes one pipeline run.
type RunResult struct {
	RunID        string
	Status       RunStatus
	FailedStage  Stage // stage that raised the error; empty on success
	RowsInserted int
	Err          error
	StartedAt    time.Time
	Duration     time.Duration
}

// Failed reports whether the run ended in the Failed state.
func (r RunResult) Failed() bool {
	return r.Status == RunFailed
}
