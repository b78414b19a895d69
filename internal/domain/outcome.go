package domain

import "time"

// Outcome classifies how one step ended. Every step lands in exactly one
// bucket, so a summary's counts always add up to the number of results.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// StepResult records the terminal state of one executed step.
type StepResult struct {
	Step       string        `json:"step"`
	Ecosystem  Ecosystem     `json:"ecosystem"`
	Tool       string        `json:"tool,omitempty"`
	Outcome    Outcome       `json:"outcome"`
	Diagnostic string        `json:"diagnostic,omitempty"`
	Output     string        `json:"output,omitempty"`
	ExitCode   int           `json:"exit_code,omitempty"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
}

// maxFailureExitCode keeps the failed-count exit status clear of the
// 126..165 range shells reserve for signal and not-executable statuses.
const maxFailureExitCode = 125

// InterruptExitCode is the conventional status for a SIGINT-terminated run.
const InterruptExitCode = 130

// RunSummary aggregates the ordered step results of one run.
type RunSummary struct {
	Task        Task          `json:"task"`
	ProjectRoot string        `json:"project_root"`
	Ecosystems  []Ecosystem   `json:"ecosystems"`
	Results     []StepResult  `json:"results"`
	Total       int           `json:"total"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	Skipped     int           `json:"skipped"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"-"`
	DurationMS  int64         `json:"duration_ms"`
	Interrupted bool          `json:"interrupted,omitempty"`
	CommitHash  string        `json:"commit_hash,omitempty"`
}

// NewRunSummary starts an empty summary for one task against one project.
func NewRunSummary(task Task, projectRoot string) *RunSummary {
	return &RunSummary{
		Task:        task,
		ProjectRoot: projectRoot,
		StartedAt:   time.Now(),
	}
}

// Record appends one result and updates the outcome counts.
func (s *RunSummary) Record(r StepResult) {
	s.Results = append(s.Results, r)
	s.Total++
	switch r.Outcome {
	case OutcomePassed:
		s.Passed++
	case OutcomeFailed:
		s.Failed++
	case OutcomeSkipped:
		s.Skipped++
	}
}

// Finish stamps the total wall-clock duration.
func (s *RunSummary) Finish() {
	s.Duration = time.Since(s.StartedAt)
	s.DurationMS = s.Duration.Milliseconds()
}

// ExitCode derives the process exit status from the summary: zero for a
// clean run, otherwise the number of failed steps, capped so the status
// stays distinguishable from shell-reserved codes. An interrupted run
// reports the conventional SIGINT status regardless of counts.
func (s *RunSummary) ExitCode() int {
	if s.Interrupted {
		return InterruptExitCode
	}
	switch {
	case s.Failed == 0:
		return 0
	case s.Failed > maxFailureExitCode:
		return maxFailureExitCode
	default:
		return s.Failed
	}
}

// Entry converts a finished summary into its persisted history form.
func (s *RunSummary) Entry() RunEntry {
	return RunEntry{
		Timestamp:  s.StartedAt.UTC().Format(time.RFC3339),
		CommitHash: s.CommitHash,
		Task:       s.Task,
		Total:      s.Total,
		Passed:     s.Passed,
		Failed:     s.Failed,
		Skipped:    s.Skipped,
		DurationMS: s.DurationMS,
	}
}

// RunEntry is one persisted history record.
type RunEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Task       Task   `json:"task"`
	Total      int    `json:"total"`
	Passed     int    `json:"passed"`
	Failed     int    `json:"failed"`
	Skipped    int    `json:"skipped"`
	DurationMS int64  `json:"duration_ms"`
}
