package runner

// Status classifies what happened to one sweep step.
type Status string

const (
	StatusCleared Status = "cleared"
	StatusSkipped Status = "skipped"
	StatusWarning Status = "warning"
	StatusFailed  Status = "failed"
)

// Outcome records one step's result. The console lines remain the
// operator surface; Outcomes are the machine surface, so a caller can
// detect partial failure without parsing logs.
type Outcome struct {
	Target string
	Status Status
	Detail string
}

// Report is the structured result of a full sweep.
type Report struct {
	Outcomes []Outcome

	// Halted marks a run stopped by the privilege gate before any
	// cleanup step was attempted.
	Halted bool
}

// ExitCode maps the report to the process exit status: 0 for a
// completed sequence regardless of per-target warnings, 2 when the
// gate halted the run.
func (r Report) ExitCode() int {
	if r.Halted {
		return 2
	}
	return 0
}

// Count returns how many outcomes carry the given status.
func (r Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}
