// Package runner sequences a maintenance sweep: privilege gate, recycle
// bin, system temp, per-user temp, then the external deep clean. Only
// the gate can stop the run; every later step tolerates its own
// failures and the next step always executes.
package runner

import (
	"context"
	"fmt"

	"github.com/lakshaymaurya-felt/winsweep/internal/console"
	"github.com/lakshaymaurya-felt/winsweep/internal/fsclean"
	"github.com/lakshaymaurya-felt/winsweep/internal/recycle"
	"github.com/lakshaymaurya-felt/winsweep/internal/targets"
)

// FolderClearer empties one directory's contents.
type FolderClearer interface {
	Clear(path string) fsclean.Result
}

// RecycleStore is the bulk trash API plus its fallback roots.
type RecycleStore interface {
	Probe() recycle.Capability
	Empty() error
	Roots() []string
}

// TargetSource resolves the directories to sweep.
type TargetSource interface {
	System() []targets.Target
	User() ([]targets.Target, error)
}

// DeepCleaner launches the external cleanup tool and blocks on it.
type DeepCleaner interface {
	Run(ctx context.Context, configID int) error
}

// Runner drives the sweep. Every dependency is injected so tests can
// count invocations and capture output.
type Runner struct {
	Log       console.Logger
	Elevated  func() (bool, error)
	Store     RecycleStore
	Clearer   FolderClearer
	Targets   TargetSource
	DeepClean DeepCleaner

	// SagerunID selects the saved Disk Cleanup configuration.
	SagerunID int
}

// Run executes the fixed sequence and returns the structured report.
func (r *Runner) Run(ctx context.Context) Report {
	elevated, err := r.Elevated()
	if err != nil {
		r.Log.Warnf("Could not determine elevation: %v", err)
	}
	if !elevated {
		r.Log.Errorf("FATAL: administrator rights are required; re-run from an elevated prompt")
		return Report{
			Halted: true,
			Outcomes: []Outcome{{
				Target: "privilege gate",
				Status: StatusFailed,
				Detail: "process is not elevated",
			}},
		}
	}

	var outcomes []Outcome

	outcomes = append(outcomes, r.ClearRecycleBin())

	for _, t := range r.Targets.System() {
		outcomes = append(outcomes, r.ClearTarget(t))
	}

	users, err := r.Targets.User()
	if err != nil {
		r.Log.Warnf("Could not enumerate user profiles: %v", err)
		outcomes = append(outcomes, Outcome{
			Target: "user profiles",
			Status: StatusWarning,
			Detail: err.Error(),
		})
	}
	for _, t := range users {
		outcomes = append(outcomes, r.ClearTarget(t))
	}

	outcomes = append(outcomes, r.RunDeepClean(ctx))

	r.Log.Successf("Maintenance sweep complete.")
	return Report{Outcomes: outcomes}
}

// ClearRecycleBin prefers the bulk shell API; when the API is missing
// or errors, each per-volume trash root is cleared exactly once.
func (r *Runner) ClearRecycleBin() Outcome {
	const target = "Recycle Bin"

	if r.Store.Probe() == recycle.Available {
		err := r.Store.Empty()
		if err == nil {
			r.Log.Successf("Recycle Bin emptied.")
			return Outcome{Target: target, Status: StatusCleared, Detail: "emptied via shell API"}
		}
		r.Log.Warnf("Recycle Bin API failed (%v); clearing per-volume trash folders", err)
	} else {
		r.Log.Warnf("Recycle Bin API unavailable; clearing per-volume trash folders")
	}

	roots := r.Store.Roots()
	if len(roots) == 0 {
		r.Log.Warnf("No per-volume trash folders found.")
		return Outcome{Target: target, Status: StatusWarning, Detail: "no per-volume trash folders found"}
	}

	removed, failed := 0, 0
	for _, root := range roots {
		res := r.Clearer.Clear(root)
		removed += res.Removed
		failed += len(res.Failures)
	}

	detail := fmt.Sprintf("cleared %d trash folders, removed %d entries", len(roots), removed)
	if failed > 0 {
		detail += fmt.Sprintf(", %d could not be removed", failed)
	}
	r.Log.Successf("Recycle Bin cleared via per-volume trash folders.")
	return Outcome{Target: target, Status: StatusCleared, Detail: detail}
}

// ClearTarget empties one target directory and reduces the result to a
// single outcome line.
func (r *Runner) ClearTarget(t targets.Target) Outcome {
	res := r.Clearer.Clear(t.Path)

	if res.Skipped {
		// The clearer already logged the skip line.
		return Outcome{Target: t.Label, Status: StatusSkipped, Detail: res.Summary()}
	}

	// Locked entries never demote the step: clearing is best effort and
	// the per-entry warnings are already on the console.
	r.Log.Successf("Cleared %s (%s).", t.Label, res.Summary())
	return Outcome{Target: t.Label, Status: StatusCleared, Detail: res.Summary()}
}

// RunDeepClean launches the external Disk Cleanup pass and waits for it.
func (r *Runner) RunDeepClean(ctx context.Context) Outcome {
	const target = "Deep clean"

	r.Log.Infof("Starting Disk Cleanup (sagerun configuration %d)...", r.SagerunID)
	if err := r.DeepClean.Run(ctx, r.SagerunID); err != nil {
		r.Log.Warnf("Disk Cleanup did not complete: %v", err)
		return Outcome{Target: target, Status: StatusWarning, Detail: err.Error()}
	}

	r.Log.Successf("Disk Cleanup completed.")
	return Outcome{
		Target: target,
		Status: StatusCleared,
		Detail: fmt.Sprintf("sagerun configuration %d completed", r.SagerunID),
	}
}
