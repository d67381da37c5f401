package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/winsweep/internal/console"
	"github.com/lakshaymaurya-felt/winsweep/internal/fsclean"
	"github.com/lakshaymaurya-felt/winsweep/internal/recycle"
	"github.com/lakshaymaurya-felt/winsweep/internal/targets"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type fakeStore struct {
	cap      recycle.Capability
	emptyErr error
	roots    []string

	probes  int
	empties int
}

func (s *fakeStore) Probe() recycle.Capability { s.probes++; return s.cap }
func (s *fakeStore) Empty() error              { s.empties++; return s.emptyErr }
func (s *fakeStore) Roots() []string           { return s.roots }

type fakeClearer struct {
	calls   []string
	results map[string]fsclean.Result
}

func (c *fakeClearer) Clear(path string) fsclean.Result {
	c.calls = append(c.calls, path)
	return c.results[path]
}

type fakeSource struct {
	system  []targets.Target
	user    []targets.Target
	userErr error
}

func (s fakeSource) System() []targets.Target        { return s.system }
func (s fakeSource) User() ([]targets.Target, error) { return s.user, s.userErr }

type fakeDeep struct {
	err   error
	calls int
	gotID int
}

func (d *fakeDeep) Run(_ context.Context, id int) error {
	d.calls++
	d.gotID = id
	return d.err
}

func elevated() (bool, error)    { return true, nil }
func notElevated() (bool, error) { return false, nil }

func sysTarget(label, path string) targets.Target {
	return targets.Target{Label: label, Path: path, Scope: targets.ScopeSystem}
}

func userTarget(label, path string) targets.Target {
	return targets.Target{Label: label, Path: path, Scope: targets.ScopeUser}
}

func newRunner(rec *console.Recorder, store *fakeStore, clearer *fakeClearer, src fakeSource, deep *fakeDeep) *Runner {
	return &Runner{
		Log:       rec,
		Elevated:  elevated,
		Store:     store,
		Clearer:   clearer,
		Targets:   src,
		DeepClean: deep,
		SagerunID: 1,
	}
}

// ─── Gate ────────────────────────────────────────────────────────────────────

func TestGateDenialPreventsEveryStep(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	store := &fakeStore{cap: recycle.Available}
	clearer := &fakeClearer{}
	deep := &fakeDeep{}

	r := newRunner(&rec, store, clearer, fakeSource{
		system: []targets.Target{sysTarget("System temp", `C:\Windows\Temp`)},
	}, deep)
	r.Elevated = notElevated

	report := r.Run(context.Background())

	assert.True(t, report.Halted)
	assert.Equal(t, 2, report.ExitCode())
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, StatusFailed, report.Outcomes[0].Status)

	// Zero invocations past the gate.
	assert.Zero(t, store.probes)
	assert.Zero(t, store.empties)
	assert.Empty(t, clearer.calls)
	assert.Zero(t, deep.calls)

	assert.Equal(t, 1, rec.Count(console.LevelError))
}

func TestGateProbeErrorTreatedAsDenied(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	deep := &fakeDeep{}
	r := newRunner(&rec, &fakeStore{}, &fakeClearer{}, fakeSource{}, deep)
	r.Elevated = func() (bool, error) { return false, errors.New("token query failed") }

	report := r.Run(context.Background())

	assert.True(t, report.Halted)
	assert.Zero(t, deep.calls)
	assert.Equal(t, 1, rec.Count(console.LevelWarn))
	assert.Equal(t, 1, rec.Count(console.LevelError))
}

// ─── Full sequence ───────────────────────────────────────────────────────────

func TestSequenceRunsInOrder(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	store := &fakeStore{cap: recycle.Available}
	clearer := &fakeClearer{results: map[string]fsclean.Result{
		`C:\Windows\Temp`:     {Removed: 5},
		`C:\Windows\Prefetch`: {Removed: 2},
		`C:\Users\alice\Temp`: {Removed: 7},
	}}
	deep := &fakeDeep{}

	src := fakeSource{
		system: []targets.Target{
			sysTarget("System temp", `C:\Windows\Temp`),
			sysTarget("Prefetch", `C:\Windows\Prefetch`),
		},
		user: []targets.Target{userTarget("alice temp", `C:\Users\alice\Temp`)},
	}

	report := newRunner(&rec, store, clearer, src, deep).Run(context.Background())

	assert.False(t, report.Halted)
	assert.Equal(t, 0, report.ExitCode())

	require.Len(t, report.Outcomes, 5)
	assert.Equal(t, "Recycle Bin", report.Outcomes[0].Target)
	assert.Equal(t, "System temp", report.Outcomes[1].Target)
	assert.Equal(t, "Prefetch", report.Outcomes[2].Target)
	assert.Equal(t, "alice temp", report.Outcomes[3].Target)
	assert.Equal(t, "Deep clean", report.Outcomes[4].Target)
	for _, o := range report.Outcomes {
		assert.Equal(t, StatusCleared, o.Status, "target %s", o.Target)
	}

	// Folder clears happen system-first, then per-user, in source order.
	assert.Equal(t, []string{
		`C:\Windows\Temp`,
		`C:\Windows\Prefetch`,
		`C:\Users\alice\Temp`,
	}, clearer.calls)

	assert.Equal(t, 1, store.empties)
	assert.Equal(t, 1, deep.calls)
	assert.Equal(t, 1, deep.gotID)

	// One success line per step plus the completion line.
	assert.Equal(t, 6, rec.Count(console.LevelSuccess))
}

// ─── Recycle fallback ────────────────────────────────────────────────────────

func TestRecycleFallbackWhenAPIUnavailable(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	store := &fakeStore{
		cap:   recycle.Unavailable,
		roots: []string{`C:\$Recycle.Bin`, `D:\$Recycle.Bin`},
	}
	clearer := &fakeClearer{}
	deep := &fakeDeep{}

	report := newRunner(&rec, store, clearer, fakeSource{}, deep).Run(context.Background())

	// The bulk API is never called; each trash root is cleared exactly once.
	assert.Zero(t, store.empties)
	assert.Equal(t, []string{`C:\$Recycle.Bin`, `D:\$Recycle.Bin`}, clearer.calls)
	assert.Equal(t, StatusCleared, report.Outcomes[0].Status)
	assert.Contains(t, report.Outcomes[0].Detail, "2 trash folders")
}

func TestRecycleFallbackWhenAPIErrors(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	store := &fakeStore{
		cap:      recycle.Available,
		emptyErr: errors.New("HRESULT 0x80070005"),
		roots:    []string{`C:\$Recycle.Bin`},
	}
	clearer := &fakeClearer{}

	newRunner(&rec, store, clearer, fakeSource{}, &fakeDeep{}).Run(context.Background())

	assert.Equal(t, 1, store.empties)
	assert.Equal(t, []string{`C:\$Recycle.Bin`}, clearer.calls)
	assert.Equal(t, 1, rec.Count(console.LevelWarn))
}

func TestRecycleFallbackWithNoRoots(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	store := &fakeStore{cap: recycle.Unavailable}

	report := newRunner(&rec, store, &fakeClearer{}, fakeSource{}, &fakeDeep{}).Run(context.Background())

	assert.Equal(t, StatusWarning, report.Outcomes[0].Status)
	assert.Equal(t, 0, report.ExitCode())
}

// ─── Target isolation ────────────────────────────────────────────────────────

func TestProfileEnumerationFailureIsIsolated(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	clearer := &fakeClearer{}
	deep := &fakeDeep{}

	src := fakeSource{
		system:  []targets.Target{sysTarget("System temp", `C:\Windows\Temp`)},
		userErr: errors.New("access denied"),
	}

	report := newRunner(&rec, &fakeStore{cap: recycle.Available}, clearer, src, deep).Run(context.Background())

	// System cleanup already happened and deep clean still runs.
	assert.Contains(t, clearer.calls, `C:\Windows\Temp`)
	assert.Equal(t, 1, deep.calls)
	assert.Equal(t, 0, report.ExitCode())

	var warned bool
	for _, o := range report.Outcomes {
		if o.Target == "user profiles" {
			warned = true
			assert.Equal(t, StatusWarning, o.Status)
		}
	}
	assert.True(t, warned, "expected a user-profiles warning outcome")
}

func TestZeroProfilesYieldZeroUserTargets(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	clearer := &fakeClearer{}

	src := fakeSource{
		system: []targets.Target{sysTarget("System temp", `C:\Windows\Temp`)},
	}

	report := newRunner(&rec, &fakeStore{cap: recycle.Available}, clearer, src, &fakeDeep{}).Run(context.Background())

	// Recycle + one system target + deep clean, nothing per-user.
	require.Len(t, report.Outcomes, 3)
	assert.Equal(t, []string{`C:\Windows\Temp`}, clearer.calls)
}

func TestPartiallyLockedTargetStillCleared(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	clearer := &fakeClearer{results: map[string]fsclean.Result{
		`C:\Windows\Temp`: {Removed: 2, Failures: []error{errors.New("locked")}},
	}}
	deep := &fakeDeep{}

	src := fakeSource{system: []targets.Target{sysTarget("System temp", `C:\Windows\Temp`)}}

	report := newRunner(&rec, &fakeStore{cap: recycle.Available}, clearer, src, deep).Run(context.Background())

	outcome := report.Outcomes[1]
	assert.Equal(t, StatusCleared, outcome.Status)
	assert.Contains(t, outcome.Detail, "removed 2 entries, 1 could not be removed")

	// The lock never stops the rest of the sequence.
	assert.Equal(t, 1, deep.calls)
	assert.Equal(t, 0, report.ExitCode())
}

func TestMissingTargetIsSkippedOutcome(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	clearer := &fakeClearer{results: map[string]fsclean.Result{
		`C:\Windows\Temp`: {Skipped: true},
	}}

	src := fakeSource{system: []targets.Target{sysTarget("System temp", `C:\Windows\Temp`)}}

	report := newRunner(&rec, &fakeStore{cap: recycle.Available}, clearer, src, &fakeDeep{}).Run(context.Background())

	assert.Equal(t, StatusSkipped, report.Outcomes[1].Status)
	assert.Equal(t, 0, report.ExitCode())
}

// ─── Deep clean ──────────────────────────────────────────────────────────────

func TestDeepCleanLaunchFailureIsWarningNotFatal(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	deep := &fakeDeep{err: errors.New("could not launch cleanmgr")}

	report := newRunner(&rec, &fakeStore{cap: recycle.Available}, &fakeClearer{}, fakeSource{}, deep).Run(context.Background())

	last := report.Outcomes[len(report.Outcomes)-1]
	assert.Equal(t, "Deep clean", last.Target)
	assert.Equal(t, StatusWarning, last.Status)
	assert.Equal(t, 0, report.ExitCode(), "deep-clean failure never fails the run")
}

// ─── Report helpers ──────────────────────────────────────────────────────────

func TestReportCount(t *testing.T) {
	t.Parallel()

	r := Report{Outcomes: []Outcome{
		{Status: StatusCleared},
		{Status: StatusCleared},
		{Status: StatusWarning},
		{Status: StatusSkipped},
	}}

	assert.Equal(t, 2, r.Count(StatusCleared))
	assert.Equal(t, 1, r.Count(StatusWarning))
	assert.Equal(t, 1, r.Count(StatusSkipped))
	assert.Equal(t, 0, r.Count(StatusFailed))
}
