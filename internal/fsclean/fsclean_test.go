package fsclean

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/winsweep/internal/console"
)

func mustWrite(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestClearMissingPathIsNoOp(t *testing.T) {
	t.Parallel()

	var rec console.Recorder
	c := New(&rec, Options{})

	res := c.Clear(filepath.Join(t.TempDir(), "absent"))

	assert.True(t, res.Skipped)
	assert.Zero(t, res.Removed)
	assert.Empty(t, res.Failures)

	lines := rec.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, console.LevelInfo, lines[0].Level)
	assert.Contains(t, lines[0].Message, "does not exist")
}

func TestClearRemovesContentsKeepsRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.tmp"))
	mustWrite(t, filepath.Join(dir, "b.tmp"))
	mustWrite(t, filepath.Join(dir, "nested", "deep", "c.tmp"))

	var rec console.Recorder
	res := New(&rec, Options{}).Clear(dir)

	// Three direct children: a.tmp, b.tmp, nested.
	assert.Equal(t, 3, res.Removed)
	assert.Empty(t, res.Failures)
	assert.False(t, res.Skipped)

	info, err := os.Stat(dir)
	require.NoError(t, err, "target root must survive the clear")
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClearToleratesLockedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.tmp"))
	mustWrite(t, filepath.Join(dir, "b.tmp"))

	// An open handle without FILE_SHARE_DELETE blocks removal, the same
	// way a running process pins its temp files.
	locked, err := os.Create(filepath.Join(dir, "locked.tmp"))
	require.NoError(t, err)
	defer locked.Close()

	var rec console.Recorder
	res := New(&rec, Options{}).Clear(dir)

	assert.Equal(t, 2, res.Removed)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 1, rec.Count(console.LevelWarn))

	// The locked file is still there; the siblings are gone.
	_, err = os.Stat(locked.Name())
	assert.NoError(t, err)
}

func TestClearExclusionPatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "keep.log"))
	mustWrite(t, filepath.Join(dir, "drop.tmp"))

	var rec console.Recorder
	res := New(&rec, Options{Exclude: []string{"*.LOG"}}).Clear(dir)

	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, 1, res.Excluded)
	assert.Empty(t, res.Failures)

	_, err := os.Stat(filepath.Join(dir, "keep.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "drop.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestClearRefusesProtectedRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "precious.dll"))

	var rec console.Recorder
	res := New(&rec, Options{Protected: []string{dir}}).Clear(dir)

	assert.Zero(t, res.Removed)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 1, rec.Count(console.LevelWarn))

	_, err := os.Stat(filepath.Join(dir, "precious.dll"))
	assert.NoError(t, err)
}

func TestResultSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"skipped", Result{Skipped: true}, "does not exist"},
		{"clean", Result{Removed: 12}, "removed 12 entries"},
		{"single", Result{Removed: 1}, "removed 1 entry"},
		{
			"partial",
			Result{Removed: 2, Failures: []error{os.ErrPermission}},
			"removed 2 entries, 1 could not be removed",
		},
		{
			"excluded",
			Result{Removed: 3, Excluded: 2},
			"removed 3 entries, 2 excluded",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.res.Summary())
		})
	}
}
