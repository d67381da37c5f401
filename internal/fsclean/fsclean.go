// Package fsclean empties directories without ever deleting the
// directory itself, tolerating locked and access-denied entries so one
// stuck file never aborts a sweep.
package fsclean

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/IGLOU-EU/go-wildcard"

	"github.com/lakshaymaurya-felt/winsweep/internal/console"
)

// Result aggregates one Clear call.
type Result struct {
	// Removed counts direct children whose removal fully succeeded.
	Removed int

	// Excluded counts children skipped by an exclusion pattern.
	Excluded int

	// Failures holds one error per child that could not be removed.
	Failures []error

	// Skipped marks a target that did not exist; a no-op, not a failure.
	Skipped bool
}

// Summary renders the result as a one-line step detail.
func (r Result) Summary() string {
	if r.Skipped {
		return "does not exist"
	}
	s := fmt.Sprintf("removed %d", r.Removed)
	if r.Removed == 1 {
		s += " entry"
	} else {
		s += " entries"
	}
	if n := len(r.Failures); n > 0 {
		s += fmt.Sprintf(", %d could not be removed", n)
	}
	if r.Excluded > 0 {
		s += fmt.Sprintf(", %d excluded", r.Excluded)
	}
	return s
}

// Options configures a Clearer.
type Options struct {
	// Exclude holds wildcard patterns matched (case-insensitively)
	// against each child's name and full path; matches are left in place.
	Exclude []string

	// Protected holds directory roots the Clearer refuses to clear
	// outright, whoever asks.
	Protected []string
}

// Clearer removes the contents of directories.
type Clearer struct {
	log       console.Logger
	exclude   []string
	protected map[string]struct{}
}

// New builds a Clearer that reports through log.
func New(log console.Logger, opts Options) *Clearer {
	c := &Clearer{
		log:       log,
		protected: make(map[string]struct{}, len(opts.Protected)),
	}
	for _, p := range opts.Exclude {
		c.exclude = append(c.exclude, strings.ToLower(p))
	}
	for _, p := range opts.Protected {
		c.protected[normalize(p)] = struct{}{}
	}
	return c
}

// Clear removes every direct child of path, descending into
// subdirectories as needed. A missing path is a logged no-op. Children
// that are locked or access-denied are logged as warnings and skipped;
// siblings are still attempted. path itself is never deleted.
func (c *Clearer) Clear(path string) Result {
	var res Result

	if _, ok := c.protected[normalize(path)]; ok {
		err := fmt.Errorf("refusing to clear protected path %s", path)
		c.log.Warnf("%v", err)
		res.Failures = append(res.Failures, err)
		return res
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.log.Infof("Skipped %s (does not exist)", path)
		} else {
			c.log.Warnf("Skipped %s (not accessible: %v)", path, cause(err))
		}
		res.Skipped = true
		return res
	}
	if !info.IsDir() {
		c.log.Warnf("Skipped %s (not a directory)", path)
		res.Skipped = true
		return res
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		c.log.Warnf("Could not list %s: %v", path, cause(err))
		res.Failures = append(res.Failures, err)
		return res
	}

	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if c.excluded(entry.Name(), child) {
			res.Excluded++
			c.log.Debugf("Excluded %s", child)
			continue
		}
		if err := os.RemoveAll(child); err != nil {
			res.Failures = append(res.Failures, err)
			c.log.Warnf("Could not remove %s: %v", child, cause(err))
			continue
		}
		res.Removed++
	}

	return res
}

func (c *Clearer) excluded(name, path string) bool {
	if len(c.exclude) == 0 {
		return false
	}
	name = strings.ToLower(name)
	path = strings.ToLower(path)
	for _, pattern := range c.exclude {
		if wildcard.Match(pattern, name) || wildcard.Match(pattern, path) {
			return true
		}
	}
	return false
}

// normalize keys paths for comparison on a case-insensitive filesystem.
func normalize(path string) string {
	return strings.ToLower(filepath.Clean(path))
}

// cause strips the *fs.PathError wrapper so logged lines do not repeat
// the path they already name.
func cause(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
