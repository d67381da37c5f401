package console

import (
	"fmt"
	"sync"
)

// Line is one captured log record.
type Line struct {
	Level   Level
	Message string
}

// Recorder implements Logger by collecting lines in memory, letting test
// suites assert on log output without touching the real console.
type Recorder struct {
	mu    sync.Mutex
	lines []Line
}

var _ Logger = (*Recorder)(nil)

func (r *Recorder) Infof(format string, args ...any)    { r.record(LevelInfo, format, args...) }
func (r *Recorder) Successf(format string, args ...any) { r.record(LevelSuccess, format, args...) }
func (r *Recorder) Warnf(format string, args ...any)    { r.record(LevelWarn, format, args...) }
func (r *Recorder) Errorf(format string, args ...any)   { r.record(LevelError, format, args...) }
func (r *Recorder) Debugf(format string, args ...any)   { r.record(LevelDebug, format, args...) }

func (r *Recorder) record(lvl Level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, Line{Level: lvl, Message: fmt.Sprintf(format, args...)})
}

// Lines returns a copy of everything recorded so far.
func (r *Recorder) Lines() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Line, len(r.lines))
	copy(out, r.lines)
	return out
}

// Count returns how many lines were recorded at the given level.
func (r *Recorder) Count(lvl Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.lines {
		if l.Level == lvl {
			n++
		}
	}
	return n
}

// Messages returns the message text of every line at the given level,
// in the order recorded.
func (r *Recorder) Messages(lvl Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, l := range r.lines {
		if l.Level == lvl {
			out = append(out, l.Message)
		}
	}
	return out
}
