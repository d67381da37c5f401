package targets

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// maxSizers bounds concurrent directory walks during measurement.
const maxSizers = 4

// Measured pairs a target with its on-disk footprint.
type Measured struct {
	Target
	Bytes  int64
	Exists bool
}

// Size walks path and sums file sizes. Unreadable entries are skipped;
// ctx cancellation stops the walk early with whatever was counted.
func Size(ctx context.Context, path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			// Access denied somewhere below; keep walking siblings.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total
}

// Measure sizes each target, a few at a time.
func Measure(ctx context.Context, ts []Target) []Measured {
	out := make([]Measured, len(ts))
	sem := make(chan struct{}, maxSizers)
	var wg sync.WaitGroup

	for i, t := range ts {
		out[i] = Measured{Target: t}
		info, err := os.Stat(t.Path)
		if err != nil || !info.IsDir() {
			continue
		}
		out[i].Exists = true

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			out[i].Bytes = Size(ctx, path)
		}(i, t.Path)
	}

	wg.Wait()
	return out
}
