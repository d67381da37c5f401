// Package status renders a read-only maintenance dashboard: volume
// usage, the recycle-bin footprint, and the size of every sweep target.
package status

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/yusufpapurcu/wmi"

	"github.com/lakshaymaurya-felt/winsweep/internal/core"
	"github.com/lakshaymaurya-felt/winsweep/internal/recycle"
	"github.com/lakshaymaurya-felt/winsweep/internal/targets"
)

// VolumeInfo is the usage picture for one mounted volume.
type VolumeInfo struct {
	Mount   string
	Fstype  string
	Total   uint64
	Used    uint64
	UsedPct float64
}

// BinInfo is the recycle-bin footprint across all drives.
type BinInfo struct {
	Bytes int64
	Items int64
	Err   error
}

// Win32_OperatingSystem is the WMI projection for the dashboard header.
// The struct name must match the WMI class name.
type Win32_OperatingSystem struct {
	Caption                string
	TotalVisibleMemorySize uint64 // KB
	FreePhysicalMemory     uint64 // KB
}

// Snapshot is everything the dashboard shows, collected in one pass.
type Snapshot struct {
	Hostname  string
	OSCaption string
	Uptime    time.Duration
	MemTotal  uint64
	MemFree   uint64
	Volumes   []VolumeInfo
	Bin       BinInfo
	Targets   []targets.Measured
	TakenAt   time.Time
}

// Collect gathers a full snapshot. Probes degrade independently: a
// failed WMI query falls back to the NT version string, a failed bin
// query is carried in Bin.Err, and an unreadable profiles root just
// shortens the target table.
func Collect(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{TakenAt: time.Now()}

	if hi, err := host.InfoWithContext(ctx); err == nil {
		snap.Hostname = hi.Hostname
		snap.Uptime = time.Duration(hi.Uptime) * time.Second
	} else if name, herr := os.Hostname(); herr == nil {
		snap.Hostname = name
	}

	var oss []Win32_OperatingSystem
	if err := wmi.Query(wmi.CreateQuery(&oss, ""), &oss); err == nil && len(oss) > 0 {
		snap.OSCaption = strings.TrimSpace(oss[0].Caption)
		snap.MemTotal = oss[0].TotalVisibleMemorySize * 1024
		snap.MemFree = oss[0].FreePhysicalMemory * 1024
	}
	if snap.OSCaption == "" {
		snap.OSCaption = core.WindowsVersionString()
	}

	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("enumerate volumes: %w", err)
	}
	for _, p := range parts {
		usage, uerr := disk.UsageWithContext(ctx, p.Mountpoint)
		if uerr != nil {
			// Empty optical drives and disconnected mounts land here.
			continue
		}
		snap.Volumes = append(snap.Volumes, VolumeInfo{
			Mount:   p.Mountpoint,
			Fstype:  p.Fstype,
			Total:   usage.Total,
			Used:    usage.Used,
			UsedPct: usage.UsedPercent,
		})
	}

	bytes, items, berr := recycle.Query()
	snap.Bin = BinInfo{Bytes: bytes, Items: items, Err: berr}

	sys := targets.System()
	user, _ := targets.User()
	snap.Targets = targets.Measure(ctx, append(sys, user...))

	return snap, nil
}
