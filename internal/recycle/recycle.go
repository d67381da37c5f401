// Package recycle empties the Windows Recycle Bin, preferring the
// shell32 bulk-clear API and falling back to the per-volume
// $Recycle.Bin folders when the API cannot be resolved.
package recycle

import (
	"fmt"
	"syscall"
	"unsafe"
)

// ─── Shell32 Syscalls ────────────────────────────────────────────────────────

var (
	modShell32          = syscall.NewLazyDLL("shell32.dll")
	procEmptyRecycleBin = modShell32.NewProc("SHEmptyRecycleBinW")
	procQueryRecycleBin = modShell32.NewProc("SHQueryRecycleBinW")
)

const (
	sherbNoConfirmation = 0x00000001
	sherbNoProgressUI   = 0x00000002
	sherbNoSound        = 0x00000004
)

// hrAlreadyEmpty is the HRESULT (E_UNEXPECTED) SHEmptyRecycleBinW
// returns for a bin with nothing in it.
const hrAlreadyEmpty = 0x8000FFFF

// ─── Capability Probe ────────────────────────────────────────────────────────

// Capability reports whether the bulk-clear shell API can be called on
// this host.
type Capability int

const (
	Unavailable Capability = iota
	Available
)

func (c Capability) String() string {
	if c == Available {
		return "available"
	}
	return "unavailable"
}

// Probe resolves the bulk-clear entry point. Callers branch on the
// result instead of treating a missing export as an error.
func Probe() Capability {
	if err := procEmptyRecycleBin.Find(); err != nil {
		return Unavailable
	}
	return Available
}

// ─── Bulk Clear ──────────────────────────────────────────────────────────────

// Empty clears the Recycle Bin on all drives via SHEmptyRecycleBinW.
// An already-empty bin is success.
func Empty() error {
	flags := uintptr(sherbNoConfirmation | sherbNoProgressUI | sherbNoSound)
	ret, _, _ := procEmptyRecycleBin.Call(0, 0, flags)

	hr := uint32(ret)
	// S_OK (0) = success, E_UNEXPECTED (0x8000FFFF) = bin already empty.
	if hr != 0 && hr != hrAlreadyEmpty {
		return fmt.Errorf("SHEmptyRecycleBinW failed: HRESULT 0x%08x", hr)
	}
	return nil
}

// shQueryRBInfo mirrors the Windows SHQUERYRBINFO struct.
// Go's natural alignment adds padding after cbSize on AMD64,
// matching the C struct layout on both 32-bit and 64-bit.
type shQueryRBInfo struct {
	cbSize      uint32
	i64Size     int64
	i64NumItems int64
}

// Query returns the total size and item count of the Recycle Bin across
// all drives via SHQueryRecycleBinW.
func Query() (bytes, items int64, err error) {
	var info shQueryRBInfo
	info.cbSize = uint32(unsafe.Sizeof(info))

	ret, _, _ := procQueryRecycleBin.Call(
		0, // NULL = query all drives
		uintptr(unsafe.Pointer(&info)),
	)
	if ret != 0 {
		return 0, 0, fmt.Errorf("SHQueryRecycleBinW failed: HRESULT 0x%08x", uint32(ret))
	}
	return info.i64Size, info.i64NumItems, nil
}

// Store adapts the package API to the orchestrator's recycle-store
// dependency.
type Store struct{}

func (Store) Probe() Capability { return Probe() }
func (Store) Empty() error      { return Empty() }
func (Store) Roots() []string   { return Roots() }
