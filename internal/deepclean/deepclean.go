// Package deepclean launches the Windows Disk Cleanup tool (cleanmgr)
// against a saved configuration. The configuration itself is created
// out-of-band with `cleanmgr /sageset:<id>`; this package only runs it.
package deepclean

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sys/windows/registry"
)

// defaultTimeout is generous: cleanmgr can grind through Windows Update
// cleanup for a long time on a neglected host.
const defaultTimeout = 30 * time.Minute

// volumeCachesPath is where Disk Cleanup handlers live; /sageset writes
// a StateFlags<id> value under each handler the operator selected.
const volumeCachesPath = `SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\VolumeCaches`

// Invoker runs cleanmgr with a saved configuration and blocks until the
// child exits.
type Invoker struct {
	// Timeout bounds the child process. Zero means defaultTimeout.
	Timeout time.Duration
}

// Run launches `cleanmgr /sagerun:<configID>` and waits for it. A launch
// failure or nonzero exit comes back as an error for the caller to log;
// nothing here is fatal to a broader run.
func (i Invoker) Run(ctx context.Context, configID int) error {
	if configID < 0 || configID > 65535 {
		return fmt.Errorf("sagerun config ID %d out of range 0-65535", configID)
	}

	timeout := i.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "cleanmgr.exe", SagerunArg(configID))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return translateRunError(err, output, timeout)
	}
	return nil
}

// SagerunArg renders the cleanmgr argument for a saved configuration.
func SagerunArg(configID int) string {
	return fmt.Sprintf("/sagerun:%d", configID)
}

// translateRunError turns exec failures into operator-readable messages.
func translateRunError(err error, output []byte, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("cleanmgr timed out after %s", timeout)
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return fmt.Errorf("could not launch cleanmgr: %w", err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		outputStr := strings.TrimSpace(string(output))
		if len(outputStr) > 200 {
			// Truncate at a valid UTF-8 boundary to avoid producing invalid strings.
			outputStr = outputStr[:200]
			for len(outputStr) > 0 && !utf8.ValidString(outputStr) {
				outputStr = outputStr[:len(outputStr)-1]
			}
			outputStr += "..."
		}
		if outputStr != "" {
			return fmt.Errorf("cleanmgr exited with code %d: %s", exitErr.ExitCode(), outputStr)
		}
		return fmt.Errorf("cleanmgr exited with code %d", exitErr.ExitCode())
	}

	return fmt.Errorf("cleanmgr: %w", err)
}

// ─── Saved-Configuration Lookup ──────────────────────────────────────────────

// Registered counts the Disk Cleanup handlers carrying a StateFlags
// value for configID. Zero with a nil error means `/sagerun:<id>` would
// be a silent no-op because `/sageset:<id>` was never saved.
func Registered(configID int) (int, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, volumeCachesPath,
		registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return 0, fmt.Errorf("open VolumeCaches: %w", err)
	}
	defer key.Close()

	subkeys, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return 0, fmt.Errorf("list VolumeCaches handlers: %w", err)
	}

	value := StateFlagsValue(configID)
	count := 0
	for _, name := range subkeys {
		sub, openErr := registry.OpenKey(registry.LOCAL_MACHINE,
			volumeCachesPath+`\`+name, registry.QUERY_VALUE)
		if openErr != nil {
			continue
		}
		if _, _, readErr := sub.GetIntegerValue(value); readErr == nil {
			count++
		}
		sub.Close()
	}
	return count, nil
}

// StateFlagsValue renders the registry value name /sageset writes,
// zero-padded to four digits (e.g., "StateFlags0001").
func StateFlagsValue(configID int) string {
	return fmt.Sprintf("StateFlags%04d", configID)
}
