// Package targets resolves the directories a maintenance sweep clears:
// a fixed system-wide set plus one derived temp directory per user
// profile, enumerated fresh on every run.
package targets

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scope groups targets by the privilege domain that owns them.
type Scope string

const (
	ScopeSystem Scope = "system"
	ScopeUser   Scope = "user"
)

// Target is one directory designated for content removal.
type Target struct {
	Label string
	Path  string
	Scope Scope
}

// ─── Environment Helpers ─────────────────────────────────────────────────────

// winDir returns the Windows directory (e.g., C:\Windows).
// Falls back to C:\Windows only if %WINDIR% is not set.
func winDir() string {
	if w := os.Getenv("WINDIR"); w != "" {
		return w
	}
	return `C:\Windows`
}

// systemDrive returns the system drive letter with backslash (e.g., C:\).
// Falls back to C:\ only if %SYSTEMDRIVE% is not set.
func systemDrive() string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d + `\`
	}
	return `C:\`
}

// programData returns the ProgramData directory (e.g., C:\ProgramData).
func programData() string {
	if p := os.Getenv("PROGRAMDATA"); p != "" {
		return p
	}
	return `C:\ProgramData`
}

// programFiles returns the Program Files directory.
func programFiles() string {
	if p := os.Getenv("PROGRAMFILES"); p != "" {
		return p
	}
	return `C:\Program Files`
}

// programFilesX86 returns the Program Files (x86) directory.
func programFilesX86() string {
	if p := os.Getenv("PROGRAMFILES(X86)"); p != "" {
		return p
	}
	return `C:\Program Files (x86)`
}

// ─── Target Resolution ───────────────────────────────────────────────────────

// System returns the fixed system-wide sweep targets. This is embedded
// configuration, not runtime discovery.
func System() []Target {
	w := winDir()
	return []Target{
		{Label: "System temp", Path: filepath.Join(w, "Temp"), Scope: ScopeSystem},
		{Label: "Prefetch", Path: filepath.Join(w, "Prefetch"), Scope: ScopeSystem},
		{Label: "Windows Update cache", Path: filepath.Join(w, "SoftwareDistribution", "Download"), Scope: ScopeSystem},
		{Label: "CBS logs", Path: filepath.Join(w, "Logs", "CBS"), Scope: ScopeSystem},
	}
}

// profilesRoot is where Windows keeps user profiles (e.g., C:\Users).
func profilesRoot() string {
	return filepath.Join(systemDrive(), "Users")
}

// User derives one temp target per profile under the profiles root.
// Profiles are enumerated fresh each call; junction entries like
// "All Users" report as non-directories and are skipped.
func User() ([]Target, error) {
	return userUnder(profilesRoot())
}

func userUnder(root string) ([]Target, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("enumerate profiles under %s: %w", root, err)
	}

	var out []Target
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		out = append(out, Target{
			Label: e.Name() + " temp",
			Path:  filepath.Join(root, e.Name(), "AppData", "Local", "Temp"),
			Scope: ScopeUser,
		})
	}
	return out, nil
}

// NeverRemove returns roots that must never be cleared under any
// circumstances. Environment-derived so installations on any drive
// letter are covered.
func NeverRemove() []string {
	w := winDir()
	sd := systemDrive()
	return []string{
		w,
		filepath.Join(w, "System32"),
		filepath.Join(w, "SysWOW64"),
		filepath.Join(w, "WinSxS"),
		filepath.Join(w, "System32", "config"),
		filepath.Join(w, "Installer"),
		filepath.Join(w, "servicing"),
		filepath.Join(sd, "Boot"),
		filepath.Join(sd, "EFI"),
		filepath.Join(sd, "Recovery"),
		filepath.Join(sd, "Users"),
		programFiles(),
		programFilesX86(),
		programData(),
	}
}

// Host adapts the package-level resolvers to the orchestrator's
// target-source dependency.
type Host struct{}

func (Host) System() []Target        { return System() }
func (Host) User() ([]Target, error) { return User() }
