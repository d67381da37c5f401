package recycle

import (
	"os"
	"path/filepath"
	"strings"
)

// trashDirName is the hidden per-volume folder the bin is backed by.
const trashDirName = "$Recycle.Bin"

// mountedDrives returns the drive roots present on this host
// (e.g., "C:\", "D:\") by probing A-Z.
func mountedDrives() []string {
	var drives []string
	for c := 'A'; c <= 'Z'; c++ {
		root := string(c) + `:\`
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		drives = append(drives, root)
	}
	return drives
}

// Roots returns the per-volume trash directories that exist, one per
// mounted drive. The fallback clear path hands each root to the folder
// clearer exactly once.
func Roots() []string {
	return rootsOn(mountedDrives())
}

func rootsOn(driveRoots []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(driveRoots))
	for _, root := range driveRoots {
		dir := filepath.Join(root, trashDirName)
		key := strings.ToLower(dir)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		out = append(out, dir)
	}
	return out
}
