package scan

import (
	"os"
	"path/filepath"
)

// dirSize sums apparent file sizes under path without following symlinks.
// Unreadable entries are reported through warn and skipped, so one bad
// subtree yields a partial sum instead of failing the candidate.
func dirSize(path string, warn func(string, error)) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		warn(path, err)
		return 0
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			return info.Size()
		}
		return 0
	}

	var total int64
	stack := []string{path}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			warn(dir, err)
			continue
		}
		for _, entry := range entries {
			if entry.Type()&os.ModeSymlink != 0 {
				continue
			}
			if entry.IsDir() {
				stack = append(stack, filepath.Join(dir, entry.Name()))
				continue
			}
			fi, infoErr := entry.Info()
			if infoErr != nil {
				warn(filepath.Join(dir, entry.Name()), infoErr)
				continue
			}
			if fi.Mode().IsRegular() {
				total += fi.Size()
			}
		}
	}
	return total
}
