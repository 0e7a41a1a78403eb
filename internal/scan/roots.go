package scan

import (
	"os"
	"path/filepath"
	"strings"
)

// defaultHomeProjectDirs are scanned by default when they exist under home.
var defaultHomeProjectDirs = []string{"Projects", "workspace", "Work", "Developer"}

// canonical resolves symlinks where possible so the same directory reached
// through different paths keys identically. Falls back to the cleaned path
// when resolution fails.
func canonical(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

// Normalize canonicalizes every path in the slice.
func Normalize(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, canonical(p))
	}
	return out
}

// underAny reports whether path equals or descends from any ancestor. The
// ancestors must already be normalized; comparison is component-wise.
func underAny(path string, ancestors []string) bool {
	for _, a := range ancestors {
		if path == a || strings.HasPrefix(path, a+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Excluded reports whether path falls under any exclude. The path is
// canonicalized first so excludes keep working across symlinked layouts.
func Excluded(path string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	return underAny(canonical(path), excludes)
}

// DefaultRoots returns the scan roots used when the caller names none: the
// working directory plus the conventional project directories under home,
// extended with extra. The result is canonicalized, deduplicated, and
// stripped of missing or excluded paths.
func DefaultRoots(cwd, home string, extra, excludes []string) []string {
	roots := []string{cwd}
	if home != "" {
		for _, name := range defaultHomeProjectDirs {
			dir := filepath.Join(home, name)
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				roots = append(roots, dir)
			}
		}
	}
	roots = append(roots, extra...)

	seen := make(map[string]bool, len(roots))
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		if r == "" {
			continue
		}
		resolved := canonical(r)
		if seen[resolved] {
			continue
		}
		if _, err := os.Stat(resolved); err != nil {
			continue
		}
		if underAny(resolved, excludes) {
			continue
		}
		seen[resolved] = true
		out = append(out, resolved)
	}
	return out
}
