package scan

import (
	"context"
	"os"
	"path/filepath"
)

// walker streams catalog matches for one root as raw, unsized candidates. It
// never follows symlinks, never enters matched or skipped directories, and
// stays within the configured depth.
type walker struct {
	catalog  *Catalog
	excludes []string
	maxDepth int
	emit     func(Candidate)
	visit    func(string)
	warn     func(string, error)
	claimed  func(string) bool
}

type walkItem struct {
	path  string
	depth int
}

// walk runs a breadth-first traversal from root. The root itself is never
// classified, only its descendants. Matched directories are emitted and
// pruned in the same step, so no candidate can contain another.
func (w *walker) walk(ctx context.Context, root string) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return
	}
	if Excluded(root, w.excludes) {
		return
	}

	queue := []walkItem{{path: root}}
	for len(queue) > 0 {
		if ctx.Err() != nil {
			return
		}
		item := queue[0]
		queue = queue[1:]
		if item.depth > w.maxDepth {
			continue
		}
		w.visit(item.path)

		entries, err := os.ReadDir(item.path)
		if err != nil {
			w.warn(item.path, err)
			continue
		}
		for _, entry := range entries {
			if entry.Type()&os.ModeSymlink != 0 || !entry.IsDir() {
				continue
			}
			name := entry.Name()
			child := filepath.Join(item.path, name)
			if Excluded(child, w.excludes) {
				continue
			}
			if w.catalog.Skip(name) {
				continue
			}
			m, ok := w.catalog.Match(child, name)
			if !ok {
				if item.depth < w.maxDepth {
					queue = append(queue, walkItem{path: child, depth: item.depth + 1})
				}
				continue
			}
			if m.Owned {
				// Keep-latest base: the location seeder owns its children.
				continue
			}
			if w.claimed(child) {
				continue
			}
			info, infoErr := entry.Info()
			if infoErr != nil {
				w.warn(child, infoErr)
				continue
			}
			w.emit(Candidate{
				Path:     child,
				Category: m.Category,
				Reason:   m.Reason,
				ModTime:  info.ModTime(),
			})
		}
	}
}
