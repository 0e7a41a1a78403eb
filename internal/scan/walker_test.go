package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func mkdirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := os.MkdirAll(p, 0755); err != nil {
			t.Fatal(err)
		}
	}
}

// collectWalk runs a walker over root and returns the emitted paths.
func collectWalk(t *testing.T, root string, maxDepth int, excludes []string) []Candidate {
	t.Helper()
	var hits []Candidate
	seen := make(map[string]bool)
	w := &walker{
		catalog:  DefaultCatalog(""),
		excludes: Normalize(excludes),
		maxDepth: maxDepth,
		emit:     func(c Candidate) { hits = append(hits, c) },
		visit:    func(string) {},
		warn:     func(string, error) {},
		claimed: func(path string) bool {
			key := canonical(path)
			if seen[key] {
				return true
			}
			seen[key] = true
			return false
		},
	}
	w.walk(context.Background(), root)
	return hits
}

func hitPaths(hits []Candidate) map[string]bool {
	m := make(map[string]bool, len(hits))
	for _, h := range hits {
		m[h.Path] = true
	}
	return m
}

func TestWalkFindsMatchedDirs(t *testing.T) {
	root := t.TempDir()
	mkdirs(t,
		filepath.Join(root, "app", "node_modules"),
		filepath.Join(root, "app", "src"),
		filepath.Join(root, "svc", "target"),
	)

	hits := collectWalk(t, root, 5, nil)
	paths := hitPaths(hits)

	if !paths[filepath.Join(root, "app", "node_modules")] {
		t.Error("node_modules should be emitted")
	}
	if !paths[filepath.Join(root, "svc", "target")] {
		t.Error("target should be emitted")
	}
	if paths[filepath.Join(root, "app", "src")] {
		t.Error("src should not be emitted")
	}
	if len(hits) != 2 {
		t.Errorf("got %d hits, want 2", len(hits))
	}
}

func TestWalkNeverEntersMatchedDirs(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "app", "node_modules", "pkg", "dist")
	mkdirs(t, nested)

	hits := collectWalk(t, root, 10, nil)
	paths := hitPaths(hits)

	if !paths[filepath.Join(root, "app", "node_modules")] {
		t.Fatal("node_modules should be emitted")
	}
	if paths[nested] {
		t.Error("dist inside node_modules should never be reached")
	}
	if len(hits) != 1 {
		t.Errorf("got %d hits, want 1", len(hits))
	}
}

func TestWalkSkipsVCSAndIDEDirs(t *testing.T) {
	root := t.TempDir()
	mkdirs(t,
		filepath.Join(root, "app", ".git", "build"),
		filepath.Join(root, "app", ".idea", "caches"),
		filepath.Join(root, "app", ".gradle", "caches"),
	)

	hits := collectWalk(t, root, 10, nil)
	if len(hits) != 0 {
		t.Errorf("skip-listed subtrees should yield no hits, got %v", hitPaths(hits))
	}
}

func TestWalkDepthLimit(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c", "build")
	mkdirs(t, deep)

	// Classifying build requires reading c, which sits three levels down.
	if hits := collectWalk(t, root, 2, nil); len(hits) != 0 {
		t.Errorf("maxDepth 2 should not reach %s, got %v", deep, hitPaths(hits))
	}
	if hits := collectWalk(t, root, 3, nil); len(hits) != 1 {
		t.Errorf("maxDepth 3 should find the build dir, got %d hits", len(hits))
	}
}

func TestWalkExclusionPrunes(t *testing.T) {
	root := t.TempDir()
	mkdirs(t,
		filepath.Join(root, "keep", "node_modules"),
		filepath.Join(root, "other", "node_modules"),
	)

	hits := collectWalk(t, root, 5, []string{filepath.Join(root, "keep")})
	paths := hitPaths(hits)

	if paths[filepath.Join(root, "keep", "node_modules")] {
		t.Error("excluded subtree should be pruned")
	}
	if !paths[filepath.Join(root, "other", "node_modules")] {
		t.Error("non-excluded subtree should still be walked")
	}
}

func TestWalkExcludedRoot(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, filepath.Join(root, "node_modules"))

	if hits := collectWalk(t, root, 5, []string{root}); len(hits) != 0 {
		t.Errorf("an excluded root should yield no hits, got %d", len(hits))
	}
}

func TestWalkIgnoresSymlinks(t *testing.T) {
	root := t.TempDir()
	real := filepath.Join(root, "real")
	mkdirs(t, filepath.Join(real, "sub", "node_modules"))

	link := filepath.Join(root, "linked")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	hits := collectWalk(t, root, 10, nil)
	for _, h := range hits {
		if h.Path == filepath.Join(link, "sub", "node_modules") {
			t.Error("walker followed a symlinked directory")
		}
	}
	if len(hits) != 1 {
		t.Errorf("got %d hits, want only the real node_modules", len(hits))
	}
}

func TestWalkDeduplicatesAcrossRoots(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, filepath.Join(root, "app", "node_modules"))

	var hits []Candidate
	seen := make(map[string]bool)
	w := &walker{
		catalog:  DefaultCatalog(""),
		maxDepth: 5,
		emit:     func(c Candidate) { hits = append(hits, c) },
		visit:    func(string) {},
		warn:     func(string, error) {},
		claimed: func(path string) bool {
			key := canonical(path)
			if seen[key] {
				return true
			}
			seen[key] = true
			return false
		},
	}

	// Overlapping roots share the claim set.
	w.walk(context.Background(), root)
	w.walk(context.Background(), filepath.Join(root, "app"))

	if len(hits) != 1 {
		t.Errorf("overlapping roots should emit one candidate, got %d", len(hits))
	}
}

func TestWalkCancelled(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, filepath.Join(root, "app", "node_modules"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hits := collectWalkCtx(t, ctx, root)
	if len(hits) != 0 {
		t.Errorf("cancelled walk should emit nothing, got %d", len(hits))
	}
}

func collectWalkCtx(t *testing.T, ctx context.Context, root string) []Candidate {
	t.Helper()
	var hits []Candidate
	w := &walker{
		catalog:  DefaultCatalog(""),
		maxDepth: 5,
		emit:     func(c Candidate) { hits = append(hits, c) },
		visit:    func(string) {},
		warn:     func(string, error) {},
		claimed:  func(string) bool { return false },
	}
	w.walk(ctx, root)
	return hits
}
