package clean

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/reclaimtools/reclaim/internal/scan"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunRemovesCandidates(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "app", "node_modules")
	b := filepath.Join(root, "lib", "target")
	writeFile(t, filepath.Join(a, "x.js"), 100)
	writeFile(t, filepath.Join(b, "debug", "bin"), 200)

	candidates := []scan.Candidate{
		{Path: a, Size: 100},
		{Path: b, Size: 200},
	}
	results := Run(context.Background(), candidates, 2, nil)

	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v, want nil", i, r.Err)
		}
	}
	for _, path := range []string{a, b} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s still exists after clean", path)
		}
	}
	if got := Freed(results); got != 300 {
		t.Errorf("Freed = %d, want 300", got)
	}
}

func TestRunResultsMatchInputOrder(t *testing.T) {
	root := t.TempDir()
	var candidates []scan.Candidate
	for _, name := range []string{"c", "a", "b"} {
		path := filepath.Join(root, name, "build")
		writeFile(t, filepath.Join(path, "f"), 10)
		candidates = append(candidates, scan.Candidate{Path: path, Size: 10})
	}

	results := Run(context.Background(), candidates, 3, nil)

	if len(results) != len(candidates) {
		t.Fatalf("got %d results, want %d", len(results), len(candidates))
	}
	for i := range candidates {
		if results[i].Candidate.Path != candidates[i].Path {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Candidate.Path, candidates[i].Path)
		}
	}
}

func TestRunVanishedPathSucceeds(t *testing.T) {
	gone := filepath.Join(t.TempDir(), "already", "removed")
	results := Run(context.Background(), []scan.Candidate{{Path: gone, Size: 50}}, 1, nil)

	if results[0].Err != nil {
		t.Errorf("vanished path should count as success, got %v", results[0].Err)
	}
	if got := Freed(results); got != 50 {
		t.Errorf("Freed = %d, want 50", got)
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	root := t.TempDir()

	// A path routed through a regular file fails with ENOTDIR regardless of
	// privileges, so this works under root too.
	blocker := filepath.Join(root, "blocker")
	writeFile(t, blocker, 1)
	bad := filepath.Join(blocker, "child")

	good := filepath.Join(root, "app", "node_modules")
	writeFile(t, filepath.Join(good, "x.js"), 100)

	candidates := []scan.Candidate{
		{Path: bad, Size: 10},
		{Path: good, Size: 100},
	}
	results := Run(context.Background(), candidates, 1, nil)

	if results[0].Err == nil {
		t.Error("removal through a regular file should fail")
	}
	if results[1].Err != nil {
		t.Errorf("unrelated removal should succeed, got %v", results[1].Err)
	}
	if _, err := os.Stat(good); !os.IsNotExist(err) {
		t.Error("good candidate was not removed")
	}
	if got := Freed(results); got != 100 {
		t.Errorf("Freed = %d, want 100", got)
	}
	if got := Failures(results); len(got) != 1 || got[0].Candidate.Path != bad {
		t.Errorf("Failures = %+v, want just the blocked path", got)
	}
}

func TestRunReportsProgress(t *testing.T) {
	root := t.TempDir()
	var candidates []scan.Candidate
	for _, name := range []string{"a", "b", "c", "d"} {
		path := filepath.Join(root, name, "dist")
		writeFile(t, filepath.Join(path, "f"), 10)
		candidates = append(candidates, scan.Candidate{Path: path, Size: 10})
	}

	var seen []string
	results := Run(context.Background(), candidates, 4, func(c scan.Candidate, err error) {
		seen = append(seen, c.Path)
	})

	if len(seen) != len(candidates) {
		t.Errorf("progress ran %d times, want %d", len(seen), len(candidates))
	}
	if got := Freed(results); got != 40 {
		t.Errorf("Freed = %d, want 40", got)
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "app", "build")
	writeFile(t, filepath.Join(path, "f"), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, []scan.Candidate{{Path: path, Size: 10}}, 1, nil)

	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("results[0].Err = %v, want context.Canceled", results[0].Err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("cancelled run must not touch the filesystem")
	}
	if got := Freed(results); got != 0 {
		t.Errorf("Freed = %d, want 0", got)
	}
}

func TestRunEmptyPlan(t *testing.T) {
	results := Run(context.Background(), nil, 4, nil)
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if got := Freed(results); got != 0 {
		t.Errorf("Freed = %d, want 0", got)
	}
}
