package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reclaimtools/reclaim/internal/clean"
	"github.com/reclaimtools/reclaim/internal/scan"
)

func TestNewRecord(t *testing.T) {
	started := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	results := []clean.Result{
		{Candidate: scan.Candidate{Path: "/p/a/node_modules", Category: scan.CategoryProject, Size: 100}},
		{Candidate: scan.Candidate{Path: "/p/b/target", Category: scan.CategoryProject, Size: 50}, Err: errors.New("permission denied")},
	}

	rec := NewRecord(started, results)

	if rec.ID == "" {
		t.Error("record should carry an id")
	}
	if !rec.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", rec.StartedAt, started)
	}
	if rec.FreedBytes != 100 {
		t.Errorf("FreedBytes = %d, want 100", rec.FreedBytes)
	}
	if len(rec.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(rec.Items))
	}
	if rec.Items[0].Status != StatusRemoved || rec.Items[0].Error != "" {
		t.Errorf("items[0] = %+v, want removed", rec.Items[0])
	}
	if rec.Items[1].Status != StatusFailed || rec.Items[1].Error != "permission denied" {
		t.Errorf("items[1] = %+v, want failed with reason", rec.Items[1])
	}
	if rec.Items[0].Category != "Project" {
		t.Errorf("category = %q, want %q", rec.Items[0].Category, "Project")
	}
}

func TestAppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reclaim", "history.jsonl")

	first := NewRecord(time.Now().Add(-time.Hour), []clean.Result{
		{Candidate: scan.Candidate{Path: "/p/dist", Size: 10}},
	})
	second := NewRecord(time.Now(), []clean.Result{
		{Candidate: scan.Candidate{Path: "/p/build", Size: 20}},
	})

	if err := Append(path, first); err != nil {
		t.Fatal(err)
	}
	if err := Append(path, second); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != first.ID || records[1].ID != second.ID {
		t.Error("records should load in file order")
	}
	if records[0].Items[0].Path != "/p/dist" {
		t.Errorf("item path = %q", records[0].Items[0].Path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	records, err := Load(filepath.Join(t.TempDir(), "history.jsonl"))
	if err != nil {
		t.Fatalf("missing history should not error, got %v", err)
	}
	if records != nil {
		t.Errorf("got %d records, want none", len(records))
	}
}

func TestLoadSkipsTornLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")

	rec := NewRecord(time.Now(), []clean.Result{
		{Candidate: scan.Candidate{Path: "/p/out", Size: 5}},
	})
	if err := Append(path, rec); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(`{"id":"trunc`); err != nil {
		t.Fatal(err)
	}
	f.Close()

	records, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != rec.ID {
		t.Errorf("got %d records, want just the intact one", len(records))
	}
}

func TestLatest(t *testing.T) {
	records := []Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got := Latest(records, 2)
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("Latest(2) = %+v, want newest two first", got)
	}

	all := Latest(records, 0)
	if len(all) != 3 || all[0].ID != "c" {
		t.Errorf("Latest(0) = %+v, want all newest first", all)
	}

	if got := Latest(records, 10); len(got) != 3 {
		t.Errorf("Latest beyond length should return all, got %d", len(got))
	}
}
