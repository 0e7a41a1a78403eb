// Package history persists a JSON-lines log of executed cleanup runs.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/reclaimtools/reclaim/internal/clean"
)

// FileName is the log file name under the reclaim config directory.
const FileName = "history.jsonl"

const (
	StatusRemoved = "removed"
	StatusFailed  = "failed"
)

// Item is one candidate outcome within a record.
type Item struct {
	Path     string    `json:"path"`
	Category string    `json:"category"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
	Status   string    `json:"status"`
	Error    string    `json:"error,omitempty"`
}

// Record is one executed cleanup run.
type Record struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	Items      []Item    `json:"items"`
	FreedBytes int64     `json:"freed_bytes"`
}

// NewRecord builds a record from executor results.
func NewRecord(startedAt time.Time, results []clean.Result) Record {
	rec := Record{
		ID:         uuid.NewString(),
		StartedAt:  startedAt.UTC(),
		FreedBytes: clean.Freed(results),
	}
	for _, r := range results {
		item := Item{
			Path:     r.Candidate.Path,
			Category: r.Candidate.Category.Label(),
			Size:     r.Candidate.Size,
			ModTime:  r.Candidate.ModTime.UTC(),
			Status:   StatusRemoved,
		}
		if r.Err != nil {
			item.Status = StatusFailed
			item.Error = r.Err.Error()
		}
		rec.Items = append(rec.Items, item)
	}
	return rec
}

// Append writes one record to the end of the log, creating the file and its
// parent directory as needed.
func Append(path string, rec Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling history record: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Load reads every record from the log in file order. A missing file yields
// no records. Unparseable lines are skipped.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("reading history: %w", err)
	}
	return records, nil
}

// Latest returns the newest n records, most recent first. n <= 0 returns all.
func Latest(records []Record, n int) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[len(records)-1-i] = rec
	}
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
