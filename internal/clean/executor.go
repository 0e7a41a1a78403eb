// Package clean removes approved candidate directories from disk.
package clean

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/reclaimtools/reclaim/internal/scan"
)

// Result is the outcome of one removal attempt.
type Result struct {
	Candidate scan.Candidate
	Err       error
}

// Run removes every candidate directory, fanning the work across a bounded
// pool. Removals are independent: a failure is recorded against its candidate
// and the rest proceed. Results line up with the input order. A path that
// vanished between scan and clean counts as a success. On cancellation the
// not-yet-attempted candidates carry the context error; in-flight removals
// finish.
//
// onProgress, when set, runs once per attempted candidate and is never
// invoked concurrently.
func Run(ctx context.Context, candidates []scan.Candidate, workers int, onProgress func(scan.Candidate, error)) []Result {
	results := make([]Result, len(candidates))
	for i, c := range candidates {
		results[i] = Result{Candidate: c}
	}
	if len(candidates) == 0 {
		return results
	}

	if workers <= 0 {
		workers = defaultWorkers()
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan int)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				err := remove(candidates[idx].Path)
				results[idx].Err = err
				if onProgress != nil {
					mu.Lock()
					onProgress(candidates[idx], err)
					mu.Unlock()
				}
			}
		}()
	}

dispatch:
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(candidates); j++ {
				results[j].Err = err
			}
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			for j := i; j < len(candidates); j++ {
				results[j].Err = ctx.Err()
			}
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

func defaultWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	return n
}

func remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// Freed sums the bytes reclaimed by successful removals.
func Freed(results []Result) int64 {
	var total int64
	for _, r := range results {
		if r.Err == nil {
			total += r.Candidate.Size
		}
	}
	return total
}

// Failures returns the results whose removal did not succeed.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
