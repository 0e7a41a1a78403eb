package scan

import (
	"sort"
	"time"
)

// Eligible reports whether a candidate is old enough and outside every
// exclude. The age boundary is inclusive: a candidate aged exactly minAge is
// removable. Exclusion is rechecked here so excludes supplied after discovery
// still hold.
func Eligible(c Candidate, now time.Time, minAge time.Duration, excludes []string) bool {
	if now.Sub(c.ModTime) < minAge {
		return false
	}
	return !Excluded(c.Path, excludes)
}

// RetainedPaths returns the candidate paths protected by keep-latest
// retention: the newest N entries of every category whose policy is not
// PolicyNone. Pools are per category and computed over the full candidate
// set, so a too-young entry still counts toward the kept quota. Mtime ties
// fall back to path order for reproducible runs.
func RetainedPaths(candidates []Candidate, keepDerived, keepCache int) map[string]bool {
	pools := make(map[Category][]Candidate)
	for _, c := range candidates {
		if c.Category.Policy() == PolicyNone {
			continue
		}
		pools[c.Category] = append(pools[c.Category], c)
	}

	retained := make(map[string]bool)
	for category, pool := range pools {
		keep := keepDerived
		if category.Policy() == PolicyKeepLatestCache {
			keep = keepCache
		}
		if keep <= 0 {
			continue
		}
		sort.Slice(pool, func(i, j int) bool {
			if !pool[i].ModTime.Equal(pool[j].ModTime) {
				return pool[i].ModTime.After(pool[j].ModTime)
			}
			return pool[i].Path < pool[j].Path
		})
		if keep > len(pool) {
			keep = len(pool)
		}
		for _, c := range pool[:keep] {
			retained[c.Path] = true
		}
	}
	return retained
}
