package scan

import "sort"

// Plan is the ranked deletion proposal: candidates ordered largest first plus
// the exact byte total across them. Built once per scan, never mutated.
type Plan struct {
	Candidates []Candidate
	Total      int64
}

// BuildPlan orders candidates by size descending, breaking ties by path
// ascending, and sums their sizes.
func BuildPlan(candidates []Candidate) *Plan {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Size != sorted[j].Size {
			return sorted[i].Size > sorted[j].Size
		}
		return sorted[i].Path < sorted[j].Path
	})
	var total int64
	for _, c := range sorted {
		total += c.Size
	}
	return &Plan{Candidates: sorted, Total: total}
}
