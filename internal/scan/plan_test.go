package scan

import "testing"

func TestBuildPlanOrdersBySize(t *testing.T) {
	plan := BuildPlan([]Candidate{
		{Path: "/a/small", Size: 10},
		{Path: "/a/big", Size: 1000},
		{Path: "/a/mid", Size: 500},
	})

	want := []string{"/a/big", "/a/mid", "/a/small"}
	for i, c := range plan.Candidates {
		if c.Path != want[i] {
			t.Errorf("plan[%d] = %q, want %q", i, c.Path, want[i])
		}
	}
}

func TestBuildPlanTieBreaksByPath(t *testing.T) {
	plan := BuildPlan([]Candidate{
		{Path: "/b/dist", Size: 100},
		{Path: "/a/dist", Size: 100},
		{Path: "/c/dist", Size: 100},
	})

	want := []string{"/a/dist", "/b/dist", "/c/dist"}
	for i, c := range plan.Candidates {
		if c.Path != want[i] {
			t.Errorf("plan[%d] = %q, want %q", i, c.Path, want[i])
		}
	}
}

func TestBuildPlanTotal(t *testing.T) {
	plan := BuildPlan([]Candidate{
		{Path: "/a", Size: 123},
		{Path: "/b", Size: 456},
		{Path: "/c", Size: 1},
	})
	if plan.Total != 580 {
		t.Errorf("Total = %d, want 580", plan.Total)
	}

	var sum int64
	for _, c := range plan.Candidates {
		sum += c.Size
	}
	if plan.Total != sum {
		t.Errorf("Total = %d, but candidate sizes sum to %d", plan.Total, sum)
	}
}

func TestBuildPlanEmpty(t *testing.T) {
	plan := BuildPlan(nil)
	if len(plan.Candidates) != 0 {
		t.Errorf("empty input should yield empty plan, got %d candidates", len(plan.Candidates))
	}
	if plan.Total != 0 {
		t.Errorf("empty plan Total = %d, want 0", plan.Total)
	}
}

func TestBuildPlanDoesNotMutateInput(t *testing.T) {
	input := []Candidate{
		{Path: "/a/small", Size: 10},
		{Path: "/a/big", Size: 1000},
	}
	BuildPlan(input)
	if input[0].Path != "/a/small" {
		t.Error("BuildPlan should sort a copy, not the caller's slice")
	}
}
