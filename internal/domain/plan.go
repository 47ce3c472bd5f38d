package domain

import "path/filepath"

// Action is what the sorter does with an eligible entry.
type Action int

const (
	ActionMove Action = iota
	ActionCopy
)

func (a Action) String() string {
	if a == ActionCopy {
		return "copy"
	}
	return "move"
}

// PlanItem is the resolved destination for one eligible entry. TargetPath is
// unique within a run, both against the disk and against earlier items.
type PlanItem struct {
	Entry      Entry
	TargetDir  string
	TargetPath string
	Action     Action
}

// RelativeTarget renders the destination as "<year>/<name>" for display.
func (i PlanItem) RelativeTarget() string {
	return filepath.Base(i.TargetDir) + "/" + filepath.Base(i.TargetPath)
}

// SkippedEntry records an entry the planner declined, with a human-readable
// reason.
type SkippedEntry struct {
	Name   string
	Reason string
}

// SortPlan is the full outcome of planning one pass over the source
// directory.
type SortPlan struct {
	Items    []PlanItem
	Skipped  []SkippedEntry
	Warnings []string
}

// Result is the terminal state of one executed plan item.
type Result struct {
	Item PlanItem
	Err  error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

// RunReport collects per-item results. Entries are independent: a failed
// result never affects any other.
type RunReport struct {
	Results []Result
	Skipped []SkippedEntry
	DryRun  bool
}

func (r RunReport) SucceededCount() int {
	n := 0
	for _, res := range r.Results {
		if !res.Failed() {
			n++
		}
	}
	return n
}

func (r RunReport) FailedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}
