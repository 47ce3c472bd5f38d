package presentation

import (
	"fmt"
	"io"
	"strings"

	"yearsort/internal/domain"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// PrintPlan lists the planned transfers. Long lists are truncated unless
// verbose; skips and warnings only show up in verbose output.
func (p Printer) PrintPlan(plan domain.SortPlan) {
	if len(plan.Items) > 0 {
		fmt.Fprintln(p.Writer, "Planned:")
		fmt.Fprintln(p.Writer)
		for _, line := range formatPlanLines(plan.Items, p.Verbose) {
			fmt.Fprintln(p.Writer, line)
		}
	}

	if p.Verbose && len(plan.Skipped) > 0 {
		fmt.Fprintln(p.Writer)
		fmt.Fprintln(p.Writer, "Skipped:")
		for _, skipped := range plan.Skipped {
			fmt.Fprintf(p.Writer, "%s  (%s)\n", skipped.Name, skipped.Reason)
		}
	}

	if p.Verbose && len(plan.Warnings) > 0 {
		fmt.Fprintln(p.Writer)
		fmt.Fprintln(p.Writer, "Warnings:")
		for _, warning := range plan.Warnings {
			fmt.Fprintln(p.Writer, "- "+warning)
		}
	}
}

// PrintReport renders failures and the summary counts after execution.
func (p Printer) PrintReport(report domain.RunReport) {
	if report.FailedCount() > 0 {
		fmt.Fprintln(p.Writer)
		fmt.Fprintln(p.Writer, "Failed:")
		for _, result := range report.Results {
			if result.Failed() {
				fmt.Fprintf(p.Writer, "%s  ->  %s: %v\n", result.Item.Entry.Name, result.Item.RelativeTarget(), result.Err)
			}
		}
	}

	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, renderSummary(report))

	if report.DryRun {
		fmt.Fprintln(p.Writer)
		fmt.Fprintln(p.Writer, "Dry run, nothing was changed.")
	}
}

func (p Printer) PrintNothing() {
	fmt.Fprintln(p.Writer, "Nothing to do.")
}

func formatPlanLines(items []domain.PlanItem, verbose bool) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		action := strings.ToUpper(item.Action.String())
		lines = append(lines, fmt.Sprintf("%s  %s  ->  %s", action, item.Entry.Name, item.RelativeTarget()))
	}

	if verbose || len(lines) <= 4 {
		return lines
	}
	head := lines[:2]
	tail := lines[len(lines)-2:]
	return append(append(head, fmt.Sprintf("... %d more ...", len(lines)-4)), tail...)
}

func renderSummary(report domain.RunReport) string {
	processed := "Processed"
	if report.DryRun {
		processed = "Planned"
	}
	rows := [][]string{
		{processed, fmt.Sprintf("%d", report.SucceededCount())},
		{"Failed", fmt.Sprintf("%d", report.FailedCount())},
		{"Skipped", fmt.Sprintf("%d", len(report.Skipped))},
	}
	return renderTable([]string{"Outcome", "Entries"}, rows, []columnAlignment{alignLeft, alignRight})
}
