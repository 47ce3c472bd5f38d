package app

import (
	"context"
	"errors"

	"yearsort/internal/domain"
	"yearsort/internal/logging"
)

// ExecProgressFunc is called after each plan item has been attempted.
type ExecProgressFunc func(current, total int, name string)

type Executor struct {
	FS         FileSystem
	DryRun     bool
	Logger     logging.Logger
	OnProgress ExecProgressFunc
}

// Execute runs every plan item and records a per-item result. A failure on
// one item never stops the rest of the batch; only context cancellation
// ends the pass early. In dry-run mode nothing on disk is touched, not even
// the year directories.
func (e *Executor) Execute(ctx context.Context, plan domain.SortPlan) (domain.RunReport, error) {
	if e.FS == nil {
		return domain.RunReport{}, errors.New("executor requires FS")
	}

	stop := e.Logger.Measure("Executing sort")
	defer stop()

	report := domain.RunReport{Skipped: plan.Skipped, DryRun: e.DryRun}
	total := len(plan.Items)

	for i, item := range plan.Items {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		var err error
		if !e.DryRun {
			err = e.transfer(item)
		}
		if err != nil {
			e.Logger.Verbosef("%s -> %s: %v", item.Entry.Name, item.RelativeTarget(), err)
		}
		report.Results = append(report.Results, domain.Result{Item: item, Err: err})

		if e.OnProgress != nil {
			e.OnProgress(i+1, total, item.Entry.Name)
		}
	}

	return report, nil
}

func (e *Executor) transfer(item domain.PlanItem) error {
	if err := e.FS.MkdirAll(item.TargetDir, 0o755); err != nil {
		return err
	}
	if item.Action == domain.ActionCopy {
		if item.Entry.Kind == domain.KindDir {
			return e.FS.CopyDir(item.Entry.Path, item.TargetPath)
		}
		return e.FS.CopyFile(item.Entry.Path, item.TargetPath)
	}
	return e.FS.Move(item.Entry.Path, item.TargetPath)
}
