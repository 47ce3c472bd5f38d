package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"yearsort/internal/app"
	"yearsort/internal/config"
	"yearsort/internal/domain"
	appErrors "yearsort/internal/errors"
	"yearsort/internal/tui"
)

// runInteractive drives the bubbletea UI: the planner feeds it scan
// progress and the plan, confirmation hands the plan to the executor, and
// the final model decides the exit status.
func runInteractive(ctx context.Context, cfg config.Config, planner *app.Planner, executor *app.Executor) error {
	var program *tea.Program

	execute := func(plan domain.SortPlan) tea.Cmd {
		return func() tea.Msg {
			executor.OnProgress = func(current, total int, name string) {
				program.Send(tui.ExecProgressMsg{Current: current, Total: total, File: name})
			}
			report, err := executor.Execute(ctx, plan)
			if err != nil {
				return tui.ErrorMsg{Err: err}
			}
			return tui.ExecDoneMsg{Report: report}
		}
	}

	model := tui.NewModel(tui.Config{
		Downloads: cfg.Downloads,
		Mode:      cfg.Mode,
		DryRun:    cfg.DryRun,
		Verbose:   cfg.Verbose,
		Execute:   execute,
	})
	program = tea.NewProgram(model)

	planner.OnProgress = func(current, total int) {
		program.Send(tui.ScanProgressMsg{Current: current, Total: total})
	}
	go func() {
		plan, err := planner.Plan(ctx, cfg.Downloads)
		if err != nil {
			program.Send(tui.ErrorMsg{Err: err})
			return
		}
		program.Send(tui.PlanReadyMsg{Plan: plan})
	}()

	final, err := program.Run()
	if err != nil {
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}

	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if m.Err != nil {
		return appErrors.Wrap(appErrors.Internal, "run", cfg.Downloads, m.Err)
	}
	return reportError(m.Report)
}
