package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"yearsort/internal/domain"
)

func planOf(items ...domain.PlanItem) domain.SortPlan {
	return domain.SortPlan{Items: items}
}

func fileItem(name, year string, action domain.Action) domain.PlanItem {
	return domain.PlanItem{
		Entry: domain.Entry{
			Path: filepath.Join(sourceDir, name),
			Name: name,
			Kind: domain.KindFile,
		},
		TargetDir:  filepath.Join(sourceDir, year),
		TargetPath: filepath.Join(sourceDir, year, name),
		Action:     action,
	}
}

func TestExecutorDryRunTouchesNothing(t *testing.T) {
	mock := &fakeFS{exists: map[string]bool{}}
	executor := Executor{FS: mock, DryRun: true}

	plan := planOf(
		fileItem("a.txt", "2022", domain.ActionMove),
		fileItem("b.txt", "2023", domain.ActionMove),
	)
	report, err := executor.Execute(context.Background(), plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.mkdirs)+len(mock.moves)+len(mock.copies)+len(mock.copyDirs) != 0 {
		t.Fatalf("dry run must not touch the filesystem")
	}
	if !report.DryRun {
		t.Fatalf("report should be marked dry-run")
	}
	if report.SucceededCount() != 2 || report.FailedCount() != 0 {
		t.Fatalf("unexpected counts: %d/%d", report.SucceededCount(), report.FailedCount())
	}
}

func TestExecutorMovesFiles(t *testing.T) {
	mock := &fakeFS{exists: map[string]bool{}}
	executor := Executor{FS: mock}

	item := fileItem("a.txt", "2022", domain.ActionMove)
	report, err := executor.Execute(context.Background(), planOf(item))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.mkdirs) != 1 || mock.mkdirs[0] != item.TargetDir {
		t.Fatalf("expected year dir creation, got %v", mock.mkdirs)
	}
	if len(mock.moves) != 1 || mock.moves[0] != [2]string{item.Entry.Path, item.TargetPath} {
		t.Fatalf("unexpected moves: %v", mock.moves)
	}
	if report.FailedCount() != 0 {
		t.Fatalf("expected success, got %d failures", report.FailedCount())
	}
}

func TestExecutorIsolatesFailures(t *testing.T) {
	locked := fileItem("locked.txt", "2022", domain.ActionMove)
	fine := fileItem("fine.txt", "2023", domain.ActionMove)

	mock := &fakeFS{
		exists:  map[string]bool{},
		moveErr: map[string]error{locked.Entry.Path: errors.New("file is locked")},
	}
	executor := Executor{FS: mock}

	report, err := executor.Execute(context.Background(), planOf(locked, fine))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.FailedCount() != 1 || report.SucceededCount() != 1 {
		t.Fatalf("unexpected counts: %d failed, %d succeeded", report.FailedCount(), report.SucceededCount())
	}
	if len(mock.moves) != 1 || mock.moves[0][0] != fine.Entry.Path {
		t.Fatalf("the healthy entry must still be processed, got %v", mock.moves)
	}
	if report.Results[0].Err == nil || report.Results[1].Err != nil {
		t.Fatalf("results should carry the per-item outcome")
	}
}

func TestExecutorCopiesDirectoriesRecursively(t *testing.T) {
	dirItem := domain.PlanItem{
		Entry: domain.Entry{
			Path: filepath.Join(sourceDir, "old"),
			Name: "old",
			Kind: domain.KindDir,
		},
		TargetDir:  filepath.Join(sourceDir, "2021"),
		TargetPath: filepath.Join(sourceDir, "2021", "old"),
		Action:     domain.ActionCopy,
	}
	fileCopy := fileItem("a.txt", "2021", domain.ActionCopy)

	mock := &fakeFS{exists: map[string]bool{}}
	executor := Executor{FS: mock}

	if _, err := executor.Execute(context.Background(), planOf(dirItem, fileCopy)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.copyDirs) != 1 || mock.copyDirs[0][0] != dirItem.Entry.Path {
		t.Fatalf("expected directory tree copy, got %v", mock.copyDirs)
	}
	if len(mock.copies) != 1 || mock.copies[0][0] != fileCopy.Entry.Path {
		t.Fatalf("expected file copy, got %v", mock.copies)
	}
	if len(mock.moves) != 0 {
		t.Fatalf("copy mode must not move, got %v", mock.moves)
	}
}

func TestExecutorRecordsMkdirFailure(t *testing.T) {
	mock := &fakeFS{
		exists:   map[string]bool{},
		mkdirErr: errors.New("disk full"),
	}
	executor := Executor{FS: mock}

	report, err := executor.Execute(context.Background(), planOf(
		fileItem("a.txt", "2022", domain.ActionMove),
		fileItem("b.txt", "2023", domain.ActionMove),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.FailedCount() != 2 {
		t.Fatalf("expected both items to fail, got %d", report.FailedCount())
	}
	if len(mock.moves) != 0 {
		t.Fatalf("no move should happen after mkdir failure")
	}
}

func TestExecutorReportsProgress(t *testing.T) {
	mock := &fakeFS{exists: map[string]bool{}}

	var calls []string
	executor := Executor{
		FS:     mock,
		DryRun: true,
		OnProgress: func(current, total int, name string) {
			calls = append(calls, name)
		},
	}

	_, err := executor.Execute(context.Background(), planOf(
		fileItem("a.txt", "2022", domain.ActionMove),
		fileItem("b.txt", "2023", domain.ActionMove),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 2 || calls[0] != "a.txt" || calls[1] != "b.txt" {
		t.Fatalf("unexpected progress calls: %v", calls)
	}
}
