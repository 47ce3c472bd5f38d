package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"yearsort/internal/domain"
	"yearsort/internal/logging"
)

// ProgressFunc is called while scanning to report progress.
type ProgressFunc func(current, total int)

const (
	reasonLinkSkipped   = "link skipped"
	reasonDirSkipped    = "directory skipped"
	reasonMetadataError = "metadata error"
	reasonYearPathFile  = "year path is not a directory"
)

type Planner struct {
	FS           FileSystem
	Times        Timestamper
	Action       domain.Action
	IncludeDirs  bool
	IncludeLinks bool
	// FallbackModTime makes a failed timestamp lookup fall back to the
	// file's modified time instead of skipping the entry. Set for the
	// "taken" date source, where files without EXIF data are expected.
	FallbackModTime bool
	Logger          logging.Logger
	OnProgress      ProgressFunc
}

// Plan lists the immediate children of sourceDir and derives one plan item
// per eligible entry. Entries are visited in case-insensitive name order so
// collision suffixes come out the same for a fixed directory state. Only a
// failure to list the directory itself aborts planning; everything
// per-entry degrades to a recorded skip.
func (p *Planner) Plan(ctx context.Context, sourceDir string) (domain.SortPlan, error) {
	if p.FS == nil || p.Times == nil {
		return domain.SortPlan{}, errors.New("planner requires FS and Times")
	}

	stop := p.Logger.Measure("Planning sort")
	defer stop()

	children, err := p.FS.ReadDir(sourceDir)
	if err != nil {
		return domain.SortPlan{}, err
	}
	sort.Slice(children, func(i, j int) bool {
		return strings.ToLower(children[i].Name()) < strings.ToLower(children[j].Name())
	})
	p.Logger.Verbosef("Found %d entries in %s", len(children), sourceDir)

	var plan domain.SortPlan
	claimed := make(map[string]bool)
	total := len(children)

	for i, child := range children {
		select {
		case <-ctx.Done():
			return plan, ctx.Err()
		default:
		}
		if p.OnProgress != nil {
			p.OnProgress(i+1, total)
		}

		name := child.Name()
		path := filepath.Join(sourceDir, name)

		info, statErr := p.FS.Lstat(path)
		if statErr != nil {
			p.skip(&plan, name, reasonMetadataError)
			continue
		}

		kind := classifyEntry(info)
		if kind == domain.KindDir && domain.IsYearDirName(name) {
			// our own year folders, never sorted into themselves
			continue
		}
		if kind == domain.KindLink && !p.IncludeLinks {
			p.skip(&plan, name, reasonLinkSkipped)
			continue
		}
		if kind == domain.KindDir && !p.IncludeDirs {
			p.skip(&plan, name, reasonDirSkipped)
			continue
		}

		ts, tsErr := p.Times.Timestamp(ctx, path, info)
		if tsErr != nil {
			if errors.Is(tsErr, context.Canceled) || errors.Is(tsErr, context.DeadlineExceeded) {
				return plan, tsErr
			}
			if !p.FallbackModTime {
				p.skip(&plan, name, reasonMetadataError)
				continue
			}
			ts = info.ModTime()
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("no embedded timestamp in %s, using modified time", name))
		}

		targetDir := filepath.Join(sourceDir, fmt.Sprintf("%04d", ts.Local().Year()))
		if dirInfo, dirErr := p.FS.Stat(targetDir); dirErr == nil && !dirInfo.IsDir() {
			p.skip(&plan, name, reasonYearPathFile)
			continue
		}

		targetPath, resolveErr := p.resolveTarget(targetDir, name, claimed)
		if resolveErr != nil {
			p.skip(&plan, name, reasonMetadataError)
			continue
		}
		claimed[targetPath] = true

		plan.Items = append(plan.Items, domain.PlanItem{
			Entry: domain.Entry{
				Path:      path,
				Name:      name,
				Kind:      kind,
				Timestamp: ts,
			},
			TargetDir:  targetDir,
			TargetPath: targetPath,
			Action:     p.Action,
		})
	}

	p.Logger.Verbosef("Planned %d items, %d skipped, %d warnings", len(plan.Items), len(plan.Skipped), len(plan.Warnings))
	return plan, nil
}

func (p *Planner) skip(plan *domain.SortPlan, name, reason string) {
	plan.Skipped = append(plan.Skipped, domain.SkippedEntry{Name: name, Reason: reason})
	p.Logger.Verbosef("Skipping %s: %s", name, reason)
}

// resolveTarget probes dir for the first unused name, linearly from n=1.
// Destinations claimed by earlier items in the same run count as occupied
// even though they do not exist on disk yet.
func (p *Planner) resolveTarget(dir, name string, claimed map[string]bool) (string, error) {
	candidate := filepath.Join(dir, name)
	for n := 1; ; n++ {
		if !claimed[candidate] {
			exists, err := p.FS.Exists(candidate)
			if err != nil {
				return "", err
			}
			if !exists {
				return candidate, nil
			}
		}
		candidate = filepath.Join(dir, domain.SuffixedName(name, n))
	}
}

func classifyEntry(info fs.FileInfo) domain.EntryKind {
	mode := info.Mode()
	switch {
	// reparse points surface as irregular on Windows
	case mode&(fs.ModeSymlink|fs.ModeIrregular) != 0:
		return domain.KindLink
	case mode.IsDir():
		return domain.KindDir
	default:
		return domain.KindFile
	}
}
