package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"yearsort/internal/app"
	"yearsort/internal/config"
	"yearsort/internal/domain"
	appErrors "yearsort/internal/errors"
	"yearsort/internal/infra/exif"
	"yearsort/internal/infra/fs"
	"yearsort/internal/logging"
	"yearsort/internal/platform"
	"yearsort/internal/presentation"
)

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "yearsort",
		Short:         "Sort a Downloads folder into year subfolders",
		Long: "yearsort moves (or copies) the entries of a Downloads folder into\n" +
			"year-named subfolders, keyed on a configurable file timestamp.\n" +
			"Name collisions resolve to \"name (1).ext\", \"name (2).ext\" and so on.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, configPath)
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", configPath, err)
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Configuration file path")
	flags.String("downloads", "", "Folder to sort (default: the platform Downloads folder)")
	flags.String("mode", config.ModeMove, "Move or copy entries")
	flags.String("date-source", config.DateCreated, "Timestamp deciding the year: created, modified or taken")
	flags.Bool("dry-run", false, "Show what would happen without changing anything")
	flags.Bool("include-dirs", false, "Also sort directories (default: files only)")
	flags.Bool("include-links", false, "Also sort symlinks and junctions (default: skip for safety)")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.BoolP("interactive", "i", false, "Interactive terminal mode")

	return cmd
}

// resolveConfig layers defaults, the optional TOML file, environment
// variables and finally explicit flags.
func resolveConfig(cmd *cobra.Command, configPath string) (config.Config, error) {
	cfg := config.Default()

	path := configPath
	optional := path == ""
	if optional {
		path = config.DefaultFilePath()
	}
	if path != "" {
		if err := config.LoadFile(path, &cfg); err != nil {
			if !optional || !os.IsNotExist(err) {
				return config.Config{}, err
			}
		}
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("downloads") {
		cfg.Downloads, _ = flags.GetString("downloads")
	}
	if flags.Changed("mode") {
		cfg.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("date-source") {
		cfg.DateSource, _ = flags.GetString("date-source")
	}
	if v, _ := flags.GetBool("dry-run"); v {
		cfg.DryRun = true
	}
	if v, _ := flags.GetBool("include-dirs"); v {
		cfg.IncludeDirs = true
	}
	if v, _ := flags.GetBool("include-links"); v {
		cfg.IncludeLinks = true
	}
	if v, _ := flags.GetBool("verbose"); v {
		cfg.Verbose = true
	}
	if v, _ := flags.GetBool("interactive"); v {
		cfg.Interactive = true
	}

	if cfg.Downloads == "" {
		cfg.Downloads = platform.DefaultDownloadsDir()
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	filesystem := fs.OSFS{}

	info, err := filesystem.Stat(cfg.Downloads)
	if err != nil {
		return appErrors.Wrap(appErrors.NotFound, "stat", cfg.Downloads, err)
	}
	if !info.IsDir() {
		return appErrors.Wrap(appErrors.InvalidConfig, "stat", cfg.Downloads, errors.New("not a directory"))
	}

	logger := logging.New(os.Stderr, cfg.Verbose)

	action := domain.ActionMove
	if cfg.Mode == config.ModeCopy {
		action = domain.ActionCopy
	}

	planner := &app.Planner{
		FS:              filesystem,
		Times:           timestamper(cfg),
		Action:          action,
		IncludeDirs:     cfg.IncludeDirs,
		IncludeLinks:    cfg.IncludeLinks,
		FallbackModTime: cfg.DateSource == config.DateTaken,
		Logger:          logger,
	}
	executor := &app.Executor{FS: filesystem, DryRun: cfg.DryRun, Logger: logger}

	if cfg.Interactive {
		if isTerminal(os.Stdout) {
			return runInteractive(ctx, cfg, planner, executor)
		}
		logger.Warnf("interactive mode needs a terminal, falling back to plain output")
	}

	plan, err := planner.Plan(ctx, cfg.Downloads)
	if err != nil {
		return appErrors.Wrap(appErrors.Internal, "plan", cfg.Downloads, err)
	}

	printer := presentation.Printer{Writer: out, Verbose: cfg.Verbose}
	if len(plan.Items) == 0 && len(plan.Skipped) == 0 {
		printer.PrintNothing()
		return nil
	}
	printer.PrintPlan(plan)

	report, err := executor.Execute(ctx, plan)
	if err != nil {
		return appErrors.Wrap(appErrors.IOFailure, "execute", cfg.Downloads, err)
	}
	printer.PrintReport(report)

	return reportError(report)
}

// reportError turns failed items into a non-zero exit. The batch always
// completes first; this only decides the final status.
func reportError(report domain.RunReport) error {
	if n := report.FailedCount(); n > 0 {
		return fmt.Errorf("completed with %d failure(s)", n)
	}
	return nil
}

func timestamper(cfg config.Config) app.Timestamper {
	switch cfg.DateSource {
	case config.DateModified:
		return fs.ModTimes{}
	case config.DateTaken:
		return exif.Reader{}
	default:
		return fs.BirthTimes{}
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
