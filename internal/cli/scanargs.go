package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/reclaimtools/reclaim/internal/config"
	"github.com/reclaimtools/reclaim/internal/exitcodes"
	"github.com/reclaimtools/reclaim/internal/scan"
	"github.com/spf13/cobra"
)

// unlimitedDepth is the depth bound used by --all. No real project tree nests
// this deep, so the walk behaves as unbounded.
const unlimitedDepth = 1 << 16

// scanFlags is the flag set shared by scan, clean and review.
type scanFlags struct {
	excludes          []string
	minAgeDays        int
	maxDepth          int
	keepLatestDerived int
	keepLatestCache   int
	categories        []string
	all               bool
}

// register binds the shared scan flags to cmd.
func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.excludes, "exclude", "x", nil, "path that must never match (repeatable)")
	cmd.Flags().IntVar(&f.minAgeDays, "min-age-days", config.DefaultMinAgeDays, "skip directories modified within this many days")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", config.DefaultMaxDepth, "levels to descend below each root")
	cmd.Flags().IntVar(&f.keepLatestDerived, "keep-latest-derived", config.DefaultKeepLatestDerived, "newest DerivedData and archive entries to keep")
	cmd.Flags().IntVar(&f.keepLatestCache, "keep-latest-cache", config.DefaultKeepLatestCache, "newest Homebrew cache entries to keep")
	cmd.Flags().StringArrayVar(&f.categories, "category", nil, "only report this category (repeatable)")
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, "ignore age, depth and keep-latest limits")
}

// scanConfig merges the config file and the command line into a scan config.
// Flags override file values only when set; positional args override the
// configured roots.
func (a *App) scanConfig(cmd *cobra.Command, f *scanFlags, args []string) (scan.Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	cwd, err := os.Getwd()
	if err != nil {
		return scan.Config{}, fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := a.loadConfig(home)
	if err != nil {
		return scan.Config{}, err
	}

	minAgeDays := *cfg.MinAgeDays
	maxDepth := *cfg.MaxDepth
	keepDerived := *cfg.KeepLatestDerived
	keepCache := *cfg.KeepLatestCache
	categories := cfg.Categories

	flags := cmd.Flags()
	if flags.Changed("min-age-days") {
		minAgeDays = f.minAgeDays
	}
	if flags.Changed("max-depth") {
		maxDepth = f.maxDepth
	}
	if flags.Changed("keep-latest-derived") {
		keepDerived = f.keepLatestDerived
	}
	if flags.Changed("keep-latest-cache") {
		keepCache = f.keepLatestCache
	}
	if len(f.categories) > 0 {
		categories = f.categories
	}
	if f.all {
		minAgeDays = 0
		maxDepth = unlimitedDepth
		keepDerived = 0
		keepCache = 0
	}

	excludes := append([]string(nil), cfg.Excludes...)
	for _, e := range f.excludes {
		excludes = append(excludes, config.ExpandHome(e, home))
	}

	roots, err := a.resolveRoots(args, cfg.Roots, cwd, home, excludes)
	if err != nil {
		return scan.Config{}, err
	}

	sc := scan.Config{
		Roots:             roots,
		Excludes:          excludes,
		MinAge:            time.Duration(minAgeDays) * 24 * time.Hour,
		MaxDepth:          maxDepth,
		KeepLatestDerived: keepDerived,
		KeepLatestCache:   keepCache,
		Categories:        categories,
		Home:              home,
	}
	if err := sc.Validate(); err != nil {
		return scan.Config{}, &ExitError{Code: exitcodes.UsageError, Message: err.Error()}
	}
	a.debugf("roots: %v", sc.Roots)
	return sc, nil
}

// resolveRoots picks the scan roots: positional args win over the config
// file, and with neither the working directory plus the conventional project
// directories are used. Explicit args must exist; configured roots may be
// absent on this machine and are skipped by the walker.
func (a *App) resolveRoots(args, configured []string, cwd, home string, excludes []string) ([]string, error) {
	if len(args) > 0 {
		roots := make([]string, 0, len(args))
		for _, arg := range args {
			path := config.ExpandHome(arg, home)
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			info, err := os.Stat(path)
			if err != nil || !info.IsDir() {
				return nil, &ExitError{
					Code:    exitcodes.UsageError,
					Message: fmt.Sprintf("not a directory: %s", arg),
				}
			}
			roots = append(roots, path)
		}
		return roots, nil
	}
	if len(configured) > 0 {
		return configured, nil
	}
	return scan.DefaultRoots(cwd, home, nil, scan.Normalize(excludes)), nil
}
