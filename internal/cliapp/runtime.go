package cliapp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"burrow/internal/core/config"
	"burrow/internal/core/watcher"
	"burrow/internal/data/history"
	"burrow/internal/engine/analysis"
	"burrow/internal/report"
	"burrow/internal/shared/observability"
)

func Run(args []string) int {
	opts, set, err := parseOptions(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}

	if opts.command == "version" {
		fmt.Printf("burrow v%s\n", versionString)
		return 0
	}

	cleanupLogs := configureLogging(opts.ui, opts.verbose)
	defer cleanupLogs()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	applyOptions(&opts, set, cfg)

	if opts.command == "trend" {
		return runTrend(cfg)
	}

	ctx := context.Background()
	if cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Warn("tracing disabled", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	analyzer := analysis.New(cfg.Exclude.Dirs, cfg.Exclude.Files)
	result, err := analyzer.Analyze(ctx, cfg.Root)
	if err != nil {
		slog.Error("analysis failed", "root", cfg.Root, "error", err)
		return 1
	}
	emitRun(cfg, opts, result)

	if opts.command != "watch" {
		return 0
	}

	return runWatch(ctx, cfg, opts, analyzer, result)
}

// emitRun prints the selected view and performs the side outputs that apply
// to every run, initial or rescan.
func emitRun(cfg *config.Config, opts cliOptions, result *analysis.Result) {
	if !opts.ui {
		selected := report.ForView(opts.view, result.Records, viewOptions(opts))
		fmt.Print(report.Render(opts.view, selected, !opts.noImporters))
	}

	if cfg.Output.TSV != "" {
		if err := report.WriteTSV(cfg.Output.TSV, result.Records); err != nil {
			slog.Error("tsv export failed", "path", cfg.Output.TSV, "error", err)
		}
	}

	if cfg.History.Enabled {
		if err := recordRun(cfg.History.Path, result); err != nil {
			slog.Error("history save failed", "path", cfg.History.Path, "error", err)
		}
	}
}

func recordRun(path string, result *analysis.Result) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveResult(result)
}

func runTrend(cfg *config.Config) int {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Error("failed to open history store", "path", cfg.History.Path, "error", err)
		return 1
	}
	defer store.Close()

	rep, err := history.BuildTrendReport(store, cfg.Root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	fmt.Print(formatTrend(rep))
	return 0
}

func formatTrend(rep history.TrendReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trend for %s (%s -> %s)\n", rep.Root,
		rep.From.Format(time.RFC3339), rep.To.Format(time.RFC3339))
	fmt.Fprintf(&b, "  modules %+d | edges %+d | dead %+d\n",
		rep.DeltaModules, rep.DeltaEdges, rep.DeltaDead)
	if len(rep.NewModules) > 0 {
		fmt.Fprintf(&b, "  new: %s\n", strings.Join(rep.NewModules, ", "))
	}
	if len(rep.GoneModules) > 0 {
		fmt.Fprintf(&b, "  gone: %s\n", strings.Join(rep.GoneModules, ", "))
	}
	for _, s := range rep.ScoreShifts {
		fmt.Fprintf(&b, "  %s: score %d -> %d\n", s.Module, s.Before, s.After)
	}
	return b.String()
}

func runWatch(ctx context.Context, cfg *config.Config, opts cliOptions, analyzer *analysis.Analyzer, first *analysis.Result) int {
	var mu sync.Mutex
	last := first
	lastRun := time.Now()
	var onResult func(*analysis.Result)

	rescan := func(paths []string) {
		observability.RescansTotal.Inc()
		slog.Info("changes detected, rescanning", "changed", len(paths))

		result, err := analyzer.Analyze(ctx, cfg.Root)
		if err != nil {
			slog.Error("rescan failed", "error", err)
			return
		}

		mu.Lock()
		last = result
		lastRun = time.Now()
		notify := onResult
		mu.Unlock()

		emitRun(cfg, opts, result)
		if notify != nil {
			notify(result)
		}
	}

	w, err := watcher.NewWatcher(cfg.Watch.Debounce, cfg.Watch.MaxEventRate,
		cfg.Exclude.Dirs, cfg.Exclude.Files, rescan)
	if err != nil {
		slog.Error("failed to create watcher", "error", err)
		return 1
	}
	defer w.Close()

	if err := w.Watch(cfg.Root); err != nil {
		slog.Error("failed to watch root", "root", cfg.Root, "error", err)
		return 1
	}

	if cfg.Observability.Enabled {
		srv := observability.NewServer(cfg.Observability.Address, func() observability.HealthStatus {
			mu.Lock()
			defer mu.Unlock()
			return observability.HealthStatus{
				Status:       "up",
				LastRun:      lastRun,
				ModuleCount:  len(last.Records),
				FileCount:    last.FileCount,
				Diagnostics:  len(last.Diagnostics),
				WatchedRoots: []string{cfg.Root},
			}
		})
		if err := srv.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			return 1
		}
		defer srv.Stop(context.Background())
	}

	if opts.ui {
		register := func(fn func(*analysis.Result)) {
			mu.Lock()
			onResult = fn
			mu.Unlock()
		}
		if err := runUI(cfg, opts.view, first, register); err != nil {
			slog.Error("failed to run UI", "error", err)
			return 1
		}
		return 0
	}

	select {}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path != defaultConfigPath {
		return nil, err
	}
	// No config file next to the tree is the common case; run on defaults.
	if os.IsNotExist(err) {
		return config.Default(), nil
	}
	return nil, err
}

// applyOptions layers config values under explicit flags. Thresholds the
// user did not set on the command line come from the config for the active
// view.
func applyOptions(opts *cliOptions, set flagged, cfg *config.Config) {
	if opts.root != "" {
		cfg.Root = opts.root
	}
	if opts.history {
		cfg.History.Enabled = true
	}
	if opts.tsv != "" {
		cfg.Output.TSV = opts.tsv
	}

	base := viewDefaults(cfg, opts.view)
	if !set.minImports {
		opts.minImports = base.MinImports
	}
	if !set.maxImports {
		opts.maxImports = base.MaxImports
	}
	if !set.minDepth {
		opts.minDepth = base.MinDepth
	}
	if !set.top {
		opts.top = base.Top
	}
}

func viewDefaults(cfg *config.Config, view report.View) report.Options {
	switch view {
	case report.ViewDead:
		return report.Options{Top: cfg.Views.Dead.Top}
	case report.ViewCold:
		return report.Options{
			MaxImports: cfg.Views.Cold.MaxImports,
			MinDepth:   cfg.Views.Cold.MinDepth,
			Top:        cfg.Views.Cold.Top,
		}
	default:
		return report.Options{
			MinImports: cfg.Views.Hot.MinImports,
			MinDepth:   cfg.Views.Hot.MinDepth,
			Top:        cfg.Views.Hot.Top,
		}
	}
}

func viewOptions(opts cliOptions) report.Options {
	return report.Options{
		MinImports:    opts.minImports,
		MaxImports:    opts.maxImports,
		MinDepth:      opts.minDepth,
		Top:           opts.top,
		ShowImporters: !opts.noImporters,
	}
}

func configureLogging(uiMode, verbose bool) func() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stderr
	var closeFn func() = func() {}
	if uiMode {
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
			if err == nil {
				output = f
				closeFn = func() { _ = f.Close() }
			} else {
				fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return closeFn
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "burrow", "burrow.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "burrow", "burrow.log")
	}

	return "burrow.log"
}
