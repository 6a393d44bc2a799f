package cliapp

import (
	"flag"
	"fmt"

	"burrow/internal/report"
)

const versionString = "0.3.0"
const defaultConfigPath = "./burrow.toml"

const usageText = `usage: burrow <command> [flags] [root]

commands:
  hot      Deeply nested modules imported by many files (promote candidates)
  dead     Modules never imported anywhere (deletion candidates)
  cold     Modules imported by few files (consolidation candidates)
  watch    Re-run the active view whenever the tree changes
  trend    Compare the two most recent recorded runs
  version  Print version and exit
`

type cliOptions struct {
	command     string
	root        string
	configPath  string
	view        report.View
	minImports  int
	maxImports  int
	minDepth    int
	top         int
	noImporters bool
	history     bool
	tsv         string
	ui          bool
	verbose     bool
}

// flagged tracks which thresholds the user set explicitly, so config file
// values survive for the rest.
type flagged struct {
	minImports bool
	maxImports bool
	minDepth   bool
	top        bool
}

func parseOptions(args []string) (cliOptions, flagged, error) {
	var opts cliOptions
	var set flagged

	if len(args) == 0 {
		return opts, set, fmt.Errorf("%s", usageText)
	}

	opts.command = args[0]
	switch opts.command {
	case "hot", "dead", "cold", "watch", "trend", "version":
	default:
		return opts, set, fmt.Errorf("unknown command %q\n%s", opts.command, usageText)
	}

	fs := flag.NewFlagSet("burrow "+opts.command, flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to config file")
	fs.IntVar(&opts.minImports, "min-imports", 0, "Minimum importer count (hot)")
	fs.IntVar(&opts.maxImports, "max-imports", 0, "Maximum importer count (cold)")
	fs.IntVar(&opts.minDepth, "min-depth", 0, "Minimum directory depth")
	fs.IntVar(&opts.top, "top", 0, "Max results to show")
	fs.BoolVar(&opts.noImporters, "no-importers", false, "Suppress per-row importer list")
	fs.BoolVar(&opts.history, "history", false, "Record this run in the history store")
	fs.StringVar(&opts.tsv, "tsv", "", "Write a TSV export to this path")
	fs.BoolVar(&opts.ui, "ui", false, "Interactive terminal UI (watch mode)")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	if err := fs.Parse(args[1:]); err != nil {
		return opts, set, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-imports":
			set.minImports = true
		case "max-imports":
			set.maxImports = true
		case "min-depth":
			set.minDepth = true
		case "top":
			set.top = true
		}
	})

	if opts.ui && opts.command != "watch" {
		return opts, set, fmt.Errorf("-ui requires the watch command")
	}
	if fs.NArg() > 1 {
		return opts, set, fmt.Errorf("at most one root argument expected, got %d", fs.NArg())
	}
	if fs.NArg() == 1 {
		opts.root = fs.Arg(0)
	}

	switch opts.command {
	case "dead":
		opts.view = report.ViewDead
	case "cold":
		opts.view = report.ViewCold
	default:
		// Watch starts on the hot view; the UI can switch.
		opts.view = report.ViewHot
	}

	return opts, set, nil
}
