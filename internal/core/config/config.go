package config

import (
	"time"
)

type Config struct {
	Version       int           `toml:"version"`
	Root          string        `toml:"root"`
	Exclude       Exclude       `toml:"exclude"`
	Views         Views         `toml:"views"`
	History       History       `toml:"history"`
	Watch         Watch         `toml:"watch"`
	Output        Output        `toml:"output"`
	Observability Observability `toml:"observability"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Views struct {
	Hot  HotView  `toml:"hot"`
	Dead DeadView `toml:"dead"`
	Cold ColdView `toml:"cold"`
}

type HotView struct {
	MinImports int `toml:"min_imports"`
	MinDepth   int `toml:"min_depth"`
	Top        int `toml:"top"`
}

type DeadView struct {
	Top int `toml:"top"`
}

type ColdView struct {
	MaxImports int `toml:"max_imports"`
	MinDepth   int `toml:"min_depth"`
	Top        int `toml:"top"`
}

type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// Events per second the watcher will fold into rescans before
	// backing off.
	MaxEventRate float64 `toml:"max_event_rate"`
}

type Output struct {
	TSV string `toml:"tsv"`
}

type Observability struct {
	Enabled      bool   `toml:"enabled"`
	Address      string `toml:"address"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}
