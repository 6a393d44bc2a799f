// Package report filters, sorts and renders analysis records. No
// resolution logic lives here; records arrive fully computed.
package report

import (
	"sort"

	"burrow/internal/engine/analysis"
)

type View string

const (
	ViewHot  View = "hot"  // deeply nested modules imported by many files
	ViewDead View = "dead" // modules never imported anywhere
	ViewCold View = "cold" // modules imported by few files
)

// Options carries the per-view thresholds. Zero values are valid; callers
// layer config and flag defaults before filtering.
type Options struct {
	MinImports    int
	MaxImports    int
	MinDepth      int
	Top           int
	ShowImporters bool
}

// Hot selects promote candidates: popular modules buried deep in the tree,
// sorted by descending score, then descending import count, then identity.
func Hot(records []analysis.Record, opts Options) []analysis.Record {
	out := filter(records, func(r analysis.Record) bool {
		return r.ImportCount >= opts.MinImports && r.Depth >= opts.MinDepth
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].ImportCount != out[j].ImportCount {
			return out[i].ImportCount > out[j].ImportCount
		}
		return out[i].Module < out[j].Module
	})
	return top(out, opts.Top)
}

// Dead selects deletion candidates: modules with no importers, deepest
// first.
func Dead(records []analysis.Record, opts Options) []analysis.Record {
	out := filter(records, func(r analysis.Record) bool {
		return r.ImportCount == 0
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Depth != out[j].Depth {
			return out[i].Depth > out[j].Depth
		}
		return out[i].Module < out[j].Module
	})
	return top(out, opts.Top)
}

// Cold selects consolidation candidates: fewest importers first; among
// ties, deepest first (most misplaced).
func Cold(records []analysis.Record, opts Options) []analysis.Record {
	out := filter(records, func(r analysis.Record) bool {
		return r.ImportCount >= 1 && r.ImportCount <= opts.MaxImports && r.Depth >= opts.MinDepth
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ImportCount != out[j].ImportCount {
			return out[i].ImportCount < out[j].ImportCount
		}
		if out[i].Depth != out[j].Depth {
			return out[i].Depth > out[j].Depth
		}
		return out[i].Module < out[j].Module
	})
	return top(out, opts.Top)
}

// ForView dispatches by view name.
func ForView(view View, records []analysis.Record, opts Options) []analysis.Record {
	switch view {
	case ViewHot:
		return Hot(records, opts)
	case ViewDead:
		return Dead(records, opts)
	case ViewCold:
		return Cold(records, opts)
	}
	return nil
}

func filter(records []analysis.Record, keep func(analysis.Record) bool) []analysis.Record {
	out := make([]analysis.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func top(records []analysis.Record, n int) []analysis.Record {
	if n > 0 && len(records) > n {
		return records[:n]
	}
	return records
}
