package history

import (
	"fmt"
	"sort"
	"time"
)

// TrendReport compares the two most recent runs for a root.
type TrendReport struct {
	Root         string
	From         time.Time
	To           time.Time
	DeltaModules int
	DeltaEdges   int
	DeltaDead    int
	NewModules   []string
	GoneModules  []string
	ScoreShifts  []ScoreShift
}

// ScoreShift is a module whose score changed between the compared runs.
type ScoreShift struct {
	Module string
	Before int
	After  int
}

// BuildTrendReport loads the latest two snapshots for root and diffs their
// module sets and scores.
func BuildTrendReport(store *Store, root string) (TrendReport, error) {
	snaps, err := store.RecentSnapshots(root, 2)
	if err != nil {
		return TrendReport{}, err
	}
	if len(snaps) < 2 {
		return TrendReport{}, fmt.Errorf("need at least two runs for a trend, have %d", len(snaps))
	}

	latest, previous := snaps[0], snaps[1]

	after, err := store.ModuleScores(latest.RunID)
	if err != nil {
		return TrendReport{}, err
	}
	before, err := store.ModuleScores(previous.RunID)
	if err != nil {
		return TrendReport{}, err
	}

	report := TrendReport{
		Root:         root,
		From:         previous.Timestamp,
		To:           latest.Timestamp,
		DeltaModules: latest.ModuleCount - previous.ModuleCount,
		DeltaEdges:   latest.EdgeCount - previous.EdgeCount,
		DeltaDead:    latest.DeadCount - previous.DeadCount,
	}

	for module, score := range after {
		prevScore, ok := before[module]
		if !ok {
			report.NewModules = append(report.NewModules, module)
			continue
		}
		if prevScore != score {
			report.ScoreShifts = append(report.ScoreShifts, ScoreShift{
				Module: module,
				Before: prevScore,
				After:  score,
			})
		}
	}
	for module := range before {
		if _, ok := after[module]; !ok {
			report.GoneModules = append(report.GoneModules, module)
		}
	}

	sort.Strings(report.NewModules)
	sort.Strings(report.GoneModules)
	sort.Slice(report.ScoreShifts, func(i, j int) bool {
		return report.ScoreShifts[i].Module < report.ScoreShifts[j].Module
	})

	return report, nil
}
