package analysis

// Record is the per-module output of one analysis pass. Records are
// immutable once emitted; the presentation layer only filters and sorts.
type Record struct {
	Module      string   `json:"module"`
	Path        string   `json:"path"` // relative to the analysis root
	Depth       int      `json:"depth"`
	ImportCount int      `json:"import_count"`
	Importers   []string `json:"importers"` // sorted relative file paths
	Score       int      `json:"score"`     // depth * import_count
}

// Diagnostic reports a file-local failure. The run continues without the
// file's imports.
type Diagnostic struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result carries everything one pass produced.
type Result struct {
	RunID       string       `json:"run_id"`
	Root        string       `json:"root"`
	FileCount   int          `json:"file_count"`
	Records     []Record     `json:"records"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// MaxDepth is the deepest registered module in the result.
func (r *Result) MaxDepth() int {
	max := 0
	for _, rec := range r.Records {
		if rec.Depth > max {
			max = rec.Depth
		}
	}
	return max
}

// TopScore is the highest score in the result.
func (r *Result) TopScore() int {
	top := 0
	for _, rec := range r.Records {
		if rec.Score > top {
			top = rec.Score
		}
	}
	return top
}

// EdgeCount totals the resolved importer edges across all modules.
func (r *Result) EdgeCount() int {
	n := 0
	for _, rec := range r.Records {
		n += rec.ImportCount
	}
	return n
}

// DeadCount counts modules no file imports.
func (r *Result) DeadCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.ImportCount == 0 {
			n++
		}
	}
	return n
}
