package report

import (
	"fmt"
	"os"
	"strings"

	"burrow/internal/engine/analysis"
)

// GenerateTSV renders all records as tab-separated rows, one per module,
// with the importer list joined by commas.
func GenerateTSV(records []analysis.Record) string {
	var buf strings.Builder

	buf.WriteString("Module\tFile\tDepth\tImports\tScore\tImporters\n")
	for _, r := range records {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%s\n",
			r.Module,
			r.Path,
			r.Depth,
			r.ImportCount,
			r.Score,
			strings.Join(r.Importers, ","),
		))
	}

	return buf.String()
}

// WriteTSV writes the TSV export to path.
func WriteTSV(path string, records []analysis.Record) error {
	return os.WriteFile(path, []byte(GenerateTSV(records)), 0o644)
}
