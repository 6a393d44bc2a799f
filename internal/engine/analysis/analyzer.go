package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	domainerrors "burrow/internal/core/errors"
	"burrow/internal/engine/parser"
	"burrow/internal/engine/registry"
	"burrow/internal/engine/resolver"
	"burrow/internal/shared/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Analyzer runs the full pipeline: collect files, build the registry, parse
// every file, resolve its imports and fold them into a reverse index.
type Analyzer struct {
	parser       *parser.Parser
	excludeDirs  []string
	excludeFiles []string
}

func New(excludeDirs, excludeFiles []string) *Analyzer {
	return &Analyzer{
		parser:       parser.NewParser(),
		excludeDirs:  excludeDirs,
		excludeFiles: excludeFiles,
	}
}

// Analyze walks root and emits one record per registered module, sorted by
// identity. Per-file parse failures become diagnostics; only an invalid
// root fails the run.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "analyzer.Analyze",
		trace.WithAttributes(attribute.String("root", root)))
	defer span.End()

	start := time.Now()

	files, err := registry.CollectFiles(root, a.excludeDirs, a.excludeFiles)
	if err != nil {
		return nil, err
	}
	reg := registry.Build(root, files)

	observability.FilesCollected.Set(float64(len(files)))
	observability.ModulesRegistered.Set(float64(reg.Len()))

	result := &Result{
		RunID:     uuid.NewString(),
		Root:      root,
		FileCount: len(files),
	}

	// Reverse index: module identity -> set of importing file paths.
	importers := make(map[string]map[string]bool, reg.Len())
	for _, identity := range reg.Identities() {
		importers[identity] = make(map[string]bool)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := registry.ModuleName(root, path)
		if current == "" {
			continue
		}

		file, err := a.parser.ParseFile(path)
		if err != nil {
			err = domainerrors.AddContext(err, domainerrors.CtxModule, current)
			observability.ParseFailuresTotal.Inc()
			slog.Warn("skipping file", "path", path, "error", err)
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Path:    registry.RelPath(root, path),
				Message: err.Error(),
			})
			continue
		}

		relPath := registry.RelPath(root, path)
		for _, imp := range file.Imports {
			for identity := range resolver.Resolve(imp, current, reg) {
				if identity == current {
					continue // a module never counts as its own importer
				}
				if set, ok := importers[identity]; ok {
					set[relPath] = true
				}
			}
		}
	}

	for _, identity := range reg.Identities() {
		path, _ := reg.Lookup(identity)
		sorted := make([]string, 0, len(importers[identity]))
		for imp := range importers[identity] {
			sorted = append(sorted, imp)
		}
		sort.Strings(sorted)

		depth := registry.Depth(root, path)
		result.Records = append(result.Records, Record{
			Module:      identity,
			Path:        registry.RelPath(root, path),
			Depth:       depth,
			ImportCount: len(sorted),
			Importers:   sorted,
			Score:       depth * len(sorted),
		})
	}

	observability.ImportEdges.Set(float64(result.EdgeCount()))
	observability.AnalysisDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(
		attribute.Int("modules", len(result.Records)),
		attribute.Int("diagnostics", len(result.Diagnostics)),
	)

	slog.Debug("analysis complete",
		"root", root,
		"files", result.FileCount,
		"modules", len(result.Records),
		"diagnostics", len(result.Diagnostics),
		"elapsed", fmt.Sprintf("%.3fs", time.Since(start).Seconds()),
	)

	return result, nil
}
