package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// PythonExtractor pulls import statements out of a parsed Python file.
type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		ParsedAt: time.Now(),
	}

	ctx := &ExtractionContext{Source: source, File: file}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"import_statement":      e.extractImport,
		"import_from_statement": e.extractFromImport,
	})
	engine.Walk(ctx, root)

	return file, nil
}

func (e *PythonExtractor) extractImport(ctx *ExtractionContext, node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		if child.Kind() == "dotted_name" || child.Kind() == "identifier" {
			ctx.File.Imports = append(ctx.File.Imports, RawImport{
				Kind:     ImportAbsolute,
				Module:   ctx.Text(child),
				Location: ctx.Location(child),
			})
		} else if child.Kind() == "aliased_import" {
			var module, alias string
			for j := uint(0); j < child.ChildCount(); j++ {
				sub := child.Child(j)
				if sub.Kind() == "dotted_name" || sub.Kind() == "identifier" {
					if module == "" {
						module = ctx.Text(sub)
					} else {
						alias = ctx.Text(sub)
					}
				}
			}
			ctx.File.Imports = append(ctx.File.Imports, RawImport{
				Kind:     ImportAbsolute,
				Module:   module,
				Alias:    alias,
				Location: ctx.Location(child),
			})
		}
	}
	return true
}

func (e *PythonExtractor) extractFromImport(ctx *ExtractionContext, node *sitter.Node) bool {
	imp := RawImport{
		Kind:     ImportFrom,
		Location: ctx.Location(node),
	}

	foundImport := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "import":
			foundImport = true
		case "relative_import":
			relText := ctx.Text(child)
			imp.Level = leadingDots(relText)
			imp.Module = strings.TrimLeft(relText, ".")
		case "dotted_name", "identifier":
			if foundImport {
				imp.Names = append(imp.Names, ctx.Text(child))
			} else {
				imp.Module = ctx.Text(child)
			}
		case "aliased_import":
			if name := e.aliasedName(ctx, child); name != "" {
				imp.Names = append(imp.Names, name)
			}
		case "wildcard_import":
			imp.Wildcard = true
		}
	}

	ctx.File.Imports = append(ctx.File.Imports, imp)
	return true
}

// aliasedName returns the imported name of `x as y`, ignoring the alias.
func (e *PythonExtractor) aliasedName(ctx *ExtractionContext, node *sitter.Node) string {
	for i := uint(0); i < node.ChildCount(); i++ {
		sub := node.Child(i)
		if sub.Kind() == "dotted_name" || sub.Kind() == "identifier" {
			return ctx.Text(sub)
		}
	}
	return ""
}

func leadingDots(s string) int {
	n := 0
	for _, r := range s {
		if r != '.' {
			break
		}
		n++
	}
	return n
}
