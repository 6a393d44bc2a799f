// Package resolver maps raw import statements onto module identities known
// to the registry. Resolution is a pure function of the statement, the
// importing file's own identity and the registry; names that match nothing
// are external dependencies and resolve to nothing.
package resolver

import (
	"strings"

	"burrow/internal/engine/parser"
	"burrow/internal/engine/registry"
)

const wildcardMarker = "*"

// Resolve returns the set of registered identities one raw import refers
// to. The result never contains the empty identity; it may contain the
// importer itself, which the caller discards.
func Resolve(imp parser.RawImport, importer string, reg *registry.Registry) map[string]bool {
	resolved := make(map[string]bool)

	switch imp.Kind {
	case parser.ImportAbsolute:
		if best, ok := longestPrefix(imp.Module, reg); ok {
			resolved[best] = true
		}
	case parser.ImportFrom:
		resolveFrom(imp, importer, reg, resolved)
	}

	return resolved
}

// longestPrefix probes the full dotted name and successively shorter
// prefixes, returning the most specific registered one. `import a.b.c`
// satisfied only by a coarser known package still depends on that package.
func longestPrefix(name string, reg *registry.Registry) (string, bool) {
	if name == "" {
		return "", false
	}
	parts := strings.Split(name, ".")
	for i := len(parts); i > 0; i-- {
		candidate := strings.Join(parts[:i], ".")
		if reg.Has(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func resolveFrom(imp parser.RawImport, importer string, reg *registry.Registry, resolved map[string]bool) {
	base, ok := resolveBase(imp, importer)
	if !ok {
		return
	}

	if imp.Wildcard && len(imp.Names) == 0 {
		if base != "" && reg.Has(base) {
			resolved[base] = true
		}
		return
	}

	for _, name := range imp.Names {
		if name == wildcardMarker {
			if base != "" && reg.Has(base) {
				resolved[base] = true
			}
			continue
		}

		// Submodule hypothesis first, then the package itself:
		// `from pkg import name` may import a symbol rather than a
		// submodule, but the dependency on pkg is still real.
		candidate := name
		if base != "" {
			candidate = base + "." + name
		}
		if reg.Has(candidate) {
			resolved[candidate] = true
		} else if base != "" && reg.Has(base) {
			resolved[base] = true
		}
	}
}

// resolveBase computes the dotted name the imported names hang off: the
// importer's identity with `level` trailing segments removed, joined with
// the statement's own base. A level deeper than the importer's nesting
// resolves to nothing rather than failing the run.
func resolveBase(imp parser.RawImport, importer string) (string, bool) {
	if imp.Level == 0 {
		return imp.Module, true
	}

	parts := []string{}
	if importer != "" {
		parts = strings.Split(importer, ".")
	}
	if len(parts) < imp.Level {
		return "", false
	}
	anchor := parts[:len(parts)-imp.Level]

	if imp.Module == "" {
		return strings.Join(anchor, "."), true
	}
	return strings.Join(append(anchor, strings.Split(imp.Module, ".")...), "."), true
}
