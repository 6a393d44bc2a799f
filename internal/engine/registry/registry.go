package registry

import (
	"path/filepath"
	"sort"
	"strings"
)

// packageMarker is the file whose presence makes a directory importable.
// Such a file contributes its directory's identity, not a name of its own.
const packageMarker = "__init__.py"

// Registry maps dotted module identities to their source files. It is built
// once per run and read-only afterwards.
type Registry struct {
	root    string
	modules map[string]string // identity -> file path
}

// Build derives an identity for every file and indexes it. Files whose
// identity is empty (a package marker at the root) are skipped. When two
// files collide on identity the later one in the sorted file list wins.
func Build(root string, files []string) *Registry {
	r := &Registry{
		root:    root,
		modules: make(map[string]string, len(files)),
	}
	for _, path := range files {
		name := ModuleName(root, path)
		if name == "" {
			continue
		}
		r.modules[name] = path
	}
	return r
}

func (r *Registry) Root() string { return r.root }

func (r *Registry) Has(identity string) bool {
	_, ok := r.modules[identity]
	return ok
}

func (r *Registry) Lookup(identity string) (string, bool) {
	path, ok := r.modules[identity]
	return path, ok
}

func (r *Registry) Len() int { return len(r.modules) }

// Identities returns all registered identities in sorted order.
func (r *Registry) Identities() []string {
	out := make([]string, 0, len(r.modules))
	for name := range r.modules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ModuleName derives the dotted identity of a file relative to root.
// `pkg/sub/mod.py` becomes `pkg.sub.mod`; `pkg/__init__.py` becomes `pkg`;
// `__init__.py` at the root becomes the empty identity.
func ModuleName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return ""
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	last := parts[len(parts)-1]
	if last == packageMarker {
		parts = parts[:len(parts)-1]
		if len(parts) == 0 {
			return ""
		}
	} else {
		parts[len(parts)-1] = strings.TrimSuffix(last, sourceSuffix)
	}
	return strings.Join(parts, ".")
}

// Depth counts directory levels between root and the file, excluding the
// filename itself. A file directly under root has depth 0.
func Depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/")
}

// RelPath is the path of a file as reported in records and importer lists.
func RelPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
