package resolver

import (
	"sort"
	"strings"
	"testing"

	"burrow/internal/engine/parser"
	"burrow/internal/engine/registry"
)

// fakeRegistry builds a registry from identities alone; file paths are
// irrelevant to resolution.
func fakeRegistry(identities ...string) *registry.Registry {
	files := make([]string, 0, len(identities))
	for _, id := range identities {
		files = append(files, "/proj/"+strings.ReplaceAll(id, ".", "/")+".py")
	}
	return registry.Build("/proj", files)
}

func resolvedList(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestResolve_AbsoluteLongestPrefix(t *testing.T) {
	reg := fakeRegistry("pkg", "pkg.core")

	tests := []struct {
		module   string
		expected []string
	}{
		{"pkg.core.widgets", []string{"pkg.core"}},
		{"pkg.core", []string{"pkg.core"}},
		{"pkg.other", []string{"pkg"}},
		{"pkg", []string{"pkg"}},
		{"external.lib", nil},
	}

	for _, tt := range tests {
		imp := parser.RawImport{Kind: parser.ImportAbsolute, Module: tt.module}
		got := resolvedList(Resolve(imp, "main", reg))
		if !equalStrings(got, tt.expected) {
			t.Errorf("import %s: got %v, expected %v", tt.module, got, tt.expected)
		}
	}
}

func TestResolve_AbsoluteFromImport(t *testing.T) {
	reg := fakeRegistry("pkg", "pkg.sub")

	tests := []struct {
		name     string
		imp      parser.RawImport
		expected []string
	}{
		{
			"submodule wins",
			parser.RawImport{Kind: parser.ImportFrom, Module: "pkg", Names: []string{"sub"}},
			[]string{"pkg.sub"},
		},
		{
			"symbol falls back to package",
			parser.RawImport{Kind: parser.ImportFrom, Module: "pkg", Names: []string{"name"}},
			[]string{"pkg"},
		},
		{
			"unknown base resolves to nothing",
			parser.RawImport{Kind: parser.ImportFrom, Module: "elsewhere", Names: []string{"thing"}},
			nil,
		},
		{
			"several names dedupe onto the package",
			parser.RawImport{Kind: parser.ImportFrom, Module: "pkg", Names: []string{"a", "b", "sub"}},
			[]string{"pkg", "pkg.sub"},
		},
	}

	for _, tt := range tests {
		got := resolvedList(Resolve(tt.imp, "main", reg))
		if !equalStrings(got, tt.expected) {
			t.Errorf("%s: got %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestResolve_RelativeImports(t *testing.T) {
	reg := fakeRegistry("services.core", "services.core.engine", "services.api.handler", "config")

	tests := []struct {
		name     string
		importer string
		imp      parser.RawImport
		expected []string
	}{
		{
			"sibling package submodule",
			"services.api.handler",
			parser.RawImport{Kind: parser.ImportFrom, Level: 2, Module: "core", Names: []string{"engine"}},
			[]string{"services.core.engine"},
		},
		{
			"unknown sibling name falls back to parent package",
			"services.core.engine",
			parser.RawImport{Kind: parser.ImportFrom, Level: 1, Names: []string{"helpers"}},
			[]string{"services.core"},
		},
		{
			"name falls back to base package",
			"services.api.handler",
			parser.RawImport{Kind: parser.ImportFrom, Level: 2, Module: "core", Names: []string{"some_symbol"}},
			[]string{"services.core"},
		},
		{
			"two levels up to top-level module",
			"services.api.handler",
			parser.RawImport{Kind: parser.ImportFrom, Level: 3, Names: []string{"config"}},
			[]string{"config"},
		},
		{
			"underflow resolves to nothing",
			"app",
			parser.RawImport{Kind: parser.ImportFrom, Level: 3, Names: []string{"x"}},
			nil,
		},
	}

	for _, tt := range tests {
		got := resolvedList(Resolve(tt.imp, tt.importer, reg))
		if !equalStrings(got, tt.expected) {
			t.Errorf("%s: got %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestResolve_Wildcard(t *testing.T) {
	reg := fakeRegistry("pkg", "pkg.util")

	tests := []struct {
		name     string
		importer string
		imp      parser.RawImport
		expected []string
	}{
		{
			"wildcard of registered package",
			"pkg.mod",
			parser.RawImport{Kind: parser.ImportFrom, Level: 1, Wildcard: true},
			[]string{"pkg"},
		},
		{
			"wildcard of registered sibling",
			"pkg.mod",
			parser.RawImport{Kind: parser.ImportFrom, Level: 1, Module: "util", Wildcard: true},
			[]string{"pkg.util"},
		},
		{
			"wildcard of unregistered anchor",
			"standalone",
			parser.RawImport{Kind: parser.ImportFrom, Level: 1, Wildcard: true},
			nil,
		},
		{
			"wildcard marker in names behaves like wildcard",
			"pkg.mod",
			parser.RawImport{Kind: parser.ImportFrom, Level: 1, Names: []string{"*"}},
			[]string{"pkg"},
		},
	}

	for _, tt := range tests {
		got := resolvedList(Resolve(tt.imp, tt.importer, reg))
		if !equalStrings(got, tt.expected) {
			t.Errorf("%s: got %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestResolve_SelfReferenceIsNotFiltered(t *testing.T) {
	// The orchestrator owns self-edge exclusion; the resolver reports the
	// match as-is.
	reg := fakeRegistry("selfmod")
	imp := parser.RawImport{Kind: parser.ImportAbsolute, Module: "selfmod"}

	got := resolvedList(Resolve(imp, "selfmod", reg))
	if !equalStrings(got, []string{"selfmod"}) {
		t.Errorf("got %v", got)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
