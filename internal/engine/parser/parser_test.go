package parser

import (
	stderrors "errors"
	"reflect"
	"testing"

	"burrow/internal/core/errors"
)

func parseSource(t *testing.T, source string) *File {
	t.Helper()
	p := NewParser()
	file, err := p.Parse("test.py", []byte(source))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return file
}

func TestExtract_AbsoluteImports(t *testing.T) {
	file := parseSource(t, "import os\nimport services.core.engine\nimport numpy as np\n")

	if len(file.Imports) != 3 {
		t.Fatalf("expected 3 imports, got %d", len(file.Imports))
	}

	tests := []struct {
		module string
		alias  string
	}{
		{"os", ""},
		{"services.core.engine", ""},
		{"numpy", "np"},
	}
	for i, tt := range tests {
		imp := file.Imports[i]
		if imp.Kind != ImportAbsolute {
			t.Errorf("import %d: expected absolute kind", i)
		}
		if imp.Module != tt.module || imp.Alias != tt.alias {
			t.Errorf("import %d: got (%s, %s), expected (%s, %s)", i, imp.Module, imp.Alias, tt.module, tt.alias)
		}
	}
}

func TestExtract_MultipleTargets(t *testing.T) {
	file := parseSource(t, "import a.b, c\n")

	if len(file.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(file.Imports))
	}
	if file.Imports[0].Module != "a.b" || file.Imports[1].Module != "c" {
		t.Errorf("got %s, %s", file.Imports[0].Module, file.Imports[1].Module)
	}
}

func TestExtract_FromImports(t *testing.T) {
	tests := []struct {
		source   string
		module   string
		level    int
		names    []string
		wildcard bool
	}{
		{"from pkg.core import widgets\n", "pkg.core", 0, []string{"widgets"}, false},
		{"from pkg import a, b\n", "pkg", 0, []string{"a", "b"}, false},
		{"from .sibling import thing\n", "sibling", 1, []string{"thing"}, false},
		{"from ..core import engine\n", "core", 2, []string{"engine"}, false},
		{"from ... import top\n", "", 3, []string{"top"}, false},
		{"from . import helper\n", "", 1, []string{"helper"}, false},
		{"from .util import *\n", "util", 1, nil, true},
		{"from pkg import name as alias\n", "pkg", 0, []string{"name"}, false},
	}

	for _, tt := range tests {
		file := parseSource(t, tt.source)
		if len(file.Imports) != 1 {
			t.Fatalf("%q: expected 1 import, got %d", tt.source, len(file.Imports))
		}
		imp := file.Imports[0]
		if imp.Kind != ImportFrom {
			t.Errorf("%q: expected from-import kind", tt.source)
		}
		if imp.Module != tt.module {
			t.Errorf("%q: module = %q, expected %q", tt.source, imp.Module, tt.module)
		}
		if imp.Level != tt.level {
			t.Errorf("%q: level = %d, expected %d", tt.source, imp.Level, tt.level)
		}
		if !reflect.DeepEqual(imp.Names, tt.names) {
			t.Errorf("%q: names = %v, expected %v", tt.source, imp.Names, tt.names)
		}
		if imp.Wildcard != tt.wildcard {
			t.Errorf("%q: wildcard = %v, expected %v", tt.source, imp.Wildcard, tt.wildcard)
		}
	}
}

func TestExtract_NestedImports(t *testing.T) {
	source := `
def handler():
    import services.core.engine
    if True:
        from ..core import engine
`
	file := parseSource(t, source)

	if len(file.Imports) != 2 {
		t.Fatalf("expected 2 imports from nested scopes, got %d", len(file.Imports))
	}
}

func TestParse_SyntaxError(t *testing.T) {
	p := NewParser()
	_, err := p.Parse("broken.py", []byte("def broken(:\n"))
	if err == nil {
		t.Fatal("expected error for invalid syntax")
	}
	if !errors.IsCode(err, errors.CodeParseError) {
		t.Errorf("expected PARSE_ERROR, got %v", err)
	}

	var de *errors.DomainError
	if !stderrors.As(err, &de) || de.Context[errors.CtxPath] != "broken.py" {
		t.Errorf("expected path context on error, got %v", err)
	}
}

func TestParseFile_Missing(t *testing.T) {
	p := NewParser()
	_, err := p.ParseFile("/definitely/not/here.py")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.IsCode(err, errors.CodeParseError) {
		t.Errorf("expected PARSE_ERROR, got %v", err)
	}

	var de *errors.DomainError
	if !stderrors.As(err, &de) || de.Context[errors.CtxPath] != "/definitely/not/here.py" {
		t.Errorf("expected path context on error, got %v", err)
	}
}
