package parser

import (
	"time"
)

type File struct {
	Path     string
	Imports  []RawImport
	ParsedAt time.Time
}

// ImportKind distinguishes the two statement shapes the resolver handles.
type ImportKind int

const (
	// ImportAbsolute is `import a.b.c` (possibly aliased).
	ImportAbsolute ImportKind = iota
	// ImportFrom is `from [dots][base] import name, ...` including the
	// wildcard form. Level 0 means the base is an absolute dotted name.
	ImportFrom
)

type RawImport struct {
	Kind     ImportKind
	Module   string   // Dotted name: full target for absolute, base for from-imports
	Level    int      // Count of leading dots on a relative from-import
	Names    []string // Imported names for from-imports
	Wildcard bool     // `from ... import *`
	Alias    string   // Optional alias on an absolute import
	Location Location
}

type Location struct {
	File   string
	Line   int
	Column int
}
