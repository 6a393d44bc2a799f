package parser

import (
	"os"

	"burrow/internal/core/errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Parser owns the compiled-in Python grammar and turns one source file into
// its extracted import list. A syntax or read failure is reported for that
// file only; callers treat it as a diagnostic, not a run failure.
type Parser struct {
	language  *sitter.Language
	extractor *PythonExtractor
}

func NewParser() *Parser {
	return &Parser{
		language:  sitter.NewLanguage(tree_sitter_python.Language()),
		extractor: &PythonExtractor{},
	}
}

func (p *Parser) ParseFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeParseError, "read source file"), errors.CtxPath, path)
	}
	return p.Parse(path, content)
}

func (p *Parser) Parse(path string, content []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.language)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeParseError, "parse failed"), errors.CtxPath, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.AddContext(errors.New(errors.CodeParseError, "syntax error"), errors.CtxPath, path)
	}

	return p.extractor.Extract(root, content, path)
}
