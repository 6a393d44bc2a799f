package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func recordFor(t *testing.T, result *Result, module string) Record {
	t.Helper()
	for _, rec := range result.Records {
		if rec.Module == module {
			return rec
		}
	}
	t.Fatalf("no record for %s in %v", module, result.Records)
	return Record{}
}

func TestAnalyze_EndToEnd(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"services/__init__.py":      "",
		"services/core/__init__.py": "",
		"services/core/engine.py":   "",
		"services/api/__init__.py":  "",
		"services/api/handler.py":   "from ..core import engine\n",
		"tests/test_core.py":        "import services.core.engine\n",
	})

	result, err := New(nil, nil).Analyze(context.Background(), root)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)

	engine := recordFor(t, result, "services.core.engine")
	assert.Equal(t, 2, engine.Depth)
	assert.Equal(t, 2, engine.ImportCount)
	assert.Equal(t, 4, engine.Score)
	assert.Equal(t, []string{"services/api/handler.py", "tests/test_core.py"}, engine.Importers)
}

func TestAnalyze_DeadModule(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"pkg/__init__.py": "",
		"main.py":         "import os\n",
	})

	result, err := New(nil, nil).Analyze(context.Background(), root)
	require.NoError(t, err)

	pkg := recordFor(t, result, "pkg")
	assert.Equal(t, 0, pkg.ImportCount)
	assert.Empty(t, pkg.Importers)
	assert.Equal(t, 0, pkg.Score)
}

func TestAnalyze_SelfImportExcluded(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"selfmod.py": "import selfmod\n",
	})

	result, err := New(nil, nil).Analyze(context.Background(), root)
	require.NoError(t, err)

	rec := recordFor(t, result, "selfmod")
	assert.Equal(t, 0, rec.ImportCount)
	assert.Empty(t, rec.Importers)
}

func TestAnalyze_ParseFailureIsLocal(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"broken.py": "def broken(:\n",
		"target.py": "",
		"user.py":   "import target\n",
	})

	result, err := New(nil, nil).Analyze(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "broken.py", result.Diagnostics[0].Path)
	// The diagnostic names the module whose file failed to parse.
	assert.Contains(t, result.Diagnostics[0].Message, "module:broken")

	// The broken file still appears as a module, with whatever imports
	// other files contributed to it.
	broken := recordFor(t, result, "broken")
	assert.Equal(t, 0, broken.ImportCount)

	target := recordFor(t, result, "target")
	assert.Equal(t, []string{"user.py"}, target.Importers)
}

func TestAnalyze_Idempotent(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"pkg/__init__.py": "",
		"pkg/mod.py":      "",
		"a.py":            "from pkg import mod\n",
		"b.py":            "import pkg.mod\nimport pkg.mod\n",
	})

	analyzer := New(nil, nil)
	first, err := analyzer.Analyze(context.Background(), root)
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)

	// Duplicate statements in one file dedupe to a single edge.
	mod := recordFor(t, first, "pkg.mod")
	assert.Equal(t, []string{"a.py", "b.py"}, mod.Importers)
}

func TestAnalyze_InvalidRoot(t *testing.T) {
	_, err := New(nil, nil).Analyze(context.Background(), "/definitely/not/a/dir")
	require.Error(t, err)
}
