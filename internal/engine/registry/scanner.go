package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"burrow/internal/core/errors"

	"github.com/gobwas/glob"
)

const sourceSuffix = ".py"

// CollectFiles enumerates Python source files beneath root, sorted by path.
// Symbolic links are not followed. Exclude patterns match the base name of
// a directory or file, the same contract the watcher uses.
func CollectFiles(root string, excludeDirs, excludeFiles []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "root not found"), errors.CtxPath, root)
	}
	if !info.IsDir() {
		return nil, errors.AddContext(errors.New(errors.CodeNotADirectory, "root is not a directory"), errors.CtxPath, root)
	}

	dirGlobs, err := compileGlobs(excludeDirs)
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compileGlobs(excludeFiles)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		base := filepath.Base(path)
		if d.IsDir() {
			for _, g := range dirGlobs {
				if g.Match(base) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if !strings.HasSuffix(base, sourceSuffix) {
			return nil
		}
		for _, g := range fileGlobs {
			if g.Match(base) {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		err = errors.Wrap(err, errors.CodeInternal, "walk source tree")
		err = errors.AddContext(err, errors.CtxPath, root)
		return nil, errors.AddContext(err, errors.CtxOperation, "collect")
	}

	sort.Strings(files)
	return files, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid exclude pattern %q", p))
		}
		globs = append(globs, g)
	}
	return globs, nil
}
