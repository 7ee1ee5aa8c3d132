// Package walker enumerates the files of a synced checkout.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
)

// gitDirName is the version-control metadata directory skipped during
// traversal, matched by exact directory name.
const gitDirName = ".git"

// Walk returns every file path under root, excluding the version-control
// metadata directory. Traversal is an iterative depth-first walk over an
// explicit stack of directories, so arbitrarily deep trees cannot exhaust
// the call stack. The returned order carries no meaning.
func Walk(root string) ([]string, error) {
	stack := []string{root}
	files := make([]string, 0)

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if entry.Name() == gitDirName {
					continue
				}
				stack = append(stack, path)
				continue
			}
			files = append(files, path)
		}
	}

	return files, nil
}
