package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arjunvs/scmdiff/pkg/repository/scpath"
	"github.com/arjunvs/scmdiff/pkg/repository/sourcerepo"
)

// findRepository finds the repository starting from the current directory.
func findRepository() (*sourcerepo.SourceRepository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := cwd
	for {
		sourceDir := filepath.Join(dir, ".source")
		if info, err := os.Stat(sourceDir); err == nil && info.IsDir() {
			repoPath, err := scpath.NewRepositoryPath(dir)
			if err != nil {
				return nil, fmt.Errorf("invalid repository path: %w", err)
			}
			return sourcerepo.Open(repoPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("not a scmdiff repository (or any parent up to mount point)")
		}
		dir = parent
	}
}
