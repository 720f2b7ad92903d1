package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arjunvs/scmdiff/pkg/config"
	"github.com/arjunvs/scmdiff/pkg/objects"
	"github.com/arjunvs/scmdiff/pkg/objects/commit"
	"github.com/arjunvs/scmdiff/pkg/repository/ignore"
	"github.com/arjunvs/scmdiff/pkg/repository/refs"
	"github.com/arjunvs/scmdiff/pkg/repository/sourcerepo"
	"github.com/arjunvs/scmdiff/pkg/store"

	"github.com/arjunvs/scmdiff/pkg/diff"
)

// loadRepoConfig reads the full configuration hierarchy for repo and wraps
// it for typed access.
func loadRepoConfig(ctx context.Context, repo *sourcerepo.SourceRepository) (*config.TypedConfig, error) {
	manager := config.NewManager(repo.WorkingDirectory())
	if err := manager.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return config.NewTypedConfig(manager), nil
}

// readIgnoreFileIfPresent returns the contents of path, or nil if it does
// not exist. Any other error is returned.
func readIgnoreFileIfPresent(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return content, nil
}

// rootIgnoreStack builds the system/user layers of the ignore stack from the
// repository's configuration.
func rootIgnoreStack(typed *config.TypedConfig) (*ignore.Stack, error) {
	systemBytes, err := readIgnoreFileIfPresent(config.SystemIgnorePath())
	if err != nil {
		return nil, fmt.Errorf("failed to read system ignore file: %w", err)
	}
	userBytes, err := readIgnoreFileIfPresent(typed.ExcludesFile())
	if err != nil {
		return nil, fmt.Errorf("failed to read user ignore file: %w", err)
	}
	return ignore.RootStack(systemBytes, userBytes), nil
}

// buildDiffContext assembles a diff.Context and the facade it wraps for a
// comparison whose right side is rooted at rightCommit. Ignore rules are
// only ever consulted for entries added on the right side, so only the
// right commit's tree feeds the ignore-file loader.
func buildDiffContext(repo *sourcerepo.SourceRepository, typed *config.TypedConfig, rightCommit objects.ObjectHash) (*diff.Context, store.Facade, error) {
	facade := store.NewCachedFacade(store.NewFileFacade(repo.ObjectStore()))

	rightInfo, err := facade.GetCommit(context.Background(), rightCommit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve right commit: %w", err)
	}

	opts := []diff.Option{
		diff.WithListIgnored(typed.ListIgnored()),
		diff.WithIgnoreLoader(diff.NewTreeIgnoreLoader(facade, rightInfo.RootTreeHash)),
	}
	if names := typed.HiddenNames(); len(names) > 0 {
		opts = append(opts, diff.WithHiddenNames(names...))
	}

	return diff.NewContext(facade, opts...), facade, nil
}

// resolveCommitish resolves a branch name, "HEAD", or a raw hash string to
// an object hash via the repository's ref-resolution layer.
func resolveCommitish(repo *sourcerepo.SourceRepository, commitish string) (objects.ObjectHash, error) {
	if hash, err := objects.NewObjectHashFromString(commitish); err == nil {
		return hash, nil
	}

	refManager := refs.NewRefManager(repo)
	ref := refs.RefPath(commitish)
	if commitish == "HEAD" {
		ref = refs.RefHEAD
	} else if exists, _ := refManager.Exists(ref); !exists {
		if branchRef, err := refs.NewBranchRef(commitish); err == nil {
			if ok, _ := refManager.Exists(branchRef); ok {
				ref = branchRef
			}
		}
	}

	hash, err := refManager.ResolveToSHA(ref)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", commitish, err)
	}
	return hash, nil
}

// headParentCommitish resolves the single parent of HEAD's commit, used by
// `status` to diff against the last committed state.
func headParentCommitish(repo *sourcerepo.SourceRepository) (objects.ObjectHash, error) {
	headHash, err := resolveCommitish(repo, "HEAD")
	if err != nil {
		return "", err
	}

	obj, err := repo.ReadObject(headHash)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD commit: %w", err)
	}
	c, ok := obj.(*commit.Commit)
	if !ok {
		return "", fmt.Errorf("HEAD does not point at a commit")
	}
	if len(c.ParentSHAs) == 0 {
		return "", fmt.Errorf("HEAD has no parent to diff against")
	}
	return objects.NewObjectHashFromString(c.ParentSHAs[0])
}
