package diff

import (
	"context"
	"fmt"

	"github.com/arjunvs/scmdiff/pkg/objects"
	"github.com/arjunvs/scmdiff/pkg/repository/ignore"
	"github.com/arjunvs/scmdiff/pkg/repository/scpath"
	"github.com/arjunvs/scmdiff/pkg/store"
)

// NewTreeIgnoreLoader builds a LoadIgnoreFile that resolves dir from rootHash
// on every call and reads the blob named ignore.IgnoreFileName directly out
// of that directory's tree, if present. rootHash is the right side's root
// tree: ignore rules are only ever consulted for right-side-only entries.
// Tests construct Context with their own loader when they need fixed
// content regardless of tree shape.
func NewTreeIgnoreLoader(facade store.Facade, rootHash objects.ObjectHash) LoadIgnoreFile {
	return func(ctx context.Context, dir scpath.RelativePath) ([]byte, error) {
		dirHash, err := resolveTreeHash(ctx, facade, rootHash, dir)
		if err != nil {
			return nil, err
		}

		t, err := facade.GetTree(ctx, dirHash)
		if err != nil {
			return nil, err
		}

		for _, entry := range t.Entries() {
			if entry.Name() != ignore.IgnoreFileName || !entry.IsFile() {
				continue
			}
			hash, err := objects.NewObjectHashFromString(entry.SHA())
			if err != nil {
				return nil, err
			}
			return facade.GetBlobContent(ctx, hash)
		}
		return nil, nil
	}
}

// resolveTreeHash walks dir's path components from rootHash, returning the
// hash of the tree object at that directory.
func resolveTreeHash(ctx context.Context, facade store.Facade, rootHash objects.ObjectHash, dir scpath.RelativePath) (objects.ObjectHash, error) {
	current := rootHash
	if dir == "" {
		return current, nil
	}

	for _, component := range dir.Components() {
		t, err := facade.GetTree(ctx, current)
		if err != nil {
			return "", err
		}

		found := false
		for _, entry := range t.Entries() {
			if entry.Name() != component || !entry.IsDirectory() {
				continue
			}
			hash, err := objects.NewObjectHashFromString(entry.SHA())
			if err != nil {
				return "", err
			}
			current = hash
			found = true
			break
		}
		if !found {
			return "", fmt.Errorf("directory %q not found under tree %s", dir, rootHash.Short())
		}
	}
	return current, nil
}
