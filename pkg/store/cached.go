package store

import (
	"context"
	"sync"

	"github.com/arjunvs/scmdiff/pkg/objects"
	"github.com/arjunvs/scmdiff/pkg/objects/tree"
)

// CachedFacade wraps a Facade with a content-addressed, concurrency-safe
// cache of trees. Trees are immutable once published under their hash, so a
// cache needs no invalidation; a two-sided diff routinely fetches the same
// shared subtree hash from both the left and right traversal, and this
// avoids refetching it twice.
type CachedFacade struct {
	inner Facade
	trees sync.Map // objects.ObjectHash -> *tree.Tree
}

// NewCachedFacade wraps inner with a tree cache.
func NewCachedFacade(inner Facade) *CachedFacade {
	return &CachedFacade{inner: inner}
}

func (c *CachedFacade) GetCommit(ctx context.Context, hash objects.ObjectHash) (CommitInfo, error) {
	return c.inner.GetCommit(ctx, hash)
}

func (c *CachedFacade) GetTree(ctx context.Context, hash objects.ObjectHash) (*tree.Tree, error) {
	if cached, ok := c.trees.Load(hash); ok {
		return cached.(*tree.Tree), nil
	}
	t, err := c.inner.GetTree(ctx, hash)
	if err != nil {
		return nil, err
	}
	c.trees.Store(hash, t)
	return t, nil
}

func (c *CachedFacade) GetBlobMetadata(ctx context.Context, hash objects.ObjectHash) (BlobMetadata, error) {
	return c.inner.GetBlobMetadata(ctx, hash)
}

func (c *CachedFacade) GetBlobContent(ctx context.Context, hash objects.ObjectHash) ([]byte, error) {
	return c.inner.GetBlobContent(ctx, hash)
}
