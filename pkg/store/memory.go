package store

import (
	"context"
	"sync"
	"time"

	scerr "github.com/arjunvs/scmdiff/pkg/common/err"
	"github.com/arjunvs/scmdiff/pkg/objects"
	"github.com/arjunvs/scmdiff/pkg/objects/blob"
	"github.com/arjunvs/scmdiff/pkg/objects/commit"
	"github.com/arjunvs/scmdiff/pkg/objects/tree"
)

// MemoryFacade is an in-process Facade backed by plain maps, grounded on the
// same fixture-building need EdenFS's FakeBackingStore fills in its diff
// tests: build a tree/commit graph by hand with no disk I/O, then run the
// diff engine against it. Safe for concurrent reads; PutX calls are meant to
// run single-threaded during fixture setup.
type MemoryFacade struct {
	mu      sync.RWMutex
	commits map[objects.ObjectHash]*commit.Commit
	trees   map[objects.ObjectHash]*tree.Tree
	blobs   map[objects.ObjectHash]*blob.Blob
}

// NewMemoryFacade returns an empty in-memory facade.
func NewMemoryFacade() *MemoryFacade {
	return &MemoryFacade{
		commits: make(map[objects.ObjectHash]*commit.Commit),
		trees:   make(map[objects.ObjectHash]*tree.Tree),
		blobs:   make(map[objects.ObjectHash]*blob.Blob),
	}
}

// PutTree registers a tree and returns its hash.
func (m *MemoryFacade) PutTree(t *tree.Tree) objects.ObjectHash {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, _ := t.Hash()
	hash := objects.NewObjectHashFromRaw(raw)
	m.trees[hash] = t
	return hash
}

// PutBlob registers a blob built from raw content and returns its hash.
func (m *MemoryFacade) PutBlob(content []byte) objects.ObjectHash {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := blob.NewBlob(content)
	hash, _ := b.Hash()
	m.blobs[hash] = b
	return hash
}

// PutCommit registers a commit pointing at rootTreeHash and returns its hash.
func (m *MemoryFacade) PutCommit(rootTreeHash objects.ObjectHash) objects.ObjectHash {
	m.mu.Lock()
	defer m.mu.Unlock()
	person, err := commit.NewCommitPerson("fixture", "fixture@example.com", time.Unix(0, 0))
	if err != nil {
		panic(err)
	}
	c, err := commit.NewCommitBuilder().
		Tree(rootTreeHash.String()).
		Author(person).
		Committer(person).
		Message("fixture").
		Build()
	if err != nil {
		panic(err)
	}
	raw, _ := c.Hash()
	hash := objects.NewObjectHashFromRaw(raw)
	m.commits[hash] = c
	return hash
}

func (m *MemoryFacade) GetCommit(_ context.Context, hash objects.ObjectHash) (CommitInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.commits[hash]
	if !ok {
		return CommitInfo{}, scerr.New(pkgName, CodeNotFound, "get_commit", "commit not found", nil).WithContext("hash", hash.Short())
	}
	treeHash, err := objects.NewObjectHashFromString(c.TreeSHA)
	if err != nil {
		return CommitInfo{}, scerr.WrapWithCode(err, pkgName, CodeStoreError, "get_commit")
	}
	return CommitInfo{RootTreeHash: treeHash}, nil
}

func (m *MemoryFacade) GetTree(_ context.Context, hash objects.ObjectHash) (*tree.Tree, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trees[hash]
	if !ok {
		return nil, scerr.New(pkgName, CodeNotFound, "get_tree", "tree not found", nil).WithContext("hash", hash.Short())
	}
	return t, nil
}

func (m *MemoryFacade) GetBlobMetadata(_ context.Context, hash objects.ObjectHash) (BlobMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[hash]
	if !ok {
		return BlobMetadata{}, scerr.New(pkgName, CodeNotFound, "get_blob_metadata", "blob not found", nil).WithContext("hash", hash.Short())
	}
	size, _ := b.Size()
	return BlobMetadata{Hash: hash, Size: int64(size)}, nil
}

func (m *MemoryFacade) GetBlobContent(_ context.Context, hash objects.ObjectHash) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[hash]
	if !ok {
		return nil, scerr.New(pkgName, CodeNotFound, "get_blob_content", "blob not found", nil).WithContext("hash", hash.Short())
	}
	content, err := b.Content()
	if err != nil {
		return nil, scerr.WrapWithCode(err, pkgName, CodeStoreError, "get_blob_content")
	}
	return content.Bytes(), nil
}
