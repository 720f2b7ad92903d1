package store

import (
	"context"
	"fmt"

	scerr "github.com/arjunvs/scmdiff/pkg/common/err"
	"github.com/arjunvs/scmdiff/pkg/objects"
	"github.com/arjunvs/scmdiff/pkg/objects/blob"
	"github.com/arjunvs/scmdiff/pkg/objects/commit"
	"github.com/arjunvs/scmdiff/pkg/objects/tree"
)

const pkgName = "store"

const (
	// CodeNotFound mirrors err.CodeNotFound for store lookups.
	CodeNotFound = scerr.CodeNotFound
	// CodeStoreError marks a backend failure other than not-found.
	CodeStoreError = "STORE_ERROR"
)

// IsNotFound reports whether err is a Facade lookup miss.
func IsNotFound(err error) bool {
	return scerr.IsCode(err, CodeNotFound)
}

// BlobMetadata is the information the diff engine needs about a blob without
// reading its full contents: enough to decide content equality.
type BlobMetadata struct {
	Hash objects.ObjectHash
	Size int64
}

// CommitInfo is the subset of a commit the diff engine consumes.
type CommitInfo struct {
	RootTreeHash objects.ObjectHash
}

// Facade is the object-store contract consumed by the diff engine: three
// key-addressed lookups, each safe to call concurrently and each taking a
// context for cancellation. It deliberately knows nothing about working
// copies, refs, or history traversal.
type Facade interface {
	GetCommit(ctx context.Context, hash objects.ObjectHash) (CommitInfo, error)
	GetTree(ctx context.Context, hash objects.ObjectHash) (*tree.Tree, error)
	// GetBlobMetadata is what the diff engine calls to confirm content
	// equality once two matched entries' tree-embedded hashes disagree; it
	// never needs the full bytes to do so.
	GetBlobMetadata(ctx context.Context, hash objects.ObjectHash) (BlobMetadata, error)
	// GetBlobContent reads full blob bytes. Only ignore-file loading needs
	// this; the diff engine's content-equality check never reads blob bytes.
	GetBlobContent(ctx context.Context, hash objects.ObjectHash) ([]byte, error)
}

// FileFacade adapts the synchronous, on-disk FileObjectStore to the Facade
// contract. It adds no caching of its own; wrap it with CachedFacade for
// that.
type FileFacade struct {
	store ObjectStore
}

// NewFileFacade wraps an already-initialized ObjectStore.
func NewFileFacade(store ObjectStore) *FileFacade {
	return &FileFacade{store: store}
}

func (f *FileFacade) GetCommit(_ context.Context, hash objects.ObjectHash) (CommitInfo, error) {
	obj, err := f.readObject(hash)
	if err != nil {
		return CommitInfo{}, err
	}
	c, ok := obj.(*commit.Commit)
	if !ok {
		return CommitInfo{}, scerr.New(pkgName, CodeStoreError, "get_commit", fmt.Sprintf("object %s is not a commit", hash.Short()), nil)
	}
	treeHash, err := objects.NewObjectHashFromString(c.TreeSHA)
	if err != nil {
		return CommitInfo{}, scerr.WrapWithCode(err, pkgName, CodeStoreError, "get_commit")
	}
	return CommitInfo{RootTreeHash: treeHash}, nil
}

func (f *FileFacade) GetTree(_ context.Context, hash objects.ObjectHash) (*tree.Tree, error) {
	obj, err := f.readObject(hash)
	if err != nil {
		return nil, err
	}
	t, ok := obj.(*tree.Tree)
	if !ok {
		return nil, scerr.New(pkgName, CodeStoreError, "get_tree", fmt.Sprintf("object %s is not a tree", hash.Short()), nil)
	}
	return t, nil
}

func (f *FileFacade) GetBlobMetadata(_ context.Context, hash objects.ObjectHash) (BlobMetadata, error) {
	obj, err := f.readObject(hash)
	if err != nil {
		return BlobMetadata{}, err
	}
	b, ok := obj.(*blob.Blob)
	if !ok {
		return BlobMetadata{}, scerr.New(pkgName, CodeStoreError, "get_blob_metadata", fmt.Sprintf("object %s is not a blob", hash.Short()), nil)
	}
	size, err := b.Size()
	if err != nil {
		return BlobMetadata{}, scerr.WrapWithCode(err, pkgName, CodeStoreError, "get_blob_metadata")
	}
	return BlobMetadata{Hash: hash, Size: int64(size)}, nil
}

func (f *FileFacade) GetBlobContent(_ context.Context, hash objects.ObjectHash) ([]byte, error) {
	obj, err := f.readObject(hash)
	if err != nil {
		return nil, err
	}
	b, ok := obj.(*blob.Blob)
	if !ok {
		return nil, scerr.New(pkgName, CodeStoreError, "get_blob_content", fmt.Sprintf("object %s is not a blob", hash.Short()), nil)
	}
	content, err := b.Content()
	if err != nil {
		return nil, scerr.WrapWithCode(err, pkgName, CodeStoreError, "get_blob_content")
	}
	return content.Bytes(), nil
}

func (f *FileFacade) readObject(hash objects.ObjectHash) (objects.BaseObject, error) {
	obj, err := f.store.ReadObject(hash)
	if err != nil {
		return nil, scerr.WrapWithCode(err, pkgName, CodeStoreError, "read_object")
	}
	if obj == nil {
		return nil, scerr.New(pkgName, CodeNotFound, "read_object", fmt.Sprintf("object %s not found", hash.Short()), nil)
	}
	return obj, nil
}
