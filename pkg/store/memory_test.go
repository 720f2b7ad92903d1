package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunvs/scmdiff/pkg/objects"
	"github.com/arjunvs/scmdiff/pkg/objects/tree"
)

func TestMemoryFacade_PutAndGetTree(t *testing.T) {
	m := NewMemoryFacade()
	blobHash := m.PutBlob([]byte("hello"))
	entry, err := tree.NewTreeEntry(string(tree.EntryTypeRegularFile), "a.txt", blobHash.String())
	require.NoError(t, err)

	treeHash := m.PutTree(tree.NewTree([]*tree.TreeEntry{entry}))

	got, err := m.GetTree(context.Background(), treeHash)
	require.NoError(t, err)
	assert.Len(t, got.Entries(), 1)
	assert.Equal(t, "a.txt", got.Entries()[0].Name())
}

func TestMemoryFacade_PutAndGetCommit(t *testing.T) {
	m := NewMemoryFacade()
	treeHash := m.PutTree(tree.NewTree(nil))
	commitHash := m.PutCommit(treeHash)

	info, err := m.GetCommit(context.Background(), commitHash)
	require.NoError(t, err)
	assert.Equal(t, treeHash, info.RootTreeHash)
}

func TestMemoryFacade_GetBlobContent(t *testing.T) {
	m := NewMemoryFacade()
	hash := m.PutBlob([]byte("payload"))

	content, err := m.GetBlobContent(context.Background(), hash)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)

	meta, err := m.GetBlobMetadata(context.Background(), hash)
	require.NoError(t, err)
	assert.Equal(t, int64(len("payload")), meta.Size)
}

func TestMemoryFacade_MissingObjectsAreNotFound(t *testing.T) {
	m := NewMemoryFacade()
	missing, err := objects.NewObjectHashFromString("0000000000000000000000000000000000000001")
	require.NoError(t, err)

	_, err = m.GetTree(context.Background(), missing)
	assert.True(t, IsNotFound(err))

	_, err = m.GetCommit(context.Background(), missing)
	assert.True(t, IsNotFound(err))

	_, err = m.GetBlobContent(context.Background(), missing)
	assert.True(t, IsNotFound(err))
}
