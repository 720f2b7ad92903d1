package diff

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/arjunvs/scmdiff/pkg/common/logger"
	"github.com/arjunvs/scmdiff/pkg/objects"
	"github.com/arjunvs/scmdiff/pkg/objects/tree"
	"github.com/arjunvs/scmdiff/pkg/repository/ignore"
	"github.com/arjunvs/scmdiff/pkg/repository/scpath"
	"github.com/arjunvs/scmdiff/pkg/store"
)

// DiffCommits resolves two commits to their root trees and runs a full
// comparison, returning the accumulated status. This is the entry point
// ordinary callers use; DiffTrees/DiffAddedTree/DiffRemovedTree are exposed
// below for callers (and tests) that already hold tree hashes.
func DiffCommits(ctx context.Context, c *Context, leftCommit, rightCommit objects.ObjectHash, rootStack *ignore.Stack) (*ScmStatus, error) {
	leftInfo, err := c.Store.GetCommit(ctx, leftCommit)
	if err != nil {
		return nil, storeErr("diff_commits.get_left_commit", err)
	}
	rightInfo, err := c.Store.GetCommit(ctx, rightCommit)
	if err != nil {
		return nil, storeErr("diff_commits.get_right_commit", err)
	}

	if err := DiffTrees(ctx, c, "", leftInfo.RootTreeHash, rightInfo.RootTreeHash, rootStack, false); err != nil {
		return nil, err
	}

	acc, ok := c.Callback.(*AccumulatingCallback)
	if !ok {
		return nil, nil
	}
	return acc.Result(), nil
}

// DiffTrees compares the trees at hashL and hashR, both rooted at path,
// under the given ignore stack. parentIgnored is true when an ancestor
// directory was already classified Excluded, forcing every added-only
// descendant to Ignored regardless of its own rules.
func DiffTrees(ctx context.Context, c *Context, path scpath.RelativePath, hashL, hashR objects.ObjectHash, stack *ignore.Stack, parentIgnored bool) error {
	if hashL.Equal(hashR) {
		return nil
	}

	var left, right *tree.Tree
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := c.Store.GetTree(gctx, hashL)
		if err != nil {
			recordSubtreeError(c, path, "diff_trees.get_left_tree", err)
			return nil
		}
		left = t
		return nil
	})
	g.Go(func() error {
		t, err := c.Store.GetTree(gctx, hashR)
		if err != nil {
			recordSubtreeError(c, path, "diff_trees.get_right_tree", err)
			return nil
		}
		right = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if left == nil || right == nil {
		return nil
	}

	rightStack := c.pushScope(ctx, c.LoadIgnore, path, stack)

	logger.Default.Debug("diffing tree", "path", path.String(), "left", hashL.Short(), "right", hashR.Short())

	leftEntries := left.Entries()
	rightEntries := right.Entries()

	group, gctx2 := errgroup.WithContext(ctx)
	i, j := 0, 0
	for i < len(leftEntries) || j < len(rightEntries) {
		switch {
		case j >= len(rightEntries) || (i < len(leftEntries) && leftEntries[i].Name() < rightEntries[j].Name()):
			entry := leftEntries[i]
			group.Go(diffRemovedEntryTask(gctx2, c, path, entry))
			i++
		case i >= len(leftEntries) || rightEntries[j].Name() < leftEntries[i].Name():
			entry := rightEntries[j]
			group.Go(diffAddedEntryTask(gctx2, c, path, entry, rightStack, parentIgnored))
			j++
		default:
			le, re := leftEntries[i], rightEntries[j]
			group.Go(diffMatchedEntryTask(gctx2, c, path, le, re, rightStack, parentIgnored))
			i++
			j++
		}
	}

	return group.Wait()
}

// recordSubtreeError logs a Warn with the failing path and hands the error
// to the callback. A subtree load failure never aborts its siblings.
func recordSubtreeError(c *Context, path scpath.RelativePath, op string, err error) {
	wrapped := storeErr(op, err)
	logger.Default.Warn("subtree error", "path", path.String(), "op", op, "err", wrapped.Error())
	c.Callback.RecordError(path, wrapped.Error())
}

func (c *Context) pushScope(ctx context.Context, loader LoadIgnoreFile, dir scpath.RelativePath, stack *ignore.Stack) *ignore.Stack {
	scope := c.ignoreScope(ctx, loader, dir)
	if scope == nil {
		return stack
	}
	return stack.Push(scope)
}

func diffRemovedEntryTask(ctx context.Context, c *Context, base scpath.RelativePath, entry *tree.TreeEntry) func() error {
	return func() error {
		p := childPath(base, entry.Name())
		if c.isHidden(entry.Name()) {
			return nil
		}
		hash, err := objects.NewObjectHashFromString(entry.SHA())
		if err != nil {
			recordSubtreeError(c, p, "diff_removed.invalid_hash", err)
			return nil
		}
		if entry.IsDirectory() {
			return DiffRemovedTree(ctx, c, p, hash)
		}
		c.Callback.RecordStatus(p, Removed)
		return nil
	}
}

func diffAddedEntryTask(ctx context.Context, c *Context, base scpath.RelativePath, entry *tree.TreeEntry, stack *ignore.Stack, parentIgnored bool) func() error {
	return func() error {
		p := childPath(base, entry.Name())
		if c.isHidden(entry.Name()) {
			return nil
		}
		hash, err := objects.NewObjectHashFromString(entry.SHA())
		if err != nil {
			recordSubtreeError(c, p, "diff_added.invalid_hash", err)
			return nil
		}
		if entry.IsDirectory() {
			decision := stack.EvaluateWithAncestor(p.String(), true, parentIgnored)
			return DiffAddedTree(ctx, c, p, hash, stack, decision == ignore.Excluded)
		}
		decision := stack.EvaluateWithAncestor(p.String(), false, parentIgnored)
		emitAddedLeaf(c, p, decision)
		return nil
	}
}

func diffMatchedEntryTask(ctx context.Context, c *Context, base scpath.RelativePath, le, re *tree.TreeEntry, rightStack *ignore.Stack, parentIgnored bool) func() error {
	return func() error {
		p := childPath(base, le.Name())
		if c.isHidden(le.Name()) {
			return nil
		}

		leftHash, err := objects.NewObjectHashFromString(le.SHA())
		if err != nil {
			recordSubtreeError(c, p, "diff_matched.invalid_left_hash", err)
			return nil
		}
		rightHash, err := objects.NewObjectHashFromString(re.SHA())
		if err != nil {
			recordSubtreeError(c, p, "diff_matched.invalid_right_hash", err)
			return nil
		}

		leftType, _ := le.EntryType()
		rightType, _ := re.EntryType()

		if le.IsDirectory() != re.IsDirectory() {
			// Tree/non-tree swap: treat as remove-left, add-right independently.
			var g errgroup.Group
			g.Go(func() error {
				if le.IsDirectory() {
					return DiffRemovedTree(ctx, c, p, leftHash)
				}
				c.Callback.RecordStatus(p, Removed)
				return nil
			})
			g.Go(func() error {
				if re.IsDirectory() {
					decision := rightStack.EvaluateWithAncestor(p.String(), true, parentIgnored)
					return DiffAddedTree(ctx, c, p, rightHash, rightStack, decision == ignore.Excluded)
				}
				decision := rightStack.EvaluateWithAncestor(p.String(), false, parentIgnored)
				emitAddedLeaf(c, p, decision)
				return nil
			})
			return g.Wait()
		}

		if le.IsDirectory() {
			if leftHash.Equal(rightHash) {
				return nil
			}
			return DiffTrees(ctx, c, p, leftHash, rightHash, rightStack, parentIgnored)
		}

		// Both sides are non-tree entries (regular file, executable, symlink,
		// submodule). A mode-only change, e.g. RegularFile -> Symlink with the
		// same bytes, is a content change: compare on (kind, hash), not kind
		// alone. The hash comparison goes through GetBlobMetadata rather than
		// the tree entries' raw SHA strings so a blob missing from the store
		// surfaces as its own error entry instead of a silent false negative.
		if leftHash.Equal(rightHash) {
			if leftType != rightType {
				c.Callback.RecordStatus(p, Modified)
			}
			return nil
		}

		var leftMeta, rightMeta store.BlobMetadata
		var metaErr errgroup.Group
		metaErr.Go(func() error {
			meta, err := c.Store.GetBlobMetadata(ctx, leftHash)
			if err != nil {
				recordSubtreeError(c, p, "diff_matched.get_left_blob_metadata", err)
				return err
			}
			leftMeta = meta
			return nil
		})
		metaErr.Go(func() error {
			meta, err := c.Store.GetBlobMetadata(ctx, rightHash)
			if err != nil {
				recordSubtreeError(c, p, "diff_matched.get_right_blob_metadata", err)
				return err
			}
			rightMeta = meta
			return nil
		})
		if err := metaErr.Wait(); err != nil {
			return nil
		}

		if leftType != rightType || !leftMeta.Hash.Equal(rightMeta.Hash) {
			c.Callback.RecordStatus(p, Modified)
		}
		return nil
	}
}

// DiffAddedTree classifies every entry reachable from hashR as Added, unless
// it or an ancestor matches the ignore stack, in which case it is Ignored
// (and suppressed entirely when ListIgnored is false).
func DiffAddedTree(ctx context.Context, c *Context, path scpath.RelativePath, hashR objects.ObjectHash, stack *ignore.Stack, parentIgnored bool) error {
	t, err := c.Store.GetTree(ctx, hashR)
	if err != nil {
		recordSubtreeError(c, path, "diff_added_tree.get_tree", err)
		return nil
	}

	stack = c.pushScope(ctx, c.LoadIgnore, path, stack)

	group, gctx := errgroup.WithContext(ctx)
	for _, entry := range t.Entries() {
		entry := entry
		group.Go(diffAddedEntryTask(gctx, c, path, entry, stack, parentIgnored))
	}
	return group.Wait()
}

// DiffRemovedTree classifies every entry reachable from hashL as Removed.
// Ignore rules are never consulted: a tracked-then-deleted path is always
// reported.
func DiffRemovedTree(ctx context.Context, c *Context, path scpath.RelativePath, hashL objects.ObjectHash) error {
	t, err := c.Store.GetTree(ctx, hashL)
	if err != nil {
		recordSubtreeError(c, path, "diff_removed_tree.get_tree", err)
		return nil
	}

	group, gctx := errgroup.WithContext(ctx)
	for _, entry := range t.Entries() {
		entry := entry
		group.Go(diffRemovedEntryTask(gctx, c, path, entry))
	}
	return group.Wait()
}

func emitAddedLeaf(c *Context, path scpath.RelativePath, decision ignore.Decision) {
	if decision == ignore.Excluded {
		if c.ListIgnored {
			c.Callback.RecordStatus(path, Ignored)
		}
		return
	}
	c.Callback.RecordStatus(path, Added)
}

func childPath(base scpath.RelativePath, name string) scpath.RelativePath {
	if base == "" {
		return scpath.RelativePath(name)
	}
	return base.Join(name)
}
