// Package diff implements the tree differ: a recursive, concurrency-aware
// comparison of two content-addressed trees that classifies every reachable
// path as added, modified, removed, or ignored, filtered through a
// hierarchical ignore-rule stack.
package diff

import "github.com/arjunvs/scmdiff/pkg/repository/scpath"

// Status classifies how a single path differs between the left and right
// side of a diff.
type Status int

const (
	// Added means the path exists on the right side only (and was not
	// suppressed by the ignore stack).
	Added Status = iota
	// Modified means the path exists on both sides with a different
	// (kind, contentHash) pair.
	Modified
	// Removed means the path existed on the left side and is absent on the
	// right. Ignore rules never suppress a Removed status.
	Removed
	// Ignored means the path exists on the right side only and matches the
	// ignore stack in effect at its directory.
	Ignored
)

// String renders the status the way it appears in ScmStatus output.
func (s Status) String() string {
	switch s {
	case Added:
		return "ADDED"
	case Modified:
		return "MODIFIED"
	case Removed:
		return "REMOVED"
	case Ignored:
		return "IGNORED"
	default:
		return "UNKNOWN"
	}
}

// ScmStatus is the accumulated result of one diff run: every classified
// path plus every path whose subtree failed to load.
type ScmStatus struct {
	Entries map[scpath.RelativePath]Status
	Errors  map[scpath.RelativePath]string
}

// NewScmStatus returns an empty, ready-to-populate status.
func NewScmStatus() *ScmStatus {
	return &ScmStatus{
		Entries: make(map[scpath.RelativePath]Status),
		Errors:  make(map[scpath.RelativePath]string),
	}
}
