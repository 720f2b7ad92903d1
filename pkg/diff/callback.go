package diff

import (
	"sync"

	"github.com/arjunvs/scmdiff/pkg/repository/scpath"
)

// Callback is the sink the diff engine reports results to. Implementations
// must be safe for concurrent use: the engine calls these methods from many
// goroutines fanned out across sibling subtrees, with no ordering guarantee
// between them.
type Callback interface {
	RecordStatus(path scpath.RelativePath, status Status)
	RecordError(path scpath.RelativePath, message string)
}

// AccumulatingCallback is the default Callback: it collects every status and
// error into an ScmStatus behind a single mutex.
type AccumulatingCallback struct {
	mu     sync.Mutex
	status *ScmStatus
}

// NewAccumulatingCallback returns a callback backed by a fresh ScmStatus.
func NewAccumulatingCallback() *AccumulatingCallback {
	return &AccumulatingCallback{status: NewScmStatus()}
}

func (c *AccumulatingCallback) RecordStatus(path scpath.RelativePath, status Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.Entries[path] = status
}

func (c *AccumulatingCallback) RecordError(path scpath.RelativePath, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.Errors[path] = message
}

// Result returns the accumulated status. Safe to call once the diff run has
// completed; concurrent calls during an in-flight run are not supported.
func (c *AccumulatingCallback) Result() *ScmStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
