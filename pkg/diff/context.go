package diff

import (
	"context"

	"github.com/arjunvs/scmdiff/pkg/repository/ignore"
	"github.com/arjunvs/scmdiff/pkg/repository/scpath"
	"github.com/arjunvs/scmdiff/pkg/store"
)

// defaultHiddenNames are directory names that never participate in a diff:
// no entry is emitted for them and the engine never descends into them.
var defaultHiddenNames = map[string]bool{
	".source": true,
	".git":    true,
	".hg":     true,
	".eden":   true,
}

// LoadIgnoreFile resolves the contents of a .sourceignore file declared at
// dir. Returning (nil, nil) means the file does not exist there.
type LoadIgnoreFile func(ctx context.Context, dir scpath.RelativePath) ([]byte, error)

// Context bundles the configuration and shared state for a single diff run.
//
// Ignore rules only ever decide the fate of an entry that exists on the
// right side only (Added vs Ignored); a removed-only entry is always
// reported regardless of any rule (spec: "Ignore rules are NOT consulted for
// removed paths"), and a matched entry is never filtered at all. So only one
// ignore-file loader is needed, resolved against the right tree.
type Context struct {
	Store       store.Facade
	Callback    Callback
	ListIgnored bool
	HiddenNames map[string]bool
	LoadIgnore  LoadIgnoreFile
}

// Option customizes a Context built by NewContext.
type Option func(*Context)

// WithListIgnored overrides whether Ignored entries are reported.
func WithListIgnored(list bool) Option {
	return func(c *Context) { c.ListIgnored = list }
}

// WithHiddenNames adds to the set of directory names skipped entirely. The
// mandatory defaults (.source, .git, .hg, .eden) are always hidden in
// addition to whatever is passed here; this never removes them.
func WithHiddenNames(names ...string) Option {
	return func(c *Context) {
		for _, n := range names {
			c.HiddenNames[n] = true
		}
	}
}

// WithIgnoreLoader sets how .sourceignore contents are fetched. NewContext
// sets no loader, and without one no per-directory .sourceignore file is
// read; NewTreeIgnoreLoader builds one that reads them from a tree via the
// store.
func WithIgnoreLoader(loader LoadIgnoreFile) Option {
	return func(c *Context) { c.LoadIgnore = loader }
}

// NewContext builds a Context with sensible defaults: ignored entries listed,
// the standard hidden-name set, and an AccumulatingCallback.
func NewContext(st store.Facade, opts ...Option) *Context {
	c := &Context{
		Store:       st,
		Callback:    NewAccumulatingCallback(),
		ListIgnored: true,
		HiddenNames: cloneHiddenNames(defaultHiddenNames),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cloneHiddenNames copies src so each Context owns a private set; WithHiddenNames
// must never mutate the package-level defaultHiddenNames map it starts from.
func cloneHiddenNames(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// isHidden reports whether name should be skipped entirely during descent.
func (c *Context) isHidden(name string) bool {
	return c.HiddenNames[name]
}

// ignoreScope tries to load a .sourceignore from dir and turns its content
// into a Scope, recording a CodeIgnoreLoad error via the callback if the
// load itself fails. A missing file is not an error.
func (c *Context) ignoreScope(ctx context.Context, loader LoadIgnoreFile, dir scpath.RelativePath) *ignore.Scope {
	if loader == nil {
		return nil
	}
	contents, err := loader(ctx, dir)
	if err != nil {
		c.Callback.RecordError(dir.Join(ignore.IgnoreFileName), ignoreLoadErr("load_ignore_file", err).Error())
		return nil
	}
	if len(contents) == 0 {
		return nil
	}
	return ignore.NewScope(dir.String(), "repository", contents)
}
