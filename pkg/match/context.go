// Package match implements Elision's pattern matcher (spec §4.1-§4.3):
// try_match and its Outcome sum type, the A/C/AC sequence matcher with its
// unbindable pre-filter and grouping/permutation iterators, and the two
// lazy iterator combinators that compose match outcomes.
package match

import (
	"github.com/elision-go/elision/internal/engine"
	"github.com/elision-go/elision/internal/labelreg"
	"github.com/elision-go/elision/pkg/atom"
)

// Reducer rewrites an atom to normal form under the given bindings,
// reporting the result. The matcher needs this only to honor a variable's
// guard (spec §4.1: "rewriting it under the proposed binding and requiring
// the result to be true"), but rewriting itself lives in pkg/rewrite,
// which depends on pkg/match to apply rule patterns — so rather than
// import pkg/rewrite here and create a cycle, the rewrite driver hands the
// matcher a closure over itself, the same adapter-function pattern
// pkg/atom uses for Lookup in SubstituteBindings.
type Reducer func(a atom.Atom, binds atom.Bindings, eng *engine.Engine) (atom.Atom, error)

// Context bundles the collaborators try_match and the sequence matcher
// need on every call, so call sites don't have to thread four or five
// separate parameters through every recursive step.
type Context struct {
	Engine *engine.Engine
	Reduce Reducer
	Labels *labelreg.Registry
}

// NewContext constructs a Context. labels may be nil if no rule in scope
// ever uses variable labels.
func NewContext(eng *engine.Engine, reduce Reducer, labels *labelreg.Registry) *Context {
	if labels == nil {
		labels = labelreg.New()
	}
	return &Context{Engine: eng, Reduce: reduce, Labels: labels}
}

// timedOut is a small helper shared by every suspension point in this
// package (spec §4.2 "Concurrency/timeout contract").
func (c *Context) timedOut() bool {
	return c.Engine != nil && c.Engine.TimedOut()
}
