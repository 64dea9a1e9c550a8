package match

import "github.com/elision-go/elision/pkg/atom"

// chainIter implements the `~` combinator (spec §4.3): for each binding
// produced by outer, replace it with the iterator f(binding) produces,
// concatenated in order. It is the classic lazy flatMap: f is never
// called until the consumer asks Next() past whatever f(previous) already
// yielded.
type chainIter struct {
	outer MatchIter
	f     func(atom.Bindings) MatchIter
	inner MatchIter
}

func (c *chainIter) Next() (atom.Bindings, bool) {
	for {
		if c.inner != nil {
			if b, ok := c.inner.Next(); ok {
				return b, true
			}
			c.inner = nil
		}
		b, ok := c.outer.Next()
		if !ok {
			return atom.Bindings{}, false
		}
		c.inner = c.f(b)
	}
}

// Chain implements `iter ~ f`: for each binding from iter's outcome,
// replace it with f(binding)'s bindings, lazily.
func Chain(o Outcome, f func(atom.Bindings) MatchIter) MatchIter {
	return &chainIter{outer: AsIter(o), f: f}
}

// chainToOutcomeIter backs ChainToOutcome: it flattens each g(binding)
// outcome (skipping Fail, expanding Many, yielding Match's one binding)
// across every binding the outer iterator produces.
type chainToOutcomeIter struct {
	outer MatchIter
	g     func(atom.Bindings) Outcome
	inner MatchIter
}

func (c *chainToOutcomeIter) Next() (atom.Bindings, bool) {
	for {
		if c.inner != nil {
			if b, ok := c.inner.Next(); ok {
				return b, true
			}
			c.inner = nil
		}
		b, ok := c.outer.Next()
		if !ok {
			return atom.Bindings{}, false
		}
		c.inner = AsIter(c.g(b))
	}
}

// ChainToOutcome implements `iter ~> g`: chain yielding an Outcome,
// collapsing a single resulting binding to Match, expanding Many, and
// skipping every g(binding) that Fails (spec §4.3).
func ChainToOutcome(o Outcome, g func(atom.Bindings) Outcome) Outcome {
	return FromIter(&chainToOutcomeIter{outer: AsIter(o), g: g})
}
