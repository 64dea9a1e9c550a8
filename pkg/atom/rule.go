package atom

import "github.com/elision-go/elision/internal/errs"

// rewriteRule is the RewriteRule Atom variant (spec §3.12): a pattern and a
// rewrite, plus an optional list of guard predicates and the ruleset names
// the rule is gated by.
type rewriteRule struct {
	base
	pattern   Atom
	rewrite   Atom
	guards    []Atom
	rulesets  []RulesetRef
	synthetic bool
}

func (r *rewriteRule) String() string {
	out := r.pattern.String() + " -> " + r.rewrite.String()
	for _, g := range r.guards {
		out += " if " + g.String()
	}
	return out
}

func (r *rewriteRule) Equal(other Atom) bool {
	o, ok := other.(*rewriteRule)
	if !ok || !r.pattern.Equal(o.pattern) || !r.rewrite.Equal(o.rewrite) {
		return false
	}
	if len(r.guards) != len(o.guards) || len(r.rulesets) != len(o.rulesets) {
		return false
	}
	for i, g := range r.guards {
		if !g.Equal(o.guards[i]) {
			return false
		}
	}
	for i, rs := range r.rulesets {
		if !rs.Equal(o.rulesets[i]) {
			return false
		}
	}
	return r.synthetic == o.synthetic
}

// RewriteRule is the exported accessor interface.
type RewriteRule interface {
	Atom
	Pattern() Atom
	Rewrite() Atom
	Guards() []Atom
	Rulesets() []RulesetRef
	Synthetic() bool
}

func (r *rewriteRule) Pattern() Atom           { return r.pattern }
func (r *rewriteRule) Rewrite() Atom           { return r.rewrite }
func (r *rewriteRule) Guards() []Atom          { return r.guards }
func (r *rewriteRule) Rulesets() []RulesetRef  { return r.rulesets }
func (r *rewriteRule) Synthetic() bool         { return r.synthetic }

// NewRewriteRule constructs a RewriteRule, enforcing the two
// construction-time rejections spec §4.6 names: a bare-variable pattern
// (it would match and rewrite every atom, spec §8 testable property —
// "bindable pattern rejected") and a pattern structurally identical to its
// rewrite (an identity rule that could never terminate a fixpoint).
// Literal-pattern rejection depends on the running configuration's
// AllowLiteralRules flag and so is checked by the caller (pkg/rewrite's
// Library.AddRule and AddRuleAtom), not here.
func NewRewriteRule(pattern, rewrite Atom, guards []Atom, rulesets []RulesetRef, synthetic bool) (RewriteRule, error) {
	if IsBareVariable(pattern) {
		return nil, &errs.BindablePatternError{Pattern: pattern.String()}
	}
	if pattern.Equal(rewrite) {
		return nil, &errs.IdentityRuleError{Pattern: pattern.String()}
	}
	r := &rewriteRule{
		pattern:   pattern,
		rewrite:   rewrite,
		guards:    guards,
		rulesets:  rulesets,
		synthetic: synthetic,
	}
	summary := newChildSummary()
	summary.add(pattern)
	summary.add(rewrite)
	for _, g := range guards {
		summary.add(g)
	}
	r.base = base{
		kind:     KindRewriteRule,
		theType:  RULETYPE,
		depth:    summary.depth(),
		deBruijn: summary.maxDeBruijn,
		constant: summary.allConstant,
		term:     summary.allTerm,
	}
	h := hashCombine(hashString("RewriteRule"), pattern.Hash(), rewrite.Hash())
	for _, g := range guards {
		h = hashCombine(h, g.Hash())
	}
	for _, rs := range rulesets {
		h = hashCombine(h, rs.Hash())
	}
	r.hash = h
	r.simHash = hashCombine(hashString("RewriteRule"), pattern.SimHash(), rewrite.SimHash())
	return r, nil
}

// AsRewriteRule type-asserts a to the RewriteRule accessor interface.
func AsRewriteRule(a Atom) (RewriteRule, bool) {
	r, ok := a.(*rewriteRule)
	return r, ok
}
