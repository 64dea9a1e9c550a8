package rewrite

import (
	"fmt"

	"github.com/elision-go/elision/internal/errs"
	"github.com/elision-go/elision/pkg/atom"
)

// AddRule validates and registers a rewrite rule (spec §4.5 "adding a
// rule"): a bare-variable or identity pattern is rejected unconditionally
// (atom.NewRewriteRule itself enforces those two), a literal pattern is
// rejected unless the library's config allows it, and an associative
// operator's pattern gets completion rules synthesized alongside it so
// the operator's variadic argument lists are covered regardless of how
// many arguments happen to appear at a given call site.
func (l *Library) AddRule(pattern, rewrite atom.Atom, guards []atom.Atom, rulesetNames []string) (atom.RewriteRule, error) {
	if atom.IsLiteral(pattern) && !l.cfg.AllowLiteralRules {
		return nil, &errs.LiteralPatternError{Pattern: pattern.String()}
	}

	refs, err := l.rulesetRefs(rulesetNames)
	if err != nil {
		return nil, err
	}

	rule, err := atom.NewRewriteRule(pattern, rewrite, guards, refs, false)
	if err != nil {
		return nil, err
	}
	l.index.Add(rule)
	l.bumpGeneration()

	for _, synth := range completionRules(pattern, rewrite, refs) {
		l.index.Add(synth)
	}
	return rule, nil
}

// AddRuleAtom indexes an already-constructed RewriteRule directly,
// skipping ruleset-name resolution (the rule already carries resolved
// RulesetRefs) but still enforcing the literal-pattern gate AddRule
// applies and, in strict mode, rejecting a RulesetRef whose name was never
// declared. Used when a RewriteRule arrives pre-built, e.g. from
// pkg/special's "rule" special form.
func (l *Library) AddRuleAtom(rule atom.RewriteRule) error {
	if atom.IsLiteral(rule.Pattern()) && !l.cfg.AllowLiteralRules {
		return &errs.LiteralPatternError{Pattern: rule.Pattern().String()}
	}
	if l.cfg.StrictRulesets {
		for _, ref := range rule.Rulesets() {
			if _, ok := l.rulesets.Bit(ref.Name()); !ok {
				return &errs.NoSuchRulesetError{Name: ref.Name()}
			}
		}
	}
	l.index.Add(rule)
	l.bumpGeneration()
	for _, synth := range completionRules(rule.Pattern(), rule.Rewrite(), rule.Rulesets()) {
		l.index.Add(synth)
	}
	return nil
}

// EnableRuleset and DisableRuleset wrap the ruleset registry's own
// Enable/Disable (pkg/ruleset.Registry), bumping the cache generation so
// memoized results computed under the old active set aren't served back
// once a different set of rulesets becomes active.
func (l *Library) EnableRuleset(name string) error {
	if err := l.rulesets.Enable(name); err != nil {
		return err
	}
	l.bumpGeneration()
	return nil
}

func (l *Library) DisableRuleset(name string) error {
	if err := l.rulesets.Disable(name); err != nil {
		return err
	}
	l.bumpGeneration()
	return nil
}

func (l *Library) rulesetRefs(names []string) ([]atom.RulesetRef, error) {
	if len(names) == 0 {
		names = []string{"DEFAULT"}
	}
	refs := make([]atom.RulesetRef, 0, len(names))
	for _, name := range names {
		bit, ok := l.rulesets.Bit(name)
		if !ok {
			if l.cfg.StrictRulesets {
				return nil, &errs.NoSuchRulesetError{Name: name}
			}
			var err error
			bit, err = l.rulesets.Declare(name)
			if err != nil {
				return nil, err
			}
		}
		refs = append(refs, atom.NewRulesetRef(name, bit))
	}
	return refs, nil
}

// completionRules synthesizes the extra rules spec §4.5 requires so an
// associative operator's rules cover every arity, not just the one the
// author happened to write: three rules for an associative-only operator
// (trailing remainder, leading remainder, and a remainder on both sides at
// once), one for an associative-commutative operator (split-out-one, since
// commutativity already lets the matcher find the pattern's arguments
// anywhere in the subject's argument multiset, so a trailing remainder
// alone covers every arity). Each synthesized rule shares the original's
// rewrite side, rebuilt as the operator applied to the remainder(s), so
// the rule fires regardless of how many extra arguments are bundled into
// the operator's variadic argument list, and on which side, at a given
// call site.
func completionRules(pattern, rewrite atom.Atom, refs []atom.RulesetRef) []atom.RewriteRule {
	opApply, ok := atom.AsOpApply(pattern)
	if !ok {
		return nil
	}
	ref := opApply.Operator()
	props := ref.Props()
	if !props.IsAssociative() {
		return nil
	}

	args := opApply.Args().Elements()
	rest := atom.NewVariable(fmt.Sprintf("$__rest_%s", ref.Name()), ref.ParamType())

	buildRule := func(patternArgs, rewriteArgs []atom.Atom) atom.RewriteRule {
		patternAtom, err := atom.NewOpApply(ref, patternArgs, atom.NewBindings())
		if err != nil {
			return nil
		}
		rewriteAtom, err := atom.NewOpApply(ref, rewriteArgs, atom.NewBindings())
		if err != nil {
			return nil
		}
		rule, err := atom.NewRewriteRule(patternAtom, rewriteAtom, nil, refs, true)
		if err != nil {
			return nil
		}
		return rule
	}

	var out []atom.RewriteRule
	// f(a,b,$rest) -> f(c,$rest): the matched arguments plus a trailing
	// remainder, rewritten with the remainder carried over unchanged.
	if rule := buildRule(append(append([]atom.Atom(nil), args...), rest), []atom.Atom{rewrite, rest}); rule != nil {
		out = append(out, rule)
	}

	if props.IsCommutative() {
		// Commutativity already lets the matcher find the pattern's
		// arguments anywhere in the subject's argument multiset, so one
		// "plus a remainder" rule is enough to cover every arity.
		return out
	}

	// Associative-only: the matched arguments may sit at the end, at the
	// start, or in the middle of the subject's argument list (an A-only
	// operator can't reorder arguments to bring them to one end), so
	// covering every subject shape takes all three combinations.

	// f($rest,a,b) -> f($rest,c): a leading remainder.
	if rule := buildRule(append([]atom.Atom{rest}, args...), []atom.Atom{rest, rewrite}); rule != nil {
		out = append(out, rule)
	}

	// f($rest1,a,b,$rest2) -> f($rest1,c,$rest2): a remainder on both
	// sides at once, needed whenever the matched subsequence falls
	// strictly in the middle of the subject's argument list.
	rest1 := atom.NewVariable(fmt.Sprintf("$__rest1_%s", ref.Name()), ref.ParamType())
	rest2 := atom.NewVariable(fmt.Sprintf("$__rest2_%s", ref.Name()), ref.ParamType())
	bothPattern := append([]atom.Atom{rest1}, append(append([]atom.Atom(nil), args...), rest2)...)
	if rule := buildRule(bothPattern, []atom.Atom{rest1, rewrite, rest2}); rule != nil {
		out = append(out, rule)
	}

	return out
}
