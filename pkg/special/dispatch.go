// Package special implements special-form construction dispatch (spec
// §4.8): a tag consults a fixed table of constructors, each pulling its
// required fields out of the form's content (always a BindingsAtom) and
// building the concrete Atom variant the tag names. An unrecognized tag
// falls back to a generic SpecialForm, which is never an error — the
// table only narrows a handful of well-known tags to richer types.
package special

import (
	"github.com/elision-go/elision/internal/errs"
	"github.com/elision-go/elision/internal/labelreg"
	"github.com/elision-go/elision/pkg/atom"
	"github.com/elision-go/elision/pkg/match"
)

// builder constructs a concrete Atom from a special form's content, or
// reports why the content didn't satisfy the tag's required shape.
type builder func(content atom.BindingsAtom) (atom.Atom, error)

// table maps each well-known tag to its builder. Built once at package
// init, mirroring the teacher's own validating-constructor-per-shape
// style (table.go, sequence.go, among.go) generalized into one dispatch
// point instead of one function per call site.
var table = map[string]builder{
	"rule":     buildRule,
	"operator": buildOperator,
	"binds":    buildBinds,
	"match":    buildMatch,
	"map":      buildMap,
}

// Build constructs the special form named by tag over content (spec
// §4.8). An unrecognized tag builds a generic SpecialForm over any
// content; a well-known tag whose content isn't a BindingsAtom is a
// SpecialFormError, since its builder can't pull named fields out of
// anything else.
func Build(tag string, content atom.Atom) (atom.Atom, error) {
	b, ok := table[tag]
	if !ok {
		return atom.NewSpecialForm(tag, content), nil
	}
	bindings, ok := atom.AsBindingsAtom(content)
	if !ok {
		return nil, &errs.SpecialFormError{Tag: tag, Reason: "content must be a bindings form"}
	}
	return b(bindings)
}

func requireAtom(content atom.BindingsAtom, tag, key string) (atom.Atom, error) {
	v, ok := content.Get(key)
	if !ok {
		return nil, &errs.SpecialFormError{Tag: tag, Reason: "missing required key " + key}
	}
	return v, nil
}

// buildRule constructs a RewriteRule from {pattern, rewrite, guards?,
// rulesets?}. Literal-pattern rejection is config-dependent (spec §4.5)
// and so is enforced by pkg/rewrite.Library.AddRule, not here — this
// layer only enforces atom.NewRewriteRule's unconditional invariants
// (no bare-variable pattern, no identity rule).
func buildRule(content atom.BindingsAtom) (atom.Atom, error) {
	pattern, err := requireAtom(content, "rule", "pattern")
	if err != nil {
		return nil, err
	}
	rewrite, err := requireAtom(content, "rule", "rewrite")
	if err != nil {
		return nil, err
	}
	var guards []atom.Atom
	if g, ok := content.Get("guards"); ok {
		seq, ok := atom.AsAtomSeq(g)
		if !ok {
			return nil, &errs.SpecialFormError{Tag: "rule", Reason: "guards must be a sequence"}
		}
		guards = seq.Elements()
	}
	var rulesets []atom.RulesetRef
	if rs, ok := content.Get("rulesets"); ok {
		seq, ok := atom.AsAtomSeq(rs)
		if !ok {
			return nil, &errs.SpecialFormError{Tag: "rule", Reason: "rulesets must be a sequence"}
		}
		for _, e := range seq.Elements() {
			ref, ok := atom.AsRulesetRef(e)
			if !ok {
				return nil, &errs.SpecialFormError{Tag: "rule", Reason: "rulesets must contain RulesetRef atoms"}
			}
			rulesets = append(rulesets, ref)
		}
	}
	return atom.NewRewriteRule(pattern, rewrite, guards, rulesets, false)
}

// buildOperator constructs a TypedSymbolicOperator or CaseOperator from
// {ref, params?, cases?}, depending on which of params/cases is supplied
// (spec §4.8 "operator -> TypedSymbolicOperator or CaseOperator depending
// on whether params or cases is supplied"). Supplying neither, or both,
// is malformed.
func buildOperator(content atom.BindingsAtom) (atom.Atom, error) {
	refAtom, err := requireAtom(content, "operator", "ref")
	if err != nil {
		return nil, err
	}
	ref, ok := atom.AsOperatorRef(refAtom)
	if !ok {
		return nil, &errs.SpecialFormError{Tag: "operator", Reason: "ref must be an OperatorRef"}
	}

	paramsAtom, hasParams := content.Get("params")
	casesAtom, hasCases := content.Get("cases")
	switch {
	case hasParams && hasCases:
		return nil, &errs.SpecialFormError{Tag: "operator", Reason: "params and cases are mutually exclusive"}
	case hasParams:
		params, ok := atom.AsAtomSeq(paramsAtom)
		if !ok {
			return nil, &errs.SpecialFormError{Tag: "operator", Reason: "params must be a sequence"}
		}
		return atom.NewTypedSymbolicOperator(ref, params, nil), nil
	case hasCases:
		seq, ok := atom.AsAtomSeq(casesAtom)
		if !ok {
			return nil, &errs.SpecialFormError{Tag: "operator", Reason: "cases must be a sequence"}
		}
		cases := make([]atom.MapPair, 0, seq.Len())
		for _, e := range seq.Elements() {
			mp, ok := atom.AsMapPair(e)
			if !ok {
				return nil, &errs.SpecialFormError{Tag: "operator", Reason: "cases must contain MapPair atoms"}
			}
			cases = append(cases, mp)
		}
		return atom.NewCaseOperator(ref, cases), nil
	default:
		return nil, &errs.SpecialFormError{Tag: "operator", Reason: "one of params or cases is required"}
	}
}

// buildBinds constructs a BindingsAtom directly from content — content
// already is one, so this is an identity pass used for the "binds" tag's
// symmetry with the others in the table.
func buildBinds(content atom.BindingsAtom) (atom.Atom, error) {
	return content, nil
}

// buildMatch implements the "match" tag: apply {pattern} to {subject} and
// yield the first match's bindings as a BindingsAtom, or atom.NONE if
// nothing matches (spec §4.8's MatchAtom). This is a static, eager
// evaluation at construction time — it has no engine to honor a timeout
// or deadline against, and no rewrite reducer to honor variable guards
// that themselves require rewriting, so a guard referencing the rewrite
// driver will simply fail to match rather than rewrite-and-check; plain
// structural and type matching works exactly as pkg/match implements it
// elsewhere.
func buildMatch(content atom.BindingsAtom) (atom.Atom, error) {
	pattern, err := requireAtom(content, "match", "pattern")
	if err != nil {
		return nil, err
	}
	subject, err := requireAtom(content, "match", "subject")
	if err != nil {
		return nil, err
	}
	ctx := match.NewContext(nil, nil, labelreg.New())
	outcome := match.TryMatch(ctx, pattern, subject, atom.NewBindings(), nil)
	binds, ok := match.AsIter(outcome).Next()
	if !ok {
		return atom.NONE, nil
	}
	out := make(map[string]atom.Atom, len(binds.Names()))
	for _, name := range binds.Names() {
		v, _ := binds.Lookup(name)
		out[name] = v
	}
	return atom.NewBindingsAtom(out), nil
}

// buildMap constructs a MapPair from {left, right}.
func buildMap(content atom.BindingsAtom) (atom.Atom, error) {
	left, err := requireAtom(content, "map", "left")
	if err != nil {
		return nil, err
	}
	right, err := requireAtom(content, "map", "right")
	if err != nil {
		return nil, err
	}
	return atom.NewMapPair(left, right), nil
}
