package match

import "github.com/elision-go/elision/pkg/atom"

// TryMatch is the matcher's entry point (spec §4.1): try_match(pattern,
// subject, binds, hint) -> Outcome. hint is the enclosing operator
// reference, required for associative grouping and otherwise nil.
//
// Types are matched first unless the pattern is itself a root type or ANY
// (matching a type against itself would recurse forever on TypeUniverse),
// then dispatch proceeds structurally in tryMatchWithoutTypes.
func TryMatch(ctx *Context, pattern, subject atom.Atom, binds atom.Bindings, hint atom.OperatorRef) Outcome {
	if ctx.timedOut() {
		return NewFail(TimedOut, pattern, subject, nil)
	}
	if atom.IsRootType(pattern) || atom.IsAny(pattern) {
		return tryMatchWithoutTypes(ctx, pattern, subject, binds, hint)
	}
	typeOutcome := TryMatch(ctx, pattern.Type(), subject.Type(), binds, hint)
	return ChainToOutcome(typeOutcome, func(b atom.Bindings) Outcome {
		return tryMatchWithoutTypes(ctx, pattern, subject, b, hint)
	})
}

// tryMatchWithoutTypes dispatches on the pattern's concrete variant (spec
// §4.1's bulleted list).
func tryMatchWithoutTypes(ctx *Context, pattern, subject atom.Atom, binds atom.Bindings, hint atom.OperatorRef) Outcome {
	if v, ok := pattern.(atom.Variable); ok {
		return matchVariable(ctx, v, subject, binds)
	}

	switch {
	case atom.IsAny(pattern):
		// ANY is the universal type: an ANY-typed variable's type-check
		// recurses here (pattern.Type() == ANY) and must succeed against
		// any subject type, not just ANY itself.
		return Match{binds}

	case atom.IsLiteral(pattern):
		if atom.IsLiteral(subject) && pattern.Equal(subject) {
			return Match{binds}
		}
		return NewFail("literal mismatch", pattern, subject, nil)

	case isLambda(pattern):
		return matchLambda(ctx, pattern, subject, binds, hint)

	case isOpApply(pattern):
		return matchOpApply(ctx, pattern, subject, binds)

	case isSimpleApply(pattern):
		return matchSimpleApply(ctx, pattern, subject, binds, hint)

	case isAtomSeq(pattern):
		ps, _ := atom.AsAtomSeq(pattern)
		ss, ok := atom.AsAtomSeq(subject)
		if !ok {
			return NewFail("expected a sequence", pattern, subject, nil)
		}
		return SequenceMatcher(ctx, ps, ss, binds, hint)

	case isAlgProp(pattern):
		return matchAlgProp(ctx, pattern, subject, binds)

	case isBindingsAtom(pattern):
		return matchBindingsAtom(ctx, pattern, subject, binds, hint)

	case isSpecialForm(pattern):
		return matchSpecialForm(ctx, pattern, subject, binds, hint)

	case isOperatorRef(pattern):
		po, _ := atom.AsOperatorRef(pattern)
		so, ok := atom.AsOperatorRef(subject)
		if !ok || po.Name() != so.Name() {
			return NewFail("operator reference mismatch", pattern, subject, nil)
		}
		return Match{binds}

	case isRulesetRef(pattern):
		pr, _ := atom.AsRulesetRef(pattern)
		sr, ok := atom.AsRulesetRef(subject)
		if !ok || pr.Name() != sr.Name() {
			return NewFail("ruleset reference mismatch", pattern, subject, nil)
		}
		return Match{binds}

	default:
		if pattern.Equal(subject) {
			return Match{binds}
		}
		return NewFail("structural mismatch", pattern, subject, nil)
	}
}

func matchVariable(ctx *Context, pv atom.Variable, subject atom.Atom, binds atom.Bindings) Outcome {
	name := pv.Name()
	if name == "" {
		// A De Bruijn-aliased variable is not bindable; it denotes a fixed
		// bound-variable identity, compared structurally (Lambda vs Lambda
		// handles the common case of matching two lambdas' parameters
		// directly; this path covers a bound variable appearing loose
		// inside a body being matched on its own).
		if pv.Equal(subject) {
			return Match{binds}
		}
		return NewFail("bound-variable identity mismatch", pv, subject, nil)
	}

	if existing, ok := binds.Lookup(name); ok {
		if existing.Equal(subject) {
			return Match{binds}
		}
		return NewFail("variable already bound to a different value", pv, subject, nil)
	}

	newBinds := binds.Bind(name, subject)

	if guard := pv.Guard(); guard != nil {
		if ctx.Reduce == nil {
			return NewFail("cannot evaluate guard: no reducer configured", pv, subject, nil)
		}
		substituted := atom.SubstituteBindings(guard, func(n string) (atom.Atom, bool) {
			return newBinds.Lookup(n)
		})
		result, err := ctx.Reduce(substituted, newBinds, ctx.Engine)
		if err != nil {
			return NewFail("guard evaluation error", pv, subject, err)
		}
		if b, ok := atom.AsBool(result); !ok || !b {
			return NewFail("guard not satisfied", pv, subject, nil)
		}
	}

	if labels := pv.Labels(); len(labels) > 0 {
		ok, err := ctx.Labels.CheckAll(labels, subject)
		if err != nil {
			return NewFail("label check error", pv, subject, err)
		}
		if !ok {
			return NewFail("label not satisfied", pv, subject, nil)
		}
	}

	return Match{newBinds}
}

func matchLambda(ctx *Context, pattern, subject atom.Atom, binds atom.Bindings, hint atom.OperatorRef) Outcome {
	pl, ok := atom.AsLambda(pattern)
	if !ok {
		return NewFail("expected a lambda", pattern, subject, nil)
	}
	sl, ok := atom.AsLambda(subject)
	if !ok {
		return NewFail("lambda vs non-lambda", pattern, subject, nil)
	}
	if !pl.Param().Equal(sl.Param()) {
		return NewFail("lambda parameter mismatch", pattern, subject, nil)
	}
	return TryMatch(ctx, pl.Body(), sl.Body(), binds, hint)
}

func matchOpApply(ctx *Context, pattern, subject atom.Atom, binds atom.Bindings) Outcome {
	po, ok := atom.AsOpApply(pattern)
	if !ok {
		return NewFail("expected an operator application", pattern, subject, nil)
	}
	so, ok := atom.AsOpApply(subject)
	if !ok {
		return NewFail("operator application vs non-application", pattern, subject, nil)
	}
	opOutcome := TryMatch(ctx, po.Operator(), so.Operator(), binds, po.Operator())
	return ChainToOutcome(opOutcome, func(b atom.Bindings) Outcome {
		return SequenceMatcher(ctx, po.Args(), so.Args(), b, po.Operator())
	})
}

func matchSimpleApply(ctx *Context, pattern, subject atom.Atom, binds atom.Bindings, hint atom.OperatorRef) Outcome {
	ps, ok := atom.AsSimpleApply(pattern)
	if !ok {
		return NewFail("expected a simple application", pattern, subject, nil)
	}
	ss, ok := atom.AsSimpleApply(subject)
	if !ok {
		return NewFail("simple application vs non-application", pattern, subject, nil)
	}
	opOutcome := TryMatch(ctx, ps.Op(), ss.Op(), binds, hint)
	return ChainToOutcome(opOutcome, func(b atom.Bindings) Outcome {
		return TryMatch(ctx, ps.Arg(), ss.Arg(), b, hint)
	})
}

func matchAlgProp(ctx *Context, pattern, subject atom.Atom, binds atom.Bindings) Outcome {
	pp, ok := atom.AsAlgProp(pattern)
	if !ok {
		return NewFail("expected an AlgProp", pattern, subject, nil)
	}
	sp, ok := atom.AsAlgProp(subject)
	if !ok {
		return NewFail("AlgProp vs non-AlgProp", pattern, subject, nil)
	}
	pSlots := atom.RawSlots(pp)
	sSlots := atom.RawSlots(sp)
	outcome := Outcome(Match{binds})
	for i := range pSlots {
		pSlot, sSlot := pSlots[i], sSlots[i]
		if pSlot == nil {
			// Unspecified pattern slot matches anything.
			continue
		}
		if sSlot == nil {
			sSlot = atom.ANY
		}
		outcome = ChainToOutcome(outcome, func(b atom.Bindings) Outcome {
			return TryMatch(ctx, pSlot, sSlot, b, nil)
		})
	}
	return outcome
}

func matchBindingsAtom(ctx *Context, pattern, subject atom.Atom, binds atom.Bindings, hint atom.OperatorRef) Outcome {
	pb, ok := atom.AsBindingsAtom(pattern)
	if !ok {
		return NewFail("expected a bindings map", pattern, subject, nil)
	}
	sb, ok := atom.AsBindingsAtom(subject)
	if !ok {
		return NewFail("bindings map vs non-map", pattern, subject, nil)
	}
	pKeys, sKeys := pb.Keys(), sb.Keys()
	if len(pKeys) != len(sKeys) {
		return NewFail("bindings map key-set size mismatch", pattern, subject, nil)
	}
	for _, k := range pKeys {
		if _, ok := sb.Get(k); !ok {
			return NewFail("bindings map key-set mismatch: missing "+k, pattern, subject, nil)
		}
	}
	commutativeUnordered, _ := atom.AsAlgProp(atom.MustAlgProp(atom.WithCommutative(atom.True)))
	pVals := atom.NewAtomSeq(pb.Values(), commutativeUnordered)
	sVals := atom.NewAtomSeq(sb.Values(), commutativeUnordered)
	return SequenceMatcher(ctx, pVals, sVals, binds, hint)
}

func matchSpecialForm(ctx *Context, pattern, subject atom.Atom, binds atom.Bindings, hint atom.OperatorRef) Outcome {
	pf, ok := atom.AsSpecialForm(pattern)
	if !ok {
		return NewFail("expected a special form", pattern, subject, nil)
	}
	sf, ok := atom.AsSpecialForm(subject)
	if !ok || pf.Tag() != sf.Tag() {
		return NewFail("special form tag mismatch", pattern, subject, nil)
	}
	return TryMatch(ctx, pf.Content(), sf.Content(), binds, hint)
}

func isLambda(a atom.Atom) bool       { _, ok := atom.AsLambda(a); return ok }
func isOpApply(a atom.Atom) bool      { _, ok := atom.AsOpApply(a); return ok }
func isSimpleApply(a atom.Atom) bool  { _, ok := atom.AsSimpleApply(a); return ok }
func isAtomSeq(a atom.Atom) bool      { _, ok := atom.AsAtomSeq(a); return ok }
func isAlgProp(a atom.Atom) bool      { _, ok := atom.AsAlgProp(a); return ok }
func isBindingsAtom(a atom.Atom) bool { _, ok := atom.AsBindingsAtom(a); return ok }
func isSpecialForm(a atom.Atom) bool  { _, ok := atom.AsSpecialForm(a); return ok }
func isOperatorRef(a atom.Atom) bool  { _, ok := atom.AsOperatorRef(a); return ok }
func isRulesetRef(a atom.Atom) bool   { _, ok := atom.AsRulesetRef(a); return ok }
