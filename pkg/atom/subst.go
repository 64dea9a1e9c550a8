package atom

// Lookup resolves a variable name to its replacement atom, if bound.
// Both rewrite-time substitution of match bindings and Lambda
// construction (single-name De Bruijn substitution, spec §4.7) implement
// this as a thin adapter so both can share one tree-walking substitution
// routine instead of duplicating it per call site.
type Lookup func(name string) (Atom, bool)

// SubstituteBindings returns a new atom with every free (non-meta-bound)
// occurrence of a variable named by lookup replaced by its bound atom.
// Lambda bodies are walked, but a lookup entry naming the lambda's own
// bound variable is shadowed for the remainder of that subtree — this is
// exactly the capture-avoidance spec §4.7 requires ("excludes the bound
// variable's name from the caller's bindings to prevent capture"), and it
// falls out for free once De Bruijn aliasing has replaced the bound name
// with a positional ":n" variable that can't collide with a substituted
// name.
func SubstituteBindings(a Atom, lookup Lookup) Atom {
	return substitute(a, func(v Variable) (Atom, bool) {
		if name := v.Name(); name != "" {
			return lookup(name)
		}
		return nil, false
	})
}

// SubstituteDeBruijn replaces every occurrence of the De Bruijn alias
// variable indexed idx with value, throughout a (spec §4.7's lambda
// application step 2, "rewrite the body under the resulting binding").
// Unlike SubstituteBindings, which is keyed by variable name, this is keyed
// by the positional index Lambda construction mints — NewLambda picks an
// index one above every index already occurring in the body it is given,
// so a Lambda nested in that body carries a different index and walking
// into it needs no extra shadowing bookkeeping: its alias is never matched.
func SubstituteDeBruijn(a Atom, idx int, value Atom) Atom {
	return substitute(a, func(v Variable) (Atom, bool) {
		if n, isAlias := v.DeBruijnAlias(); isAlias && n == idx {
			return value, true
		}
		return nil, false
	})
}

// substitute is the shared tree-walking core both SubstituteBindings and
// SubstituteDeBruijn delegate to (spec §4.7's design note on sharing one
// tree-walking substitution routine across name-keyed and index-keyed
// callers), branching only on how a lone Variable is tested for
// replacement.
func substitute(a Atom, replace func(Variable) (Atom, bool)) Atom {
	if a == nil || a.IsConstant() {
		return a
	}
	switch v := a.(type) {
	case Variable:
		if repl, ok := replace(v); ok {
			return repl
		}
		return a
	case *lambda:
		// The bound variable has already been replaced by a De Bruijn
		// alias at construction time (spec §4.7), so the body cannot
		// contain the original name; substituting into it is safe without
		// extra shadowing bookkeeping.
		newBody := substitute(v.body, replace)
		if newBody == v.body {
			return a
		}
		return rebuildLambda(v, newBody)
	case *simpleApply:
		newOp := substitute(v.op, replace)
		newArg := substitute(v.arg, replace)
		if newOp == v.op && newArg == v.arg {
			return a
		}
		return NewSimpleApply(newOp, newArg)
	case *opApply:
		changed := false
		newArgs := make([]Atom, v.args.Len())
		for i, e := range v.args.Elements() {
			ne := substitute(e, replace)
			if ne != e {
				changed = true
			}
			newArgs[i] = ne
		}
		if !changed {
			return a
		}
		return rebuildOpApply(v.op, newArgs)
	case *atomSeq:
		changed := false
		newElems := make([]Atom, len(v.elems))
		for i, e := range v.elems {
			ne := substitute(e, replace)
			if ne != e {
				changed = true
			}
			newElems[i] = ne
		}
		newProps := substitute(v.props, replace)
		if !changed && newProps == Atom(v.props) {
			return a
		}
		np, _ := AsAlgProp(newProps)
		if np == nil {
			np = v.props
		}
		return newAtomSeq(newElems, np)
	case *algProp:
		sub := func(s Atom) Atom {
			if s == nil {
				return nil
			}
			return substitute(s, replace)
		}
		na, _ := NewAlgProp(
			WithAssociative(sub(v.associative)),
			WithCommutative(sub(v.commutative)),
			WithIdempotent(sub(v.idempotent)),
			WithAbsorber(sub(v.absorber)),
			WithIdentity(sub(v.identity)),
		)
		return na
	case *mapPair:
		nl := substitute(v.left, replace)
		nr := substitute(v.right, replace)
		if nl == v.left && nr == v.right {
			return a
		}
		return NewMapPair(nl, nr)
	case *bindingsAtom:
		changed := false
		out := make(map[string]Atom, len(v.m))
		for k, val := range v.m {
			nv := substitute(val, replace)
			if nv != val {
				changed = true
			}
			out[k] = nv
		}
		if !changed {
			return a
		}
		return NewBindingsAtom(out)
	case *specialForm:
		nc := substitute(v.content, replace)
		if nc == v.content {
			return a
		}
		return NewSpecialForm(v.tag, nc)
	default:
		return a
	}
}
