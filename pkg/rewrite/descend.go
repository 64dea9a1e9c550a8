package rewrite

import (
	"github.com/elision-go/elision/internal/engine"
	"github.com/elision-go/elision/pkg/atom"
	"github.com/elision-go/elision/pkg/operator"
	"github.com/elision-go/elision/pkg/ruleset"
)

// descend rewrites a's children when no rule applied at the top (spec
// §4.5 "descend"): AtomSeq rewrites its properties then its elements,
// Apply rewrites both the operator/lambda side and the argument side,
// Lambda rewrites its body (never its parameter, which is a De Bruijn
// alias, not a term), and SpecialForm rewrites its content. Every other
// variant is a leaf as far as rewriting is concerned and is returned
// unchanged.
func (l *Library) descend(a atom.Atom, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool, error) {
	switch v := a.(type) {
	case atom.AtomSeq:
		return l.descendAtomSeq(v, active, eng)
	case atom.OpApply:
		return l.descendOpApply(v, active, eng)
	case atom.SimpleApply:
		return l.descendSimpleApply(v, active, eng)
	case atom.Lambda:
		return l.descendLambda(v, active, eng)
	case atom.SpecialForm:
		return l.descendSpecialForm(v, active, eng)
	case atom.MapPair:
		return l.descendMapPair(v, active, eng)
	case atom.BindingsAtom:
		return l.descendBindingsAtom(v, active, eng)
	default:
		return a, false, nil
	}
}

func (l *Library) descendAtomSeq(s atom.AtomSeq, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool, error) {
	changed := false

	newPropsAtom, propsChanged, err := l.rewrite(s.Props(), active, eng)
	if err != nil {
		return s, false, err
	}
	newProps := s.Props()
	if propsChanged {
		if np, ok := atom.AsAlgProp(newPropsAtom); ok {
			newProps = np
			changed = true
		}
	}

	elems := s.Elements()
	newElems := make([]atom.Atom, len(elems))
	for i, e := range elems {
		ne, elemChanged, err := l.rewrite(e, active, eng)
		if err != nil {
			return s, false, err
		}
		newElems[i] = ne
		if elemChanged {
			changed = true
		}
	}
	if !changed {
		return s, false, nil
	}
	return atom.NewAtomSeq(newElems, newProps), true, nil
}

func (l *Library) descendOpApply(o atom.OpApply, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool, error) {
	args := o.Args().Elements()
	newArgs := make([]atom.Atom, len(args))
	changed := false
	for i, arg := range args {
		na, argChanged, err := l.rewrite(arg, active, eng)
		if err != nil {
			return o, false, err
		}
		newArgs[i] = na
		if argChanged {
			changed = true
		}
	}
	if !changed {
		return o, false, nil
	}
	ctx := l.context(eng, active)
	result, err := operator.Apply(ctx, l.ops, o.Operator(), newArgs, false)
	if err != nil {
		return o, false, err
	}
	return result, true, nil
}

func (l *Library) descendSimpleApply(s atom.SimpleApply, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool, error) {
	newOp, opChanged, err := l.rewrite(s.Op(), active, eng)
	if err != nil {
		return s, false, err
	}
	newArg, argChanged, err := l.rewrite(s.Arg(), active, eng)
	if err != nil {
		return s, false, err
	}
	if !opChanged && !argChanged {
		return s, false, nil
	}
	return atom.NewSimpleApply(newOp, newArg), true, nil
}

func (l *Library) descendLambda(lam atom.Lambda, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool, error) {
	newBody, changed, err := l.rewrite(lam.Body(), active, eng)
	if err != nil {
		return lam, false, err
	}
	if !changed {
		return lam, false, nil
	}
	return atom.WithBody(lam, newBody), true, nil
}

func (l *Library) descendSpecialForm(sf atom.SpecialForm, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool, error) {
	newContent, changed, err := l.rewrite(sf.Content(), active, eng)
	if err != nil {
		return sf, false, err
	}
	if !changed {
		return sf, false, nil
	}
	return atom.NewSpecialForm(sf.Tag(), newContent), true, nil
}

func (l *Library) descendMapPair(mp atom.MapPair, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool, error) {
	newLeft, leftChanged, err := l.rewrite(mp.Left(), active, eng)
	if err != nil {
		return mp, false, err
	}
	newRight, rightChanged, err := l.rewrite(mp.Right(), active, eng)
	if err != nil {
		return mp, false, err
	}
	if !leftChanged && !rightChanged {
		return mp, false, nil
	}
	return atom.NewMapPair(newLeft, newRight), true, nil
}

func (l *Library) descendBindingsAtom(b atom.BindingsAtom, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool, error) {
	keys := b.Keys()
	changed := false
	out := make(map[string]atom.Atom, len(keys))
	for _, k := range keys {
		v, _ := b.Get(k)
		nv, vChanged, err := l.rewrite(v, active, eng)
		if err != nil {
			return b, false, err
		}
		out[k] = nv
		if vChanged {
			changed = true
		}
	}
	if !changed {
		return b, false, nil
	}
	return atom.NewBindingsAtom(out), true, nil
}
