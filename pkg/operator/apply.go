package operator

import (
	"fmt"
	"sort"
	"time"

	"github.com/elision-go/elision/internal/engine"
	"github.com/elision-go/elision/internal/errs"
	"github.com/elision-go/elision/pkg/atom"
	"github.com/elision-go/elision/pkg/match"
)

// Apply runs the deterministic operator-application pipeline of spec §4.4
// against ref's declaration in lib. bypass suppresses step 10's native
// handler so callers (chiefly the rewrite driver re-deriving an OpApply's
// canonical form) can force the symbolic result even when a handler is
// registered.
//
// Per spec §4.4's closing line ("this pipeline executes within a bounded
// time budget and restores the surrounding timeout on exit"), Apply installs
// its own deadline for the duration of the call and restores ctx.Engine's
// previous one afterward via Engine.WithDeadline — this is what lets a
// native handler's own nested rewrite calls run under a fresh budget without
// permanently shortening the caller's.
func Apply(ctx *match.Context, lib *Library, ref atom.OperatorRef, args []atom.Atom, bypass bool) (atom.Atom, error) {
	if ctx.Engine == nil {
		return apply(ctx, lib, ref, args, bypass)
	}
	var result atom.Atom
	var err error
	ctx.Engine.WithDeadline(time.Now().Add(engine.DefaultTimeout), func() {
		result, err = apply(ctx, lib, ref, args, bypass)
	})
	return result, err
}

func apply(ctx *match.Context, lib *Library, ref atom.OperatorRef, args []atom.Atom, bypass bool) (atom.Atom, error) {
	if ctx.Engine != nil && ctx.Engine.TimedOut() {
		return nil, &errs.TimedOutError{}
	}

	// Step 1: non-term shortcut.
	if !ref.EvenMeta() {
		for _, a := range args {
			if !a.IsTerm() {
				return atom.NewSimpleApply(ref, atom.NewAtomSeq(args, ref.Props())), nil
			}
		}
	}

	def, ok := lib.Lookup(ref.Name())
	if !ok {
		return nil, fmt.Errorf("operator %s: no declaration in library", ref.Name())
	}

	if def.Variant() == atom.OperatorCase {
		return applyCase(ctx, ref, def, args)
	}

	// Steps 2-4: flatten, identity elimination, absorber short-circuit.
	args = atom.FlattenArgs(ref, args)
	args = atom.EliminateIdentity(ref, args)
	if absorber, ok := atom.AbsorbingValue(ref, args); ok {
		return absorber, nil
	}

	// Step 5: commutative sort.
	if ref.Props().IsCommutative() {
		sorted := append([]atom.Atom(nil), args...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return BasicAtomComparator(sorted[i], sorted[j]) < 0
		})
		args = sorted
	}

	assoc := ref.Props().IsAssociative()

	// Step 6: arity check / associative empty-args handling.
	if assoc {
		if len(args) == 0 {
			if id, ok := ref.Props().Identity(); ok {
				return id, nil
			}
			return atom.NewOpApply(ref, nil, atom.NewBindings())
		}
	} else if len(args) != def.Params().Len() {
		return nil, errs.NewArgumentListError(nil, ref.Name(), map[int]string{
			len(args): fmt.Sprintf("expected %d argument(s), got %d", def.Params().Len(), len(args)),
		})
	}

	// Step 7: single-argument collapse (associative + identity + |args|==1).
	if assoc && len(args) == 1 {
		if _, hasID := ref.Props().Identity(); hasID {
			if !args[0].Type().Equal(ref.ParamType()) {
				return nil, errs.NewArgumentListError(nil, ref.Name(), map[int]string{
					0: "argument type does not match the operator's parameter type",
				})
			}
			return args[0], nil
		}
	}

	// Step 8: parameter synthesis for associative operators.
	var paramsSeq atom.AtomSeq
	if assoc {
		paramVars := make([]atom.Atom, len(args))
		for i := range args {
			paramVars[i] = atom.NewVariable(fmt.Sprintf("%%param%d", i), ref.ParamType())
		}
		paramsSeq = atom.NewAtomSeq(paramVars, ref.Props())
	} else {
		paramsSeq = def.Params()
	}

	// Step 9: match parameters against arguments.
	argsSeq := atom.NewAtomSeq(args, ref.Props())
	outcome := match.SequenceMatcher(ctx, paramsSeq, argsSeq, atom.NewBindings(), ref)
	paramBindings, ok := firstBindings(outcome)
	if !ok {
		reason := "parameters did not match arguments"
		if f, isFail := outcome.(match.Fail); isFail && f.Reason != "" {
			reason = f.Reason
		}
		return nil, errs.NewArgumentListError(nil, ref.Name(), map[int]string{0: reason})
	}

	// Step 10: native handler dispatch.
	if handler, ok := def.Handler(); ok && !bypass {
		result, handled, herr := handler(argsSeq, paramBindings)
		if herr != nil {
			return nil, herr
		}
		if handled {
			return result, nil
		}
	}

	// Step 11: final OpApply construction.
	return atom.NewOpApply(ref, args, paramBindings)
}

// applyCase dispatches a CaseOperator's single argument against its ordered
// pattern -> rewrite arms, taking the first whose pattern matches (spec
// §4.8's "case" combinator applied). This bypasses steps 2-11, which all
// presuppose a fixed-arity or associative argument list rather than a
// single dispatched value.
func applyCase(ctx *match.Context, ref atom.OperatorRef, def atom.Operator, args []atom.Atom) (atom.Atom, error) {
	if len(args) != 1 {
		return nil, errs.NewArgumentListError(nil, ref.Name(), map[int]string{
			len(args): "case operator takes exactly one argument",
		})
	}
	subject := args[0]
	for _, c := range def.Cases() {
		outcome := match.TryMatch(ctx, c.Left(), subject, atom.NewBindings(), ref)
		binds, ok := firstBindings(outcome)
		if !ok {
			continue
		}
		return atom.SubstituteBindings(c.Right(), func(n string) (atom.Atom, bool) { return binds.Lookup(n) }), nil
	}
	return nil, errs.NewArgumentListError(nil, ref.Name(), map[int]string{0: "no case matched"})
}

// firstBindings extracts the first Bindings a match Outcome carries: the
// single binding of a Match, the first element of a Many, or false for a
// Fail.
func firstBindings(o match.Outcome) (atom.Bindings, bool) {
	switch v := o.(type) {
	case match.Match:
		return v.Bindings, true
	case match.Many:
		return v.Iter.Next()
	default:
		return atom.NewBindings(), false
	}
}
