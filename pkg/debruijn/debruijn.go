// Package debruijn implements Lambda application (spec §4.7's "on
// application" steps): matching the argument against the lambda's
// parameter, substituting it for the parameter's De Bruijn alias throughout
// the body, and detecting unbounded recursion via the engine's explicit
// call-depth counter.
//
// The tree walk that performs the substitution itself lives in
// pkg/atom.SubstituteDeBruijn, for the same reason pkg/atom hosts Bindings:
// it must pattern-match every unexported Atom variant, which only pkg/atom
// itself can name. This package is the De-Bruijn-specific application
// policy layered on top of that shared walker — the same split spec §4.7's
// own design note describes as "nominal/capture-avoiding substitution
// machinery for bound variables", grounded here on the teacher's
// nominal_subst.go/nominal_beta.go pairing of a generic substitution
// primitive with a beta-reduction policy that calls it.
package debruijn

import (
	"fmt"

	"github.com/elision-go/elision/internal/engine"
	"github.com/elision-go/elision/internal/errs"
	"github.com/elision-go/elision/pkg/atom"
	"github.com/elision-go/elision/pkg/match"
)

// Reduce rewrites an atom to normal form, handed in by the rewrite driver
// so this package can ask for the substituted body to be normalized
// (spec §4.7 step 2) without importing pkg/rewrite and creating a cycle —
// the same adapter-function pattern match.Reducer already uses for guard
// evaluation.
type Reduce func(a atom.Atom, eng *engine.Engine) (atom.Atom, error)

// Apply implements spec §4.7's lambda-application steps:
//  1. match arg against l's parameter, including a type check;
//  2. substitute arg for the parameter's De Bruijn alias throughout the
//     body, then rewrite the result under reduce;
//  3. detect unbounded recursion via eng's call-depth counter.
//
// chain accumulates a human-readable call trace for
// LambdaUnboundedRecursionError; pass nil for a fresh call.
func Apply(ctx *match.Context, eng *engine.Engine, reduce Reduce, l atom.Lambda, arg atom.Atom, chain []string) (atom.Atom, error) {
	// The parameter is always the De Bruijn alias NewLambda substitutes in
	// (an unnamed Variable), so matching it directly against arg would hit
	// matchVariable's loose-bound-variable branch, which compares by
	// structural Equal and can never succeed against a concrete argument.
	// What the spec actually asks for here is a type check, not a
	// structural match.
	outcome := match.TryMatch(ctx, l.Param().Type(), arg.Type(), atom.NewBindings(), nil)
	if _, ok := outcome.(match.Fail); ok {
		return nil, &errs.LambdaVariableMismatchError{
			Reason: fmt.Sprintf("%s does not match parameter %s", arg.String(), l.Param().String()),
		}
	}

	if eng != nil && !eng.EnterLambda() {
		return nil, &errs.LambdaUnboundedRecursionError{
			Depth: eng.LambdaDepth(),
			Chain: append(append([]string(nil), chain...), l.String()),
		}
	}
	if eng != nil {
		defer eng.ExitLambda()
	}

	n, _ := l.Param().DeBruijnAlias()
	substituted := atom.SubstituteDeBruijn(l.Body(), n, arg)

	if reduce == nil {
		return substituted, nil
	}
	return reduce(substituted, eng)
}
