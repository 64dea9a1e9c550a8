// Package main is a thin demonstration CLI over the rewrite engine,
// following the teacher's cmd/example in spirit: hand-build a small
// operator and rule set through the Go API, apply it, and print what
// came out. Source-text parsing is explicitly out of scope for this
// spec (parse(text) is "supplied by external parser, not specified
// here"), so every atom here is built through pkg/atom's constructors
// rather than read from a command-line expression.
package main

import (
	"fmt"
	"os"

	"github.com/elision-go/elision/pkg/atom"
	elctx "github.com/elision-go/elision/pkg/context"
	"github.com/elision-go/elision/pkg/match"
	"github.com/elision-go/elision/pkg/operator"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "elision",
		Short: "A small term-rewriting engine demo",
	}
	root.AddCommand(demoCommand())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in declare/rewrite demonstrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			doubleNegation()
			identityLambda()
			associativePlus()
			return nil
		},
	}
}

// doubleNegation declares a "not" operator whose native handler folds a
// literal Boolean immediately, then adds a symbolic rewrite rule covering
// the case the handler leaves alone: not(not($x)) where $x never settled
// to a literal.
func doubleNegation() {
	fmt.Println("1. Double negation:")

	ctx, err := elctx.New(nil)
	if err != nil {
		fmt.Println("   setup failed:", err)
		return
	}

	noProps, _ := atom.AsAlgProp(atom.None)
	notRef := atom.NewOperatorRef("not", noProps, atom.BOOLEAN, false)
	notParams := atom.NewAtomSeq([]atom.Atom{atom.NewVariable("$x", atom.BOOLEAN)}, noProps)
	notOp := atom.NewTypedSymbolicOperator(notRef, notParams, func(args atom.AtomSeq, _ atom.Bindings) (atom.Atom, bool, error) {
		b, ok := atom.AsBool(args.Elements()[0])
		if !ok {
			return nil, false, nil
		}
		if b {
			return atom.False, true, nil
		}
		return atom.True, true, nil
	})
	if err := ctx.Declare(notOp); err != nil {
		fmt.Println("   declare failed:", err)
		return
	}
	ref := defaultRulesetRef(ctx)

	x := atom.NewVariable("$x", atom.BOOLEAN)
	pattern, _ := atom.NewOpApply(notRef, []atom.Atom{atomMustApply(ctx, notRef, []atom.Atom{x})}, atom.NewBindings())
	rule, err := atom.NewRewriteRule(pattern, x, nil, []atom.RulesetRef{ref}, false)
	if err != nil {
		fmt.Println("   rule build failed:", err)
		return
	}
	if err := ctx.Declare(rule); err != nil {
		fmt.Println("   rule declare failed:", err)
		return
	}

	y := atom.NewVariable("$y", atom.BOOLEAN)
	innerNot := atomMustApply(ctx, notRef, []atom.Atom{y})
	outerNot := atomMustApply(ctx, notRef, []atom.Atom{innerNot})

	result, changed, err := ctx.Rules.Rewrite(outerNot, ctx.Rules.Rulesets().Active())
	if err != nil {
		fmt.Println("   rewrite error:", err)
		return
	}
	fmt.Printf("   not(not($y)) -> %s (changed=%v)\n\n", result.String(), changed)
}

// identityLambda demonstrates beta reduction: (\$x.$x) applied to a
// literal integer returns that integer unchanged.
func identityLambda() {
	fmt.Println("2. Identity lambda application:")

	ctx, err := elctx.New(nil)
	if err != nil {
		fmt.Println("   setup failed:", err)
		return
	}

	x := atom.NewVariable("$x", atom.ANY)
	lam, err := atom.NewLambda(x, x)
	if err != nil {
		fmt.Println("   lambda build failed:", err)
		return
	}
	applied := atom.NewSimpleApply(lam, atom.NewInteger(7))

	result, changed, err := ctx.Rules.Rewrite(applied, ctx.Rules.Rulesets().Active())
	if err != nil {
		fmt.Println("   rewrite error:", err)
		return
	}
	fmt.Printf("   (\\$x.$x)(7) -> %s (changed=%v)\n\n", result.String(), changed)
}

// associativePlus declares an associative-commutative "plus" operator
// with identity 0 and shows flattening/identity-elimination folding a
// nested, zero-laden call down to its non-trivial arguments.
func associativePlus() {
	fmt.Println("3. Associative-commutative plus:")

	ctx, err := elctx.New(nil)
	if err != nil {
		fmt.Println("   setup failed:", err)
		return
	}

	propsAtom, err := atom.NewAlgProp(
		atom.WithAssociative(atom.True),
		atom.WithCommutative(atom.True),
		atom.WithIdentity(atom.NewInteger(0)),
	)
	if err != nil {
		fmt.Println("   props build failed:", err)
		return
	}
	props, _ := atom.AsAlgProp(propsAtom)
	plusRef := atom.NewOperatorRef("plus", props, atom.INTEGER, false)
	plusOp := atom.NewSymbolicOperator(plusRef, atom.NewAtomSeq(nil, props))
	if err := ctx.Declare(plusOp); err != nil {
		fmt.Println("   declare failed:", err)
		return
	}

	a := atomMustApply(ctx, plusRef, []atom.Atom{atom.NewInteger(1), atom.NewInteger(0)})
	b := atomMustApply(ctx, plusRef, []atom.Atom{atom.NewInteger(2), atom.NewInteger(3)})
	sum := atomMustApply(ctx, plusRef, []atom.Atom{a, b})

	result, changed, err := ctx.Rules.Rewrite(sum, ctx.Rules.Rulesets().Active())
	if err != nil {
		fmt.Println("   rewrite error:", err)
		return
	}
	fmt.Printf("   plus(plus(1,0), plus(2,3)) -> %s (changed=%v)\n\n", result.String(), changed)
}

// defaultRulesetRef returns a RulesetRef for "DEFAULT" — bit 0, already
// declared and active on every fresh Context (pkg/ruleset.NewRegistry) —
// the ref a hand-built RewriteRule needs to be eligible once
// ctx.Rules.Rulesets().Active() is passed to Rewrite.
func defaultRulesetRef(ctx *elctx.Context) atom.RulesetRef {
	bit, _ := ctx.Rules.Rulesets().Bit("DEFAULT")
	return atom.NewRulesetRef("DEFAULT", bit)
}

// atomMustApply runs the operator-application pipeline with a bare
// context (no engine, no reducer) — enough to exercise flatten/
// identity/absorber and native-handler dispatch without a live rewrite
// in progress. A pipeline error falls back to the bare OpApply the
// pattern-building call sites need, since this demo never expects that
// path to actually fail.
func atomMustApply(ctx *elctx.Context, ref atom.OperatorRef, args []atom.Atom) atom.Atom {
	mctx := match.NewContext(nil, nil, nil)
	result, err := operator.Apply(mctx, ctx.Operators, ref, args, false)
	if err != nil {
		fallback, _ := atom.NewOpApply(ref, args, atom.NewBindings())
		return fallback
	}
	return result
}
