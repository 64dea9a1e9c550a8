package elctx_test

import (
	"testing"

	"github.com/elision-go/elision/pkg/atom"
	elctx "github.com/elision-go/elision/pkg/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareOperatorRoutesToOperatorLibrary(t *testing.T) {
	ctx, err := elctx.New(nil)
	require.NoError(t, err)

	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("wrap", none, atom.INTEGER, false)
	params := atom.NewAtomSeq([]atom.Atom{atom.NewVariable("$a", atom.INTEGER)}, none)
	op := atom.NewSymbolicOperator(ref, params)

	require.NoError(t, ctx.Declare(op))

	_, ok := ctx.Operators.Lookup("wrap")
	assert.True(t, ok)
}

func TestDeclareSymbolEnablesRuleset(t *testing.T) {
	ctx, err := elctx.New(nil)
	require.NoError(t, err)

	require.NoError(t, ctx.Declare(atom.NewSymbol("arith")))

	bit, ok := ctx.Rules.Rulesets().Bit("arith")
	require.True(t, ok)
	assert.True(t, ctx.Rules.Rulesets().Active().Has(bit))
}

func TestDeclareRuleAddsToRuleLibrary(t *testing.T) {
	ctx, err := elctx.New(nil)
	require.NoError(t, err)

	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("wrap", none, atom.INTEGER, false)
	params := atom.NewAtomSeq([]atom.Atom{atom.NewVariable("$a", atom.INTEGER)}, none)
	require.NoError(t, ctx.Declare(atom.NewSymbolicOperator(ref, params)))

	x := atom.NewVariable("$x", atom.INTEGER)
	pattern, err := atom.NewOpApply(ref, []atom.Atom{x}, atom.NewBindings())
	require.NoError(t, err)

	bit, _ := ctx.Rules.Rulesets().Bit("DEFAULT")
	rulesetRef := atom.NewRulesetRef("DEFAULT", bit)
	rule, err := atom.NewRewriteRule(pattern, atom.NewInteger(1), nil, []atom.RulesetRef{rulesetRef}, false)
	require.NoError(t, err)

	require.NoError(t, ctx.Declare(rule))

	subject, err := atom.NewOpApply(ref, []atom.Atom{atom.NewInteger(99)}, atom.NewBindings())
	require.NoError(t, err)
	result, changed, err := ctx.Rules.Rewrite(subject, ctx.Rules.Rulesets().Active())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, result.Equal(atom.NewInteger(1)))
}

func TestDeclareBindingBindsSymbolName(t *testing.T) {
	ctx, err := elctx.New(nil)
	require.NoError(t, err)

	binding := atom.NewMapPair(atom.NewSymbol("x"), atom.NewInteger(42))
	require.NoError(t, ctx.Declare(binding))

	v, ok := ctx.Bindings.Lookup("x")
	require.True(t, ok)
	assert.True(t, v.Equal(atom.NewInteger(42)))
}

func TestDeclareBindingBindsVariableName(t *testing.T) {
	ctx, err := elctx.New(nil)
	require.NoError(t, err)

	left := atom.NewVariable("$x", atom.ANY)
	binding := atom.NewMapPair(left, atom.NewInteger(7))
	require.NoError(t, ctx.Declare(binding))

	v, ok := ctx.Bindings.Lookup("$x")
	require.True(t, ok)
	assert.True(t, v.Equal(atom.NewInteger(7)))
}

func TestDeclareUnrecognizedAtomErrors(t *testing.T) {
	ctx, err := elctx.New(nil)
	require.NoError(t, err)

	err = ctx.Declare(atom.NewInteger(5))
	assert.Error(t, err, "a bare literal has no declaration slot")
}
