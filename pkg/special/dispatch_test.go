package special_test

import (
	"testing"

	"github.com/elision-go/elision/pkg/atom"
	"github.com/elision-go/elision/pkg/special"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUnknownTagFallsBackToSpecialForm(t *testing.T) {
	content := atom.NewInteger(5)
	result, err := special.Build("whatever", content)
	require.NoError(t, err)

	sf, ok := atom.AsSpecialForm(result)
	require.True(t, ok)
	assert.Equal(t, "whatever", sf.Tag())
	assert.True(t, sf.Content().Equal(content))
}

func TestBuildKnownTagRequiresBindingsContent(t *testing.T) {
	_, err := special.Build("rule", atom.NewInteger(5))
	assert.Error(t, err, "a known tag with non-bindings content can't pull named fields")
}

func TestBuildRuleMissingKeyErrors(t *testing.T) {
	content := atom.NewBindingsAtom(map[string]atom.Atom{
		"pattern": atom.NewVariable("$x", atom.INTEGER),
	})
	_, err := special.Build("rule", content)
	assert.Error(t, err, "rewrite is required alongside pattern")
}

func TestBuildRuleConstructsRewriteRule(t *testing.T) {
	none, _ := atom.AsAlgProp(atom.None)
	x := atom.NewVariable("$x", atom.INTEGER)
	wrap := atom.NewOperatorRef("wrap", none, atom.INTEGER, false)
	pattern, err := atom.NewOpApply(wrap, []atom.Atom{x}, atom.NewBindings())
	require.NoError(t, err)

	content := atom.NewBindingsAtom(map[string]atom.Atom{
		"pattern": pattern,
		"rewrite": atom.NewInteger(0),
	})
	result, err := special.Build("rule", content)
	require.NoError(t, err)

	rule, ok := atom.AsRewriteRule(result)
	require.True(t, ok)
	assert.True(t, rule.Pattern().Equal(pattern))
	assert.True(t, rule.Rewrite().Equal(atom.NewInteger(0)))
}

func TestBuildOperatorWithParams(t *testing.T) {
	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("wrap", none, atom.INTEGER, false)
	params := atom.NewAtomSeq([]atom.Atom{atom.NewVariable("$a", atom.INTEGER)}, none)

	content := atom.NewBindingsAtom(map[string]atom.Atom{
		"ref":    ref,
		"params": params,
	})
	result, err := special.Build("operator", content)
	require.NoError(t, err)

	op, ok := atom.AsOperator(result)
	require.True(t, ok)
	assert.Equal(t, atom.OperatorTypedSymbolic, op.Variant())
	assert.True(t, op.Ref().Equal(ref))
}

func TestBuildOperatorWithCases(t *testing.T) {
	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("choose", none, atom.INTEGER, false)
	arm := atom.NewMapPair(atom.NewInteger(1), atom.NewInteger(2))
	cases := atom.NewAtomSeq([]atom.Atom{arm}, none)

	content := atom.NewBindingsAtom(map[string]atom.Atom{
		"ref":   ref,
		"cases": cases,
	})
	result, err := special.Build("operator", content)
	require.NoError(t, err)

	op, ok := atom.AsOperator(result)
	require.True(t, ok)
	assert.Equal(t, atom.OperatorCase, op.Variant())
	require.Len(t, op.Cases(), 1)
	assert.True(t, op.Cases()[0].Equal(arm))
}

func TestBuildOperatorRejectsBothParamsAndCases(t *testing.T) {
	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("bad", none, atom.INTEGER, false)
	params := atom.NewAtomSeq(nil, none)
	cases := atom.NewAtomSeq(nil, none)

	content := atom.NewBindingsAtom(map[string]atom.Atom{
		"ref":    ref,
		"params": params,
		"cases":  cases,
	})
	_, err := special.Build("operator", content)
	assert.Error(t, err)
}

func TestBuildOperatorRejectsNeitherParamsNorCases(t *testing.T) {
	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("bad", none, atom.INTEGER, false)
	content := atom.NewBindingsAtom(map[string]atom.Atom{"ref": ref})
	_, err := special.Build("operator", content)
	assert.Error(t, err)
}

func TestBuildBindsIsIdentity(t *testing.T) {
	content := atom.NewBindingsAtom(map[string]atom.Atom{"$x": atom.NewInteger(1)})
	result, err := special.Build("binds", content)
	require.NoError(t, err)
	assert.True(t, result.Equal(content))
}

func TestBuildMapConstructsMapPair(t *testing.T) {
	content := atom.NewBindingsAtom(map[string]atom.Atom{
		"left":  atom.NewInteger(1),
		"right": atom.NewInteger(2),
	})
	result, err := special.Build("map", content)
	require.NoError(t, err)

	mp, ok := atom.AsMapPair(result)
	require.True(t, ok)
	assert.True(t, mp.Left().Equal(atom.NewInteger(1)))
	assert.True(t, mp.Right().Equal(atom.NewInteger(2)))
}

func TestBuildMatchSucceedsReturnsBindings(t *testing.T) {
	x := atom.NewVariable("$x", atom.INTEGER)
	content := atom.NewBindingsAtom(map[string]atom.Atom{
		"pattern": x,
		"subject": atom.NewInteger(9),
	})
	result, err := special.Build("match", content)
	require.NoError(t, err)

	bindings, ok := atom.AsBindingsAtom(result)
	require.True(t, ok)
	v, ok := bindings.Get("$x")
	require.True(t, ok)
	assert.True(t, v.Equal(atom.NewInteger(9)))
}

func TestBuildMatchFailureReturnsNone(t *testing.T) {
	content := atom.NewBindingsAtom(map[string]atom.Atom{
		"pattern": atom.NewInteger(1),
		"subject": atom.NewInteger(2),
	})
	result, err := special.Build("match", content)
	require.NoError(t, err)
	assert.True(t, result.Equal(atom.NONE))
}
