package match_test

import (
	"testing"

	"github.com/elision-go/elision/pkg/atom"
	"github.com/elision-go/elision/pkg/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bareContext() *match.Context {
	return match.NewContext(nil, nil, nil)
}

func TestTryMatchLiteralExactMatch(t *testing.T) {
	outcome := match.TryMatch(bareContext(), atom.NewInteger(3), atom.NewInteger(3), atom.NewBindings(), nil)
	_, ok := outcome.(match.Match)
	assert.True(t, ok)
}

func TestTryMatchLiteralMismatch(t *testing.T) {
	outcome := match.TryMatch(bareContext(), atom.NewInteger(3), atom.NewInteger(4), atom.NewBindings(), nil)
	_, ok := outcome.(match.Fail)
	assert.True(t, ok)
}

func TestTryMatchVariableBinds(t *testing.T) {
	x := atom.NewVariable("$x", atom.INTEGER)
	outcome := match.TryMatch(bareContext(), x, atom.NewInteger(42), atom.NewBindings(), nil)

	m, ok := outcome.(match.Match)
	require.True(t, ok)
	bound, ok := m.Bindings.Lookup("$x")
	require.True(t, ok)
	assert.True(t, bound.Equal(atom.NewInteger(42)))
}

func TestTryMatchVariableTypeMismatchFails(t *testing.T) {
	x := atom.NewVariable("$x", atom.BOOLEAN)
	outcome := match.TryMatch(bareContext(), x, atom.NewInteger(42), atom.NewBindings(), nil)
	_, ok := outcome.(match.Fail)
	assert.True(t, ok)
}

func TestTryMatchSameVariableTwiceRequiresConsistentBinding(t *testing.T) {
	x := atom.NewVariable("$x", atom.INTEGER)
	seqProps, _ := atom.AsAlgProp(atom.None)
	pattern := atom.NewAtomSeq([]atom.Atom{x, x}, seqProps)

	consistent := atom.NewAtomSeq([]atom.Atom{atom.NewInteger(5), atom.NewInteger(5)}, seqProps)
	outcome := match.TryMatch(bareContext(), pattern, consistent, atom.NewBindings(), nil)
	_, ok := outcome.(match.Match)
	assert.True(t, ok)

	inconsistent := atom.NewAtomSeq([]atom.Atom{atom.NewInteger(5), atom.NewInteger(6)}, seqProps)
	outcome = match.TryMatch(bareContext(), pattern, inconsistent, atom.NewBindings(), nil)
	iter := match.AsIter(outcome)
	_, ok = iter.Next()
	assert.False(t, ok, "positional sequence pattern with a repeated variable must reject inconsistent bindings")
}

func TestTryMatchLambdaRequiresIdenticalParam(t *testing.T) {
	x := atom.NewVariable("$x", atom.ANY)
	lamX, err := atom.NewLambda(x, x)
	require.NoError(t, err)

	y := atom.NewVariable("$y", atom.ANY)
	lamY, err := atom.NewLambda(y, y)
	require.NoError(t, err)

	// Both lambdas bind a fresh De Bruijn alias for their (only) bound
	// name, so they're structurally identical regardless of the caller's
	// chosen parameter name.
	outcome := match.TryMatch(bareContext(), lamX, lamY, atom.NewBindings(), nil)
	_, ok := outcome.(match.Match)
	assert.True(t, ok)
}

func TestTryMatchVariableGuardRequiresReducer(t *testing.T) {
	x := atom.NewVariable("$x", atom.BOOLEAN, atom.WithGuard(atom.True))
	outcome := match.TryMatch(bareContext(), x, atom.True, atom.NewBindings(), nil)
	_, ok := outcome.(match.Fail)
	assert.True(t, ok, "a guard with no configured reducer can never be honored, so the match must fail closed")
}
