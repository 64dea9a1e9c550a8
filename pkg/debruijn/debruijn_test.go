package debruijn_test

import (
	"testing"
	"time"

	"github.com/elision-go/elision/internal/engine"
	"github.com/elision-go/elision/pkg/atom"
	"github.com/elision-go/elision/pkg/debruijn"
	"github.com/elision-go/elision/pkg/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bareContext() *match.Context {
	return match.NewContext(nil, nil, nil)
}

func TestApplySubstitutesArgumentForParameter(t *testing.T) {
	x := atom.NewVariable("$x", atom.ANY)
	lam, err := atom.NewLambda(x, x)
	require.NoError(t, err)

	result, err := debruijn.Apply(bareContext(), nil, nil, lam, atom.NewInteger(9), nil)
	require.NoError(t, err)
	assert.True(t, result.Equal(atom.NewInteger(9)))
}

func TestApplyRunsArgumentThroughReduce(t *testing.T) {
	x := atom.NewVariable("$x", atom.ANY)
	lam, err := atom.NewLambda(x, x)
	require.NoError(t, err)

	var reduceCalled bool
	reduce := func(a atom.Atom, _ *engine.Engine) (atom.Atom, error) {
		reduceCalled = true
		return a, nil
	}

	result, err := debruijn.Apply(bareContext(), nil, reduce, lam, atom.NewInteger(3), nil)
	require.NoError(t, err)
	assert.True(t, reduceCalled)
	assert.True(t, result.Equal(atom.NewInteger(3)))
}

func TestApplyTypeMismatchErrors(t *testing.T) {
	x := atom.NewVariable("$x", atom.BOOLEAN)
	lam, err := atom.NewLambda(x, x)
	require.NoError(t, err)

	_, err = debruijn.Apply(bareContext(), nil, nil, lam, atom.NewInteger(1), nil)
	assert.Error(t, err, "an integer argument can't match a Boolean-typed parameter")
}

func TestApplyUnboundedRecursionErrors(t *testing.T) {
	x := atom.NewVariable("$x", atom.ANY)
	lam, err := atom.NewLambda(x, x)
	require.NoError(t, err)

	eng := engine.New(time.Time{}, -1, nil)
	eng.SetMaxLambdaDepth(1)
	require.True(t, eng.EnterLambda(), "consume the only depth slot before Apply tries to enter one itself")

	_, err = debruijn.Apply(bareContext(), eng, nil, lam, atom.NewInteger(1), nil)
	assert.Error(t, err)
}

func TestApplyConstantLambdaIgnoresArgument(t *testing.T) {
	x := atom.NewVariable("$x", atom.ANY)
	lam, err := atom.NewLambda(x, atom.NewInteger(5)) // body never references $x
	require.NoError(t, err)

	result, err := debruijn.Apply(bareContext(), nil, nil, lam, atom.NewInteger(4), nil)
	require.NoError(t, err)
	assert.True(t, result.Equal(atom.NewInteger(5)))
}
