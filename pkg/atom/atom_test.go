package atom_test

import (
	"testing"

	"github.com/elision-go/elision/pkg/atom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralEqualityIsValueAndType(t *testing.T) {
	assert.True(t, atom.NewInteger(3).Equal(atom.NewInteger(3)))
	assert.False(t, atom.NewInteger(3).Equal(atom.NewInteger(4)))
	assert.False(t, atom.NewInteger(3).Equal(atom.NewSymbol("3")))

	a, ok := atom.AsInt(atom.NewInteger(7))
	require.True(t, ok)
	assert.Equal(t, int64(7), a)
}

func TestLiteralEqualAtomsHashEqual(t *testing.T) {
	a := atom.NewString("hello")
	b := atom.NewString("hello")
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestAsBool(t *testing.T) {
	b, ok := atom.AsBool(atom.True)
	require.True(t, ok)
	assert.True(t, b)

	_, ok = atom.AsBool(atom.NewInteger(1))
	assert.False(t, ok)
}

func TestVariableEqualityIgnoresGuardAndLabels(t *testing.T) {
	x1 := atom.NewVariable("$x", atom.INTEGER)
	x2 := atom.NewVariable("$x", atom.INTEGER, atom.WithLabels("even"))
	assert.True(t, x1.Equal(x2), "labels shouldn't affect structural equality")

	x3 := atom.NewVariable("$x", atom.INTEGER, atom.WithGuard(atom.True))
	assert.True(t, x1.Equal(x3), "a guard shouldn't affect structural equality")

	y := atom.NewVariable("$y", atom.INTEGER)
	assert.False(t, x1.Equal(y))
}

func TestVariableDistinctTypesAreUnequal(t *testing.T) {
	x := atom.NewVariable("$x", atom.INTEGER)
	y := atom.NewVariable("$x", atom.BOOLEAN)
	assert.False(t, x.Equal(y))
}

func TestIsVariable(t *testing.T) {
	assert.True(t, atom.IsVariable(atom.NewVariable("$x", atom.ANY)))
	assert.False(t, atom.IsVariable(atom.NewInteger(1)))
}

func TestAlgPropRoundTrip(t *testing.T) {
	propsAtom, err := atom.NewAlgProp(
		atom.WithAssociative(atom.True),
		atom.WithCommutative(atom.True),
	)
	require.NoError(t, err)

	props, ok := atom.AsAlgProp(propsAtom)
	require.True(t, ok)
	assert.True(t, props.IsAssociative())
	assert.True(t, props.IsCommutative())
}

func TestNoneAlgPropHasNoProperties(t *testing.T) {
	props, ok := atom.AsAlgProp(atom.None)
	require.True(t, ok)
	assert.False(t, props.IsAssociative())
	assert.False(t, props.IsCommutative())
}

func TestAtomSeqEqualityIgnoresElementIdentityNotOrder(t *testing.T) {
	none, _ := atom.AsAlgProp(atom.None)
	a := atom.NewAtomSeq([]atom.Atom{atom.NewInteger(1), atom.NewInteger(2)}, none)
	b := atom.NewAtomSeq([]atom.Atom{atom.NewInteger(1), atom.NewInteger(2)}, none)
	c := atom.NewAtomSeq([]atom.Atom{atom.NewInteger(2), atom.NewInteger(1)}, none)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "AtomSeq.Equal is positional; commutativity is a matcher concern, not an equality one")
}
