package operator_test

import (
	"testing"

	"github.com/elision-go/elision/pkg/atom"
	"github.com/elision-go/elision/pkg/match"
	"github.com/elision-go/elision/pkg/operator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bareContext() *match.Context {
	return match.NewContext(nil, nil, nil)
}

func TestLibraryDeclareAndLookup(t *testing.T) {
	lib := operator.NewLibrary()
	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("wrap", none, atom.INTEGER, false)
	params := atom.NewAtomSeq([]atom.Atom{atom.NewVariable("$a", atom.INTEGER)}, none)
	op := atom.NewSymbolicOperator(ref, params)

	got := lib.Declare(op)
	assert.True(t, got.Equal(ref))

	looked, ok := lib.Lookup("wrap")
	require.True(t, ok)
	assert.True(t, looked.Ref().Equal(ref))

	_, ok = lib.Lookup("nope")
	assert.False(t, ok)
}

func TestApplyUndeclaredOperatorErrors(t *testing.T) {
	lib := operator.NewLibrary()
	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("ghost", none, atom.INTEGER, false)

	_, err := operator.Apply(bareContext(), lib, ref, []atom.Atom{atom.NewInteger(1)}, false)
	assert.Error(t, err)
}

func TestApplyWrongArityErrors(t *testing.T) {
	lib := operator.NewLibrary()
	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("wrap", none, atom.INTEGER, false)
	params := atom.NewAtomSeq([]atom.Atom{atom.NewVariable("$a", atom.INTEGER)}, none)
	lib.Declare(atom.NewSymbolicOperator(ref, params))

	_, err := operator.Apply(bareContext(), lib, ref, []atom.Atom{atom.NewInteger(1), atom.NewInteger(2)}, false)
	assert.Error(t, err)
}

func TestApplyMatchingArityBuildsOpApply(t *testing.T) {
	lib := operator.NewLibrary()
	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("wrap", none, atom.INTEGER, false)
	params := atom.NewAtomSeq([]atom.Atom{atom.NewVariable("$a", atom.INTEGER)}, none)
	lib.Declare(atom.NewSymbolicOperator(ref, params))

	result, err := operator.Apply(bareContext(), lib, ref, []atom.Atom{atom.NewInteger(7)}, false)
	require.NoError(t, err)

	opApply, ok := atom.AsOpApply(result)
	require.True(t, ok)
	assert.True(t, opApply.Operator().Equal(ref))
}

func TestApplyAbsorberShortCircuits(t *testing.T) {
	lib := operator.NewLibrary()
	propsAtom, err := atom.NewAlgProp(
		atom.WithAssociative(atom.True),
		atom.WithCommutative(atom.True),
		atom.WithAbsorber(atom.NewInteger(0)),
	)
	require.NoError(t, err)
	props, _ := atom.AsAlgProp(propsAtom)
	ref := atom.NewOperatorRef("times", props, atom.INTEGER, false)
	lib.Declare(atom.NewSymbolicOperator(ref, atom.NewAtomSeq(nil, props)))

	result, err := operator.Apply(bareContext(), lib, ref, []atom.Atom{atom.NewInteger(5), atom.NewInteger(0), atom.NewInteger(9)}, false)
	require.NoError(t, err)
	assert.True(t, result.Equal(atom.NewInteger(0)))
}

func TestApplyIdentityEliminationCollapsesToSoleArgument(t *testing.T) {
	lib := operator.NewLibrary()
	propsAtom, err := atom.NewAlgProp(
		atom.WithAssociative(atom.True),
		atom.WithCommutative(atom.True),
		atom.WithIdentity(atom.NewInteger(0)),
	)
	require.NoError(t, err)
	props, _ := atom.AsAlgProp(propsAtom)
	ref := atom.NewOperatorRef("plus", props, atom.INTEGER, false)
	lib.Declare(atom.NewSymbolicOperator(ref, atom.NewAtomSeq(nil, props)))

	result, err := operator.Apply(bareContext(), lib, ref, []atom.Atom{atom.NewInteger(3), atom.NewInteger(0)}, false)
	require.NoError(t, err)
	assert.True(t, result.Equal(atom.NewInteger(3)))
}

func TestApplyNativeHandlerDispatch(t *testing.T) {
	lib := operator.NewLibrary()
	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("not", none, atom.BOOLEAN, false)
	params := atom.NewAtomSeq([]atom.Atom{atom.NewVariable("$a", atom.BOOLEAN)}, none)
	lib.Declare(atom.NewTypedSymbolicOperator(ref, params, func(args atom.AtomSeq, _ atom.Bindings) (atom.Atom, bool, error) {
		b, ok := atom.AsBool(args.Elements()[0])
		if !ok {
			return nil, false, nil
		}
		if b {
			return atom.False, true, nil
		}
		return atom.True, true, nil
	}))

	result, err := operator.Apply(bareContext(), lib, ref, []atom.Atom{atom.True}, false)
	require.NoError(t, err)
	assert.True(t, result.Equal(atom.False))
}

func TestApplyBypassSuppressesNativeHandler(t *testing.T) {
	lib := operator.NewLibrary()
	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("not", none, atom.BOOLEAN, false)
	params := atom.NewAtomSeq([]atom.Atom{atom.NewVariable("$a", atom.BOOLEAN)}, none)
	lib.Declare(atom.NewTypedSymbolicOperator(ref, params, func(args atom.AtomSeq, _ atom.Bindings) (atom.Atom, bool, error) {
		return atom.False, true, nil
	}))

	result, err := operator.Apply(bareContext(), lib, ref, []atom.Atom{atom.True}, true)
	require.NoError(t, err)
	opApply, ok := atom.AsOpApply(result)
	require.True(t, ok, "bypass must skip the native handler and fall through to symbolic OpApply construction")
	assert.True(t, opApply.Operator().Equal(ref))
}

func TestApplyCaseOperatorDispatchesFirstMatchingArm(t *testing.T) {
	lib := operator.NewLibrary()
	none, _ := atom.AsAlgProp(atom.None)
	ref := atom.NewOperatorRef("describe", none, atom.INTEGER, false)
	arms := []atom.MapPair{
		atom.NewMapPair(atom.NewInteger(1), atom.NewSymbol("one")),
		atom.NewMapPair(atom.NewVariable("$x", atom.INTEGER), atom.NewSymbol("other")),
	}
	lib.Declare(atom.NewCaseOperator(ref, arms))

	result, err := operator.Apply(bareContext(), lib, ref, []atom.Atom{atom.NewInteger(1)}, false)
	require.NoError(t, err)
	assert.True(t, result.Equal(atom.NewSymbol("one")))

	result, err = operator.Apply(bareContext(), lib, ref, []atom.Atom{atom.NewInteger(2)}, false)
	require.NoError(t, err)
	assert.True(t, result.Equal(atom.NewSymbol("other")))
}
