package match_test

import (
	"testing"

	"github.com/elision-go/elision/pkg/atom"
	"github.com/elision-go/elision/pkg/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func algProp(t *testing.T, opts ...atom.AlgPropOption) atom.AlgProp {
	t.Helper()
	raw, err := atom.NewAlgProp(opts...)
	require.NoError(t, err)
	props, ok := atom.AsAlgProp(raw)
	require.True(t, ok)
	return props
}

func lookupInt(t *testing.T, b atom.Bindings, name string) int64 {
	t.Helper()
	a, ok := b.Lookup(name)
	require.True(t, ok, "expected %s to be bound", name)
	v, ok := atom.AsInt(a)
	require.True(t, ok, "expected %s to be bound to an INTEGER", name)
	return v
}

// TestSequenceMatcherCommutativeOnlyPermutesBindableVariables is the C-only
// case (spec §4.2): a non-associative, commutative sequence matches by
// permutation alone, since the element counts already agree and no grouping
// is needed.
func TestSequenceMatcherCommutativeOnlyPermutesBindableVariables(t *testing.T) {
	props := algProp(t, atom.WithCommutative(atom.True))

	x := atom.NewVariable("$x", atom.INTEGER)
	y := atom.NewVariable("$y", atom.INTEGER)
	pattern := atom.NewAtomSeq([]atom.Atom{x, y}, props)
	subject := atom.NewAtomSeq([]atom.Atom{atom.NewInteger(1), atom.NewInteger(2)}, props)

	outcome := match.SequenceMatcher(bareContext(), pattern, subject, atom.NewBindings(), nil)
	iter := match.AsIter(outcome)

	var got [][2]int64
	for {
		b, ok := iter.Next()
		if !ok {
			break
		}
		got = append(got, [2]int64{lookupInt(t, b, "$x"), lookupInt(t, b, "$y")})
	}

	assert.ElementsMatch(t, [][2]int64{{1, 2}, {2, 1}}, got,
		"commutative matching must enumerate every permutation of the subject against the pattern's bindable variables")
}

// TestSequenceMatcherAssociativeOnlyGroupsExtraSubjects is the A-only case
// (spec §4.2): with more subjects than pattern elements, groupSubjects must
// search groupings (the P-1 dividers among S-1 inter-subject positions, in
// lexicographic order) until one lets positionalMatchElems succeed. The
// trailing literal forces the first grouping attempt (dividing right after
// the first subject) to fail, so this also exercises groupSubjects moving on
// to the next candidate rather than stopping at the first.
func TestSequenceMatcherAssociativeOnlyGroupsExtraSubjects(t *testing.T) {
	props := algProp(t, atom.WithAssociative(atom.True))
	ref := atom.NewOperatorRef("cat", props, atom.ANY, false)

	x := atom.NewVariable("$x", atom.ANY)
	pattern := atom.NewAtomSeq([]atom.Atom{x, atom.NewInteger(3)}, props)
	subject := atom.NewAtomSeq([]atom.Atom{
		atom.NewInteger(1), atom.NewInteger(2), atom.NewInteger(3),
	}, props)

	outcome := match.SequenceMatcher(bareContext(), pattern, subject, atom.NewBindings(), ref)
	iter := match.AsIter(outcome)

	b, ok := iter.Next()
	require.True(t, ok, "grouping the leading two subjects under $x must let the trailing literal 3 match directly")

	bound, ok := b.Lookup("$x")
	require.True(t, ok)
	want, err := atom.NewOpApply(ref, []atom.Atom{atom.NewInteger(1), atom.NewInteger(2)}, atom.NewBindings())
	require.NoError(t, err)
	assert.True(t, bound.Equal(want), "got %s", bound.String())

	_, ok = iter.Next()
	assert.False(t, ok, "3 as a subject can only be grouped with its neighbor or stand alone, so exactly one grouping can satisfy the trailing literal")
}

// TestSequenceMatcherAssociativeCommutativeGroupsAndPermutes is the AC case
// (spec §4.2): grouping and permutation both apply, and the unbindable
// pre-filter (shallowestUnbindableIndex) prunes groupings where the lone
// literal pattern element has no matching subject position before any
// permutation search is attempted against the bindable variables.
func TestSequenceMatcherAssociativeCommutativeGroupsAndPermutes(t *testing.T) {
	props := algProp(t, atom.WithAssociative(atom.True), atom.WithCommutative(atom.True))
	ref := atom.NewOperatorRef("cat", props, atom.ANY, false)

	x := atom.NewVariable("$x", atom.ANY)
	y := atom.NewVariable("$y", atom.ANY)
	// Only the grouping that isolates the literal 9 as its own group can
	// ever succeed: every other grouping folds 9 in with a neighbor, and the
	// unbindable pre-filter then fails that whole grouping outright (a
	// literal can never equal a multi-element group atom) without
	// attempting to permute $x/$y against anything.
	pattern := atom.NewAtomSeq([]atom.Atom{atom.NewInteger(9), x, y}, props)
	subject := atom.NewAtomSeq([]atom.Atom{
		atom.NewInteger(1), atom.NewInteger(2), atom.NewInteger(9), atom.NewInteger(3),
	}, props)

	outcome := match.SequenceMatcher(bareContext(), pattern, subject, atom.NewBindings(), ref)
	iter := match.AsIter(outcome)

	group12, err := atom.NewOpApply(ref, []atom.Atom{atom.NewInteger(1), atom.NewInteger(2)}, atom.NewBindings())
	require.NoError(t, err)
	three := atom.NewInteger(3)

	var got []atom.Atom
	for {
		b, ok := iter.Next()
		if !ok {
			break
		}
		xv, ok := b.Lookup("$x")
		require.True(t, ok)
		yv, ok := b.Lookup("$y")
		require.True(t, ok)
		got = append(got, xv, yv)
	}

	require.Len(t, got, 4, "exactly one grouping can match 9, and it leaves two bindable subjects for $x/$y to permute over")
	pairs := [][2]atom.Atom{{got[0], got[1]}, {got[2], got[3]}}

	matches := func(pair [2]atom.Atom, x, y atom.Atom) bool {
		return pair[0].Equal(x) && pair[1].Equal(y)
	}
	foundForward := matches(pairs[0], group12, three) || matches(pairs[1], group12, three)
	foundReverse := matches(pairs[0], three, group12) || matches(pairs[1], three, group12)
	assert.True(t, foundForward, "expected one permutation binding $x to the grouped (1,2) and $y to 3")
	assert.True(t, foundReverse, "expected the other permutation binding $x to 3 and $y to the grouped (1,2)")
}
