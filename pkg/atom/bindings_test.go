package atom_test

import (
	"testing"

	"github.com/elision-go/elision/pkg/atom"
	"github.com/stretchr/testify/assert"
)

// TestBindingsAtomHashIgnoresInsertionOrder guards the Atom.Hash() invariant
// (two atoms with Equal() true always have equal Hash()) against map
// iteration order: building the same logical map in two different orders
// must not change NewBindingsAtom's Hash or String.
func TestBindingsAtomHashIgnoresInsertionOrder(t *testing.T) {
	one := atom.NewInteger(1)
	two := atom.NewInteger(2)
	three := atom.NewInteger(3)

	a := atom.NewBindingsAtom(map[string]atom.Atom{"a": one, "b": two, "c": three})
	b := atom.NewBindingsAtom(map[string]atom.Atom{"c": three, "a": one, "b": two})

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.String(), b.String())
}

// TestBindingsAtomKeysAreSorted guards the exported Keys() accessor, used by
// callers that render a BindingsAtom's contents, against the same
// randomized-map-order hazard.
func TestBindingsAtomKeysAreSorted(t *testing.T) {
	ba := atom.NewBindingsAtom(map[string]atom.Atom{
		"z": atom.NewInteger(1),
		"a": atom.NewInteger(2),
		"m": atom.NewInteger(3),
	})
	assert.Equal(t, []string{"a", "m", "z"}, ba.Keys())
}
