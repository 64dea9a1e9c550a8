package cachekey_test

import (
	"testing"

	"github.com/elision-go/elision/internal/cachekey"
	"github.com/elision-go/elision/pkg/atom"
)

func TestForCombinesAtomHashAndBitset(t *testing.T) {
	a := atom.NewInteger(7)

	k1 := cachekey.For(a, 0xF)
	k2 := cachekey.For(a, 0xF)
	if k1 != k2 {
		t.Fatal("the same atom and bitset must produce equal, comparable keys")
	}

	k3 := cachekey.For(a, 0x1)
	if k1 == k3 {
		t.Fatal("differing active rulesets must produce different cache keys")
	}

	other := atom.NewInteger(8)
	k4 := cachekey.For(other, 0xF)
	if k1 == k4 {
		t.Fatal("differing atoms must produce different cache keys")
	}
}
