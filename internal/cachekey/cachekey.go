// Package cachekey builds the memoization lookup key the rewrite driver's
// LRU cache uses: an atom's structural hash combined with the active
// ruleset bitset's hash (spec §9 "use a bounded LRU keyed by
// (atom-hash, active-ruleset-bitset-hash)").
package cachekey

import "github.com/elision-go/elision/pkg/atom"

// Key is the LRU cache key: (atom hash, ruleset bitset) combined into one
// comparable value so it can key a Go map / golang-lru cache directly.
type Key struct {
	AtomHash uint64
	Bitset   uint64
}

// For builds the Key for a given atom and active-ruleset bitset.
func For(a atom.Atom, bitset uint64) Key {
	return Key{AtomHash: a.Hash(), Bitset: bitset}
}
