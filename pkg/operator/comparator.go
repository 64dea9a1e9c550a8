package operator

import "github.com/elision-go/elision/pkg/atom"

// BasicAtomComparator is the total order spec §4.4 step 5 names
// ("compares by (kind tag, then structural fingerprint, then recursive
// lex)"), used to sort the arguments of a commutative operator into a
// canonical order. It returns -1, 0, or 1 the way sort.Interface-adjacent
// comparators conventionally do.
//
// "Structural fingerprint" is Atom.Hash(): two structurally-equal atoms
// always hash equal, so ordering by hash already agrees with Equal for the
// common case. The recursive-lex tiebreak (String()) only matters for the
// rare hash collision between unequal atoms, where it still needs to be a
// total, deterministic order — not necessarily one a human would read as
// "lexicographic" on the term tree, which the spec leaves
// implementation-defined past "recursive".
func BasicAtomComparator(a, b atom.Atom) int {
	if ka, kb := a.Kind(), b.Kind(); ka != kb {
		return cmpInt(int(ka), int(kb))
	}
	if ha, hb := a.Hash(), b.Hash(); ha != hb {
		return cmpInt64(int64(ha), int64(hb))
	}
	if sa, sb := a.String(), b.String(); sa != sb {
		if sa < sb {
			return -1
		}
		return 1
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
