package rewrite

import "github.com/elision-go/elision/pkg/atom"

// indexKey computes the structural root key spec §4.5 describes: "if the
// root is an Apply(op, _), key by operator name; otherwise key by the
// pattern's variant tag." This narrows rewriteTop's candidate scan to the
// rules that could possibly apply at a given atom, rather than testing
// every rule in the library against every atom.
func indexKey(a atom.Atom) string {
	if op, ok := atom.AsOpApply(a); ok {
		return "@" + op.Operator().Name()
	}
	return a.Kind().String()
}

// Index is the rule library's structural lookup table: root key ->
// candidate rules, in declaration order (spec §4.5 "first rule that
// applies wins").
type Index struct {
	byKey map[string][]atom.RewriteRule
}

func newIndex() *Index {
	return &Index{byKey: make(map[string][]atom.RewriteRule)}
}

// Add appends rule under its pattern's structural key.
func (ix *Index) Add(rule atom.RewriteRule) {
	key := indexKey(rule.Pattern())
	ix.byKey[key] = append(ix.byKey[key], rule)
}

// Lookup returns the candidate rules indexed under a's structural key, in
// declaration order.
func (ix *Index) Lookup(a atom.Atom) []atom.RewriteRule {
	return ix.byKey[indexKey(a)]
}
