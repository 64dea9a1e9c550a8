// Package atom implements Elision's core data model: the immutable, tagged
// Atom variants described in spec §3, their algebraic properties (§3.6),
// and the Bindings map used to thread variable substitutions through
// matching and rewriting (§3 "Bindings").
//
// Every Atom is built once and never mutated afterward — the rewriter
// constructs new atoms rather than editing existing ones (spec §3
// "Ownership"), so there is no cycle-breaking machinery to write: Go's
// garbage collector owns the atoms' lifetime the same way the teacher
// (gokando) leans on Go's GC for its reference-counted Term values in
// core.go, just without that file's mutex-guarded in-place Clone pattern,
// which immutable atoms make unnecessary.
package atom

import (
	"fmt"
	"hash/fnv"
)

// Kind tags an Atom's concrete variant. Kind also defines the "kind tag"
// total order used by BasicAtomComparator in pkg/operator (spec §4.4 step
// 5), so its iota order matters and must not be renumbered casually.
type Kind int

const (
	KindRootType Kind = iota
	KindLiteral
	KindVariable
	KindLambda
	KindOpApply
	KindSimpleApply
	KindAtomSeq
	KindAlgProp
	KindBindings
	KindMapPair
	KindSpecialForm
	KindOperatorRef
	KindRulesetRef
	KindOperator
	KindRewriteRule
)

func (k Kind) String() string {
	switch k {
	case KindRootType:
		return "RootType"
	case KindLiteral:
		return "Literal"
	case KindVariable:
		return "Variable"
	case KindLambda:
		return "Lambda"
	case KindOpApply:
		return "OpApply"
	case KindSimpleApply:
		return "SimpleApply"
	case KindAtomSeq:
		return "AtomSeq"
	case KindAlgProp:
		return "AlgProp"
	case KindBindings:
		return "Bindings"
	case KindMapPair:
		return "MapPair"
	case KindSpecialForm:
		return "SpecialForm"
	case KindOperatorRef:
		return "OperatorRef"
	case KindRulesetRef:
		return "RulesetRef"
	case KindOperator:
		return "Operator"
	case KindRewriteRule:
		return "RewriteRule"
	default:
		return "Unknown"
	}
}

// Loc is an optional source location, ignored by Equal and Hash (spec §3:
// "loc: optional source location, ignored by equality").
type Loc struct {
	File string
	Line int
	Col  int
}

func (l *Loc) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Atom is the uniform interface satisfied by every variant in spec §3.
// Implementations are unexported structs constructed only through this
// package's New* constructors, so every Atom in existence has already had
// its invariants checked once, at construction.
type Atom interface {
	// Kind reports the concrete variant.
	Kind() Kind

	// Type is this atom's type, another Atom (possibly itself, for root
	// types).
	Type() Atom

	// Depth is 1 + max(child depths); leaves are 0.
	Depth() int

	// DeBruijnIndex is the max De Bruijn index occurring anywhere in this
	// atom; 0 when no De Bruijn alias variable occurs in it.
	DeBruijnIndex() int

	// IsConstant is true iff no variables appear anywhere in this atom.
	IsConstant() bool

	// IsTerm is true iff no meta-variables appear anywhere in this atom.
	IsTerm() bool

	// Hash is the exact structural hash: two atoms with Hash() equal but
	// Equal() false are merely a hash collision; two atoms with Equal()
	// true always have equal Hash().
	Hash() uint64

	// SimHash is the secondary "value-similarity" hash used for
	// memoization-cache locality: atoms that differ only in variable
	// identity hash identically under SimHash.
	SimHash() uint64

	// Loc is the optional source location; never consulted by Equal.
	Loc() *Loc

	// String renders a textual form. Types are not printed, so atoms that
	// print identically need not be Equal (the INTEGER 3 and the SYMBOL 3
	// both print "3"); Equal atoms always print identically.
	String() string

	// Equal is structural equality: same Kind, same Type, same value. It
	// is NOT unification — see pkg/match for that.
	Equal(other Atom) bool
}

// base is embedded by every concrete variant to carry the fields the spec
// says every atom carries, plus the bookkeeping needed to compute them once
// at construction and never again.
type base struct {
	kind      Kind
	theType   Atom
	depth     int
	deBruijn  int
	constant  bool
	term      bool
	hash      uint64
	simHash   uint64
	loc       *Loc
}

func (b *base) Kind() Kind          { return b.kind }
func (b *base) Type() Atom          { return b.theType }
func (b *base) Depth() int          { return b.depth }
func (b *base) DeBruijnIndex() int  { return b.deBruijn }
func (b *base) IsConstant() bool    { return b.constant }
func (b *base) IsTerm() bool        { return b.term }
func (b *base) Hash() uint64        { return b.hash }
func (b *base) SimHash() uint64     { return b.simHash }
func (b *base) Loc() *Loc           { return b.loc }

// childSummary folds a child atom's derived fields into an accumulator used
// by every variant constructor to compute depth/deBruijn/constant/term.
type childSummary struct {
	maxDepth    int
	maxDeBruijn int
	allConstant bool
	allTerm     bool
	seenAny     bool
}

func newChildSummary() childSummary {
	return childSummary{allConstant: true, allTerm: true}
}

func (c *childSummary) add(a Atom) {
	c.seenAny = true
	if a.Depth() > c.maxDepth {
		c.maxDepth = a.Depth()
	}
	if a.DeBruijnIndex() > c.maxDeBruijn {
		c.maxDeBruijn = a.DeBruijnIndex()
	}
	if !a.IsConstant() {
		c.allConstant = false
	}
	if !a.IsTerm() {
		c.allTerm = false
	}
}

// depth returns 1+maxDepth if any child was seen, else 0 (a leaf).
func (c *childSummary) depth() int {
	if !c.seenAny {
		return 0
	}
	return 1 + c.maxDepth
}

// hashString computes the structural hash of a canonical string via
// FNV-1a, the same non-cryptographic, allocation-light hash family the
// teacher reaches for implicitly through fmt.Sprintf-based String/Equal
// composition in core.go — here made explicit and O(1) to query after
// construction instead of recomputed on every comparison.
func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// hashCombine mixes an accumulator with another hash value.
func hashCombine(seed uint64, parts ...uint64) uint64 {
	h := seed
	for _, p := range parts {
		h ^= p + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
	}
	return h
}
