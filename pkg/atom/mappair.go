package atom

// mapPair is the MapPair Atom variant (spec §3.8): an ordered pair
// left -> right that also behaves as a single-case rewriter (a MapPair
// used as a pattern/rewrite pair outside of a full RewriteRule).
type mapPair struct {
	base
	left  Atom
	right Atom
}

func (m *mapPair) String() string { return m.left.String() + " -> " + m.right.String() }

func (m *mapPair) Equal(other Atom) bool {
	o, ok := other.(*mapPair)
	return ok && m.left.Equal(o.left) && m.right.Equal(o.right)
}

// MapPair is the exported accessor interface.
type MapPair interface {
	Atom
	Left() Atom
	Right() Atom
}

func (m *mapPair) Left() Atom  { return m.left }
func (m *mapPair) Right() Atom { return m.right }

// NewMapPair constructs a MapPair.
func NewMapPair(left, right Atom) MapPair {
	m := &mapPair{left: left, right: right}
	summary := newChildSummary()
	summary.add(left)
	summary.add(right)
	m.base = base{
		kind:     KindMapPair,
		theType:  ANY,
		depth:    summary.depth(),
		deBruijn: summary.maxDeBruijn,
		constant: summary.allConstant,
		term:     summary.allTerm,
	}
	m.hash = hashCombine(hashString("MapPair"), left.Hash(), right.Hash())
	m.simHash = hashCombine(hashString("MapPair"), left.SimHash(), right.SimHash())
	return m
}

// AsMapPair type-asserts a to the MapPair accessor interface.
func AsMapPair(a Atom) (MapPair, bool) {
	m, ok := a.(*mapPair)
	return m, ok
}
