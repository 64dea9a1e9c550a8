package atom

// atomSeq is the AtomSeq Atom variant (spec §3.5): an ordered sequence of
// atoms decorated with an AlgProp describing how the sequence may be
// matched (positionally, up to permutation, up to grouping, or both —
// spec §4.2).
type atomSeq struct {
	base
	elems []Atom
	props AlgProp
}

func (s *atomSeq) String() string {
	out := "["
	for i, e := range s.elems {
		if i > 0 {
			out += ", "
		}
		out += e.String()
	}
	return out + "]" + s.props.String()
}

func (s *atomSeq) Equal(other Atom) bool {
	o, ok := other.(*atomSeq)
	if !ok || len(s.elems) != len(o.elems) || !s.props.Equal(o.props) {
		return false
	}
	for i := range s.elems {
		if !s.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

// AtomSeq is the exported accessor interface.
type AtomSeq interface {
	Atom
	Elements() []Atom
	Len() int
	At(i int) Atom
	Props() AlgProp
	// Omit returns a new AtomSeq with the element at i dropped.
	Omit(i int) (AtomSeq, error)
	// InsertAt returns a new AtomSeq with seq's elements spliced in at i.
	InsertAt(i int, seq AtomSeq) (AtomSeq, error)
}

func (s *atomSeq) Elements() []Atom { return append([]Atom(nil), s.elems...) }
func (s *atomSeq) Len() int         { return len(s.elems) }
func (s *atomSeq) At(i int) Atom    { return s.elems[i] }
func (s *atomSeq) Props() AlgProp   { return s.props }

func (s *atomSeq) Omit(i int) (AtomSeq, error) {
	if i < 0 || i >= len(s.elems) {
		return nil, illegalPropsErr("Omit", "index out of range")
	}
	out := make([]Atom, 0, len(s.elems)-1)
	out = append(out, s.elems[:i]...)
	out = append(out, s.elems[i+1:]...)
	return newAtomSeq(out, s.props), nil
}

func (s *atomSeq) InsertAt(i int, seq AtomSeq) (AtomSeq, error) {
	if i < 0 || i > len(s.elems) {
		return nil, illegalPropsErr("InsertAt", "index out of range")
	}
	out := make([]Atom, 0, len(s.elems)+seq.Len())
	out = append(out, s.elems[:i]...)
	out = append(out, seq.Elements()...)
	out = append(out, s.elems[i:]...)
	return newAtomSeq(out, s.props), nil
}

// NewAtomSeq constructs an AtomSeq from elements and an AlgProp (default
// None if props is nil).
func NewAtomSeq(elems []Atom, props AlgProp) AtomSeq {
	if props == nil {
		props, _ = AsAlgProp(None)
	}
	return newAtomSeq(elems, props)
}

func newAtomSeq(elems []Atom, props AlgProp) *atomSeq {
	s := &atomSeq{elems: append([]Atom(nil), elems...), props: props}
	summary := newChildSummary()
	elemHashes := make([]uint64, 0, len(elems))
	elemSim := make([]uint64, 0, len(elems))
	for _, e := range elems {
		summary.add(e)
		elemHashes = append(elemHashes, e.Hash())
		elemSim = append(elemSim, e.SimHash())
	}
	s.base = base{
		kind:     KindAtomSeq,
		theType:  ANY,
		depth:    summary.depth(),
		deBruijn: summary.maxDeBruijn,
		constant: summary.allConstant,
		term:     summary.allTerm,
	}
	h := hashCombine(hashString("AtomSeq"), props.Hash())
	for _, eh := range elemHashes {
		h = hashCombine(h, eh)
	}
	s.hash = h
	sh := hashCombine(hashString("AtomSeq"), uint64(len(elems)))
	for _, eh := range elemSim {
		sh = hashCombine(sh, eh)
	}
	s.simHash = sh
	return s
}

// AsAtomSeq type-asserts a to the AtomSeq accessor interface.
func AsAtomSeq(a Atom) (AtomSeq, bool) {
	s, ok := a.(*atomSeq)
	return s, ok
}
