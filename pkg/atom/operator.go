package atom

// NativeHandler is a compiled-in operator implementation (spec §4.4 step
// 11 "native handler dispatch"). It receives the fully-processed argument
// sequence and the bindings accumulated so far, and reports whether it
// produced a result at all — an operator may decline to handle particular
// argument shapes and fall back to symbolic representation.
type NativeHandler func(args AtomSeq, bindings Bindings) (Atom, bool, error)

// OperatorVariant distinguishes the three concrete Operator shapes spec §3
// describes.
type OperatorVariant int

const (
	// OperatorSymbolic never reduces on its own; it only ever builds an
	// OpApply atom for the rule library to rewrite.
	OperatorSymbolic OperatorVariant = iota
	// OperatorTypedSymbolic adds a native handler consulted before falling
	// back to symbolic OpApply construction (spec §4.4 step 11).
	OperatorTypedSymbolic
	// OperatorCase dispatches its single argument against an ordered list
	// of pattern -> rewrite cases (MapPair arms), in order, taking the
	// first that matches — the built-in "case" combinator.
	OperatorCase
)

// operator is the Operator Atom variant (spec §3.11): the declared
// definition an OperatorRef points at. params holds the declared
// parameter pattern list for a non-associative operator (used for the
// arity check and the sequence-match of spec §4.4 steps 6 and 9); an
// associative operator ignores params and instead synthesizes a fresh
// parameter list of the common paramType at application time (step 8), so
// params may be empty for those.
type operator struct {
	base
	ref     OperatorRef
	variant OperatorVariant
	params  AtomSeq
	handler NativeHandler
	cases   []MapPair
}

func (o *operator) String() string { return "operator " + o.ref.Name() }

func (o *operator) Equal(other Atom) bool {
	p, ok := other.(*operator)
	return ok && o.ref.Equal(p.ref) && o.variant == p.variant
}

// Operator is the exported accessor interface.
type Operator interface {
	Atom
	Ref() OperatorRef
	Variant() OperatorVariant
	Params() AtomSeq
	Handler() (NativeHandler, bool)
	Cases() []MapPair
}

func (o *operator) Ref() OperatorRef          { return o.ref }
func (o *operator) Variant() OperatorVariant  { return o.variant }
func (o *operator) Params() AtomSeq           { return o.params }
func (o *operator) Handler() (NativeHandler, bool) {
	if o.handler == nil {
		return nil, false
	}
	return o.handler, true
}
func (o *operator) Cases() []MapPair { return o.cases }

func newOperator(ref OperatorRef, variant OperatorVariant, params AtomSeq, handler NativeHandler, cases []MapPair) *operator {
	if params == nil {
		params = NewAtomSeq(nil, None)
	}
	o := &operator{ref: ref, variant: variant, params: params, handler: handler, cases: cases}
	summary := newChildSummary()
	summary.add(ref)
	summary.add(params)
	for _, c := range cases {
		summary.add(c)
	}
	o.base = base{
		kind:     KindOperator,
		theType:  OPREF,
		depth:    summary.depth(),
		deBruijn: summary.maxDeBruijn,
		constant: true,
		term:     true,
	}
	h := hashCombine(hashString("Operator"), ref.Hash(), uint64(variant), params.Hash())
	for _, c := range cases {
		h = hashCombine(h, c.Hash())
	}
	o.hash = h
	o.simHash = hashCombine(hashString("Operator"), ref.Hash())
	return o
}

// NewSymbolicOperator constructs a plain symbolic Operator: arguments are
// processed by the pipeline's structural steps only, never reduced by a
// handler (spec §4.4, operators with no native behavior). params is the
// declared parameter pattern list, used for the arity check and parameter
// match of a non-associative operator.
func NewSymbolicOperator(ref OperatorRef, params AtomSeq) Operator {
	return newOperator(ref, OperatorSymbolic, params, nil, nil)
}

// NewTypedSymbolicOperator constructs an Operator backed by a compiled-in
// handler, consulted after the structural pipeline steps and before
// falling back to plain OpApply construction (spec §4.4 step 11).
func NewTypedSymbolicOperator(ref OperatorRef, params AtomSeq, handler NativeHandler) Operator {
	return newOperator(ref, OperatorTypedSymbolic, params, handler, nil)
}

// NewCaseOperator constructs an Operator that dispatches its single
// argument against an ordered list of pattern -> rewrite MapPair arms,
// taking the first whose pattern matches (the built-in "case" combinator).
func NewCaseOperator(ref OperatorRef, cases []MapPair) Operator {
	return newOperator(ref, OperatorCase, nil, nil, cases)
}

// AsOperator type-asserts a to the Operator accessor interface.
func AsOperator(a Atom) (Operator, bool) {
	o, ok := a.(*operator)
	return o, ok
}
