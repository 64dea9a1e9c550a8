package atom

// simpleApply is the SimpleApply Atom variant (spec §3.4): a generic
// application used when the right-hand side contains meta-variables or the
// left side is not a resolved operator.
type simpleApply struct {
	base
	op  Atom
	arg Atom
}

func (s *simpleApply) String() string { return s.op.String() + "(" + s.arg.String() + ")" }

func (s *simpleApply) Equal(other Atom) bool {
	o, ok := other.(*simpleApply)
	return ok && s.op.Equal(o.op) && s.arg.Equal(o.arg)
}

// SimpleApply is the exported accessor interface.
type SimpleApply interface {
	Atom
	Op() Atom
	Arg() Atom
}

func (s *simpleApply) Op() Atom  { return s.op }
func (s *simpleApply) Arg() Atom { return s.arg }

// NewSimpleApply constructs a SimpleApply (spec §4.4 step 1's "non-term
// shortcut" and any application whose left side isn't a resolved
// operator).
func NewSimpleApply(op, arg Atom) SimpleApply {
	s := &simpleApply{op: op, arg: arg}
	summary := newChildSummary()
	summary.add(op)
	summary.add(arg)
	s.base = base{
		kind:     KindSimpleApply,
		theType:  ANY,
		depth:    summary.depth(),
		deBruijn: summary.maxDeBruijn,
		constant: summary.allConstant,
		term:     summary.allTerm,
	}
	s.hash = hashCombine(hashString("SimpleApply"), op.Hash(), arg.Hash())
	s.simHash = hashCombine(hashString("SimpleApply"), op.SimHash(), arg.SimHash())
	return s
}

// opApply is the OpApply Atom variant (spec §3.4): an operator reference
// applied to a fully-resolved AtomSeq of arguments, with cached
// parameter->argument Bindings.
type opApply struct {
	base
	op       OperatorRef
	args     AtomSeq
	bindings Bindings
}

func (a *opApply) String() string {
	out := a.op.String() + "("
	for i, e := range a.args.Elements() {
		if i > 0 {
			out += ", "
		}
		out += e.String()
	}
	return out + ")"
}

func (a *opApply) Equal(other Atom) bool {
	o, ok := other.(*opApply)
	return ok && a.op.Equal(o.op) && a.args.Equal(o.args)
}

// OpApply is the exported accessor interface.
type OpApply interface {
	Atom
	Operator() OperatorRef
	Args() AtomSeq
	ParamBindings() Bindings
}

func (a *opApply) Operator() OperatorRef   { return a.op }
func (a *opApply) Args() AtomSeq           { return a.args }
func (a *opApply) ParamBindings() Bindings { return a.bindings }

// flattenArgs splices the arguments of any nested OpApply of the same
// operator into args, if the operator is associative (spec §4.4 step 2,
// §3 invariant "for associative operators, arguments are always
// flattened").
func flattenArgs(ref OperatorRef, args []Atom) []Atom {
	if !ref.Props().IsAssociative() {
		return args
	}
	out := make([]Atom, 0, len(args))
	for _, a := range args {
		if nested, ok := a.(*opApply); ok && nested.op.Name() == ref.Name() {
			out = append(out, nested.args.Elements()...)
			continue
		}
		out = append(out, a)
	}
	return out
}

// eliminateIdentity drops any argument equal to the operator's identity
// element, when the operator is associative with an identity (spec §4.4
// step 3).
func eliminateIdentity(ref OperatorRef, args []Atom) []Atom {
	id, ok := ref.Props().Identity()
	if !ref.Props().IsAssociative() || !ok {
		return args
	}
	out := make([]Atom, 0, len(args))
	for _, a := range args {
		if a.Equal(id) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// absorbingValue reports the operator's absorber atom if args contains it
// (spec §4.4 step 4, §8 testable property 4 "absorber dominance").
func absorbingValue(ref OperatorRef, args []Atom) (Atom, bool) {
	absorber, ok := ref.Props().Absorber()
	if !ok {
		return nil, false
	}
	for _, a := range args {
		if a.Equal(absorber) {
			return absorber, true
		}
	}
	return nil, false
}

// FlattenArgs, EliminateIdentity, and AbsorbingValue are exported so
// pkg/operator's Apply pipeline can run these three steps explicitly, in
// the order spec §4.4 names them (2, 3, 4), before the commutative sort
// (step 5) that follows. NewOpApply itself re-runs the same three steps
// at construction time regardless of caller, so that no atom can be built
// by any path that skips them (spec §3's flatten/identity/absorber
// invariants) — running them twice on already-normalized args is a no-op.
func FlattenArgs(ref OperatorRef, args []Atom) []Atom       { return flattenArgs(ref, args) }
func EliminateIdentity(ref OperatorRef, args []Atom) []Atom { return eliminateIdentity(ref, args) }
func AbsorbingValue(ref OperatorRef, args []Atom) (Atom, bool) { return absorbingValue(ref, args) }

// NewOpApply constructs an OpApply, applying the construction-time
// invariants that must hold no matter which caller builds the atom:
// flattening (step 2), identity elimination (step 3), and absorber
// short-circuit (step 4). These three are atom-level invariants (spec §3:
// "no atom returned by Apply(f, _) contains a direct child of the form
// Apply(f, _)"), so they are enforced here rather than trusted to every
// call site — pkg/operator.Apply performs the remaining pipeline steps
// (arity/type checks, commutative sort, native dispatch) before calling
// this constructor for the final result.
//
// If the absorber check fires, NewOpApply returns the absorber atom itself
// rather than an OpApply — callers must check the returned Atom's Kind.
func NewOpApply(ref OperatorRef, args []Atom, bindings Bindings) (Atom, error) {
	flat := flattenArgs(ref, args)
	flat = eliminateIdentity(ref, flat)
	if absorber, ok := absorbingValue(ref, flat); ok {
		return absorber, nil
	}
	return newOpApplyRaw(ref, flat, bindings), nil
}

func newOpApplyRaw(ref OperatorRef, args []Atom, bindings Bindings) *opApply {
	seq := NewAtomSeq(args, ref.Props())
	a := &opApply{op: ref, args: seq, bindings: bindings}
	summary := newChildSummary()
	summary.add(seq)
	a.base = base{
		kind:     KindOpApply,
		theType:  ANY,
		depth:    summary.depth(),
		deBruijn: summary.maxDeBruijn,
		constant: summary.allConstant && ref.IsConstant(),
		term:     summary.allTerm,
	}
	a.hash = hashCombine(hashString("OpApply"), ref.Hash(), seq.Hash())
	a.simHash = hashCombine(hashString("OpApply"), ref.Hash(), seq.SimHash())
	return a
}

// rebuildOpApply reapplies the flatten/identity/absorber invariants after
// substituting new arguments into an existing OpApply (used by
// SubstituteBindings, which must preserve those invariants even though it
// isn't running the full operator-application pipeline).
func rebuildOpApply(ref OperatorRef, args []Atom) Atom {
	result, _ := NewOpApply(ref, args, NewBindings())
	return result
}

// AsOpApply type-asserts a to the OpApply accessor interface.
func AsOpApply(a Atom) (OpApply, bool) {
	o, ok := a.(*opApply)
	return o, ok
}

// AsSimpleApply type-asserts a to the SimpleApply accessor interface.
func AsSimpleApply(a Atom) (SimpleApply, bool) {
	s, ok := a.(*simpleApply)
	return s, ok
}
