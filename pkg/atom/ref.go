package atom

// operatorRef is the OperatorRef Atom variant (spec §3.10): an opaque
// handle to an Operator declared in an operator library. OpApply.op is
// always an OperatorRef, never the Operator itself (spec §3 invariant
// "this guarantees that operators remain identity-stable through
// rewriting") — the Operator's definition can be looked up by name from
// the owning library, but the ref itself cannot be rewritten.
//
// The ref caches the operator's AlgProp, declared common parameter type,
// and even_meta flag at creation time. This lets the atom-level
// constructors (NewOpApply's flatten/identity/absorber invariants, spec §3
// "for associative operators, arguments are always flattened") stay
// self-contained: they don't need to query back into an operator library
// package, which would create an import cycle (pkg/operator already
// depends on pkg/atom). The full application pipeline (arity checking,
// native-handler dispatch, §4.4 steps 1/5/6/7/8/9/10) lives in
// pkg/operator, which looks the Operator up by name and passes this
// cached shape down.
type operatorRef struct {
	base
	name      string
	props     AlgProp
	paramType Atom
	evenMeta  bool
}

func (r *operatorRef) String() string { return "@" + r.name }

func (r *operatorRef) Equal(other Atom) bool {
	o, ok := other.(*operatorRef)
	return ok && o.name == r.name
}

// OperatorRef is the exported accessor interface.
type OperatorRef interface {
	Atom
	Name() string
	Props() AlgProp
	ParamType() Atom
	EvenMeta() bool
}

func (r *operatorRef) Name() string    { return r.name }
func (r *operatorRef) Props() AlgProp  { return r.props }
func (r *operatorRef) ParamType() Atom { return r.paramType }
func (r *operatorRef) EvenMeta() bool  { return r.evenMeta }

// NewOperatorRef constructs an OperatorRef. Operator libraries call this
// when an Operator is declared, caching the shape NewOpApply needs.
func NewOperatorRef(name string, props AlgProp, paramType Atom, evenMeta bool) OperatorRef {
	r := &operatorRef{name: name, props: props, paramType: paramType, evenMeta: evenMeta}
	r.base = base{
		kind:     KindOperatorRef,
		theType:  OPREF,
		constant: true,
		term:     true,
	}
	r.hash = hashCombine(hashString("OperatorRef"), hashString(name))
	r.simHash = r.hash
	return r
}

// rulesetRef is the RulesetRef Atom variant (spec §3.10, §4.6): an opaque
// handle carrying a single ruleset bit, usable as a one-ruleset rewriter.
type rulesetRef struct {
	base
	name string
	bit  uint64
}

func (r *rulesetRef) String() string { return "#" + r.name }

func (r *rulesetRef) Equal(other Atom) bool {
	o, ok := other.(*rulesetRef)
	return ok && o.name == r.name
}

// RulesetRef is the exported accessor interface.
type RulesetRef interface {
	Atom
	Name() string
	Bit() uint64
}

func (r *rulesetRef) Name() string { return r.name }
func (r *rulesetRef) Bit() uint64  { return r.bit }

// NewRulesetRef constructs a RulesetRef carrying a single bit position.
func NewRulesetRef(name string, bitPosition uint) RulesetRef {
	r := &rulesetRef{name: name, bit: uint64(1) << bitPosition}
	r.base = base{
		kind:     KindRulesetRef,
		theType:  RSREF,
		constant: true,
		term:     true,
	}
	r.hash = hashCombine(hashString("RulesetRef"), hashString(name))
	r.simHash = r.hash
	return r
}

// AsOperatorRef type-asserts a to the OperatorRef accessor interface.
func AsOperatorRef(a Atom) (OperatorRef, bool) {
	r, ok := a.(*operatorRef)
	return r, ok
}

// AsRulesetRef type-asserts a to the RulesetRef accessor interface.
func AsRulesetRef(a Atom) (RulesetRef, bool) {
	r, ok := a.(*rulesetRef)
	return r, ok
}
