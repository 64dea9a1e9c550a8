package atom

// algProp is the AlgProp Atom variant (spec §3.6): five optional atoms —
// associative, commutative, idempotent (boolean-typed), absorber, and
// identity. A nil field means "unspecified"; ANY in any slot normalizes to
// nil at construction (spec §8 testable property 2).
type algProp struct {
	base
	associative Atom
	commutative Atom
	idempotent  Atom
	absorber    Atom
	identity    Atom
}

func normalizeSlot(a Atom) Atom {
	if a == nil || IsAny(a) {
		return nil
	}
	return a
}

func slotHash(a Atom) uint64 {
	if a == nil {
		return hashString("<unspecified>")
	}
	return a.Hash()
}

func slotString(name string, a Atom) string {
	if a == nil {
		return name + "=?"
	}
	return name + "=" + a.String()
}

// AlgPropOption configures NewAlgProp.
type AlgPropOption func(*algProp)

func WithAssociative(a Atom) AlgPropOption { return func(p *algProp) { p.associative = a } }
func WithCommutative(a Atom) AlgPropOption { return func(p *algProp) { p.commutative = a } }
func WithIdempotent(a Atom) AlgPropOption  { return func(p *algProp) { p.idempotent = a } }
func WithAbsorber(a Atom) AlgPropOption    { return func(p *algProp) { p.absorber = a } }
func WithIdentity(a Atom) AlgPropOption    { return func(p *algProp) { p.identity = a } }

// truthy reports whether a boolean-slot atom is set and true.
func truthy(a Atom) bool {
	if a == nil {
		return false
	}
	b, ok := AsBool(a)
	return ok && b
}

// NewAlgProp constructs an AlgProp, normalizing ANY slots to unspecified
// and rejecting non-associative specifications that set idempotent,
// absorber, or identity (spec §3 invariant, §6
// IllegalPropertiesSpecification).
func NewAlgProp(opts ...AlgPropOption) (Atom, error) {
	p := &algProp{}
	for _, opt := range opts {
		opt(p)
	}
	p.associative = normalizeSlot(p.associative)
	p.commutative = normalizeSlot(p.commutative)
	p.idempotent = normalizeSlot(p.idempotent)
	p.absorber = normalizeSlot(p.absorber)
	p.identity = normalizeSlot(p.identity)

	if p.idempotent != nil {
		if !p.idempotent.Type().Equal(BOOLEAN) {
			return nil, illegalPropsErr("idempotent", "must be boolean-typed")
		}
	}

	if !truthy(p.associative) {
		var reasons []string
		if p.idempotent != nil {
			reasons = append(reasons, "idempotent set without associative")
		}
		if p.absorber != nil {
			reasons = append(reasons, "absorber set without associative")
		}
		if p.identity != nil {
			reasons = append(reasons, "identity set without associative")
		}
		if len(reasons) > 0 {
			return nil, illegalPropsErrMulti(reasons)
		}
	}

	summary := newChildSummary()
	for _, s := range []Atom{p.associative, p.commutative, p.idempotent, p.absorber, p.identity} {
		if s != nil {
			summary.add(s)
		}
	}
	p.base = base{
		kind:     KindAlgProp,
		theType:  ANY,
		depth:    summary.depth(),
		deBruijn: summary.maxDeBruijn,
		constant: summary.allConstant,
		term:     summary.allTerm,
	}
	p.hash = hashCombine(hashString("AlgProp"), slotHash(p.associative), slotHash(p.commutative),
		slotHash(p.idempotent), slotHash(p.absorber), slotHash(p.identity))
	p.simHash = hashCombine(hashString("AlgProp"), boolHash(truthy(p.associative)), boolHash(truthy(p.commutative)))
	return p, nil
}

// MustAlgProp panics on error; used at package-init time and in tests where
// the properties are known-good by construction.
func MustAlgProp(opts ...AlgPropOption) Atom {
	p, err := NewAlgProp(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// None is the AlgProp with every slot unspecified — plain sequences.
var None = MustAlgProp()

func (p *algProp) String() string {
	return "{" + slotString("A", p.associative) + "," + slotString("C", p.commutative) + "," +
		slotString("Idem", p.idempotent) + "," + slotString("Absorber", p.absorber) + "," +
		slotString("Identity", p.identity) + "}"
}

func atomEqualNilable(a, b Atom) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func (p *algProp) Equal(other Atom) bool {
	o, ok := other.(*algProp)
	if !ok {
		return false
	}
	return atomEqualNilable(p.associative, o.associative) &&
		atomEqualNilable(p.commutative, o.commutative) &&
		atomEqualNilable(p.idempotent, o.idempotent) &&
		atomEqualNilable(p.absorber, o.absorber) &&
		atomEqualNilable(p.identity, o.identity)
}

// AlgProp is the exported accessor interface.
type AlgProp interface {
	Atom
	IsAssociative() bool
	IsCommutative() bool
	IsIdempotent() bool
	Identity() (Atom, bool)
	Absorber() (Atom, bool)
}

func (p *algProp) IsAssociative() bool { return truthy(p.associative) }
func (p *algProp) IsCommutative() bool { return truthy(p.commutative) }
func (p *algProp) IsIdempotent() bool  { return truthy(p.idempotent) }

// Identity returns the identity element and whether one was specified.
// Deliberately not the "getD" accessor the spec's design notes (§9) flag as
// buggy in the original source (it returned the absorber): Identity always
// returns the identity atom, Absorber always returns the absorber atom.
func (p *algProp) Identity() (Atom, bool) {
	if p.identity == nil {
		return nil, false
	}
	return p.identity, true
}

// Absorber returns the absorber element and whether one was specified.
func (p *algProp) Absorber() (Atom, bool) {
	if p.absorber == nil {
		return nil, false
	}
	return p.absorber, true
}

// AsAlgProp type-asserts a to the AlgProp accessor interface.
func AsAlgProp(a Atom) (AlgProp, bool) {
	p, ok := a.(*algProp)
	return p, ok
}

// RawSlots returns the five AlgProp slots in fixed positional order
// (associative, commutative, idempotent, absorber, identity), nil for any
// unspecified slot. Used by pkg/match's AlgProp-vs-AlgProp matching (spec
// §4.1: "five optional atoms matched positionally"), which needs the raw
// slot values rather than the boolean/element accessors AlgProp exposes.
func RawSlots(p AlgProp) [5]Atom {
	pp, ok := p.(*algProp)
	if !ok {
		return [5]Atom{}
	}
	return [5]Atom{pp.associative, pp.commutative, pp.idempotent, pp.absorber, pp.identity}
}

// Combine merges two AlgProps slot-by-slot, preferring p's specified slot
// and falling back to q's. Used when synthesizing a parameter AtomSeq's
// properties from an operator's declared properties composed with a
// caller-supplied override (spec §4.4 step 8's "synthesize a fresh
// parameter list ... of the operator's common parameter type" implicitly
// carries the operator's AlgProp forward).
func Combine(p, q AlgProp) (Atom, error) {
	pick := func(a, b Atom) Atom {
		if a != nil {
			return a
		}
		return b
	}
	pp, pok := p.(*algProp)
	qq, qok := q.(*algProp)
	if !pok || !qok {
		return nil, illegalPropsErr("combine", "both operands must be AlgProp atoms")
	}
	return NewAlgProp(
		WithAssociative(pick(pp.associative, qq.associative)),
		WithCommutative(pick(pp.commutative, qq.commutative)),
		WithIdempotent(pick(pp.idempotent, qq.idempotent)),
		WithAbsorber(pick(pp.absorber, qq.absorber)),
		WithIdentity(pick(pp.identity, qq.identity)),
	)
}

// Invert returns a copy of p with its associative/commutative/idempotent
// boolean slots logically negated (absorber/identity, being element
// values rather than flags, pass through unchanged). Used by rule
// synthesis paths that need to reason about "the non-associative version
// of this sequence's shape" without round-tripping through NewAlgProp's
// validation twice.
func Invert(p AlgProp) (Atom, error) {
	pp, ok := p.(*algProp)
	if !ok {
		return nil, illegalPropsErr("invert", "operand must be an AlgProp atom")
	}
	negate := func(a Atom) Atom {
		if a == nil {
			return nil
		}
		b, ok := AsBool(a)
		if !ok {
			return a
		}
		if b {
			return False
		}
		return True
	}
	return NewAlgProp(
		WithAssociative(negate(pp.associative)),
		WithCommutative(negate(pp.commutative)),
		WithIdempotent(negate(pp.idempotent)),
		WithAbsorber(pp.absorber),
		WithIdentity(pp.identity),
	)
}
