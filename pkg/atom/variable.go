package atom

import "fmt"

// variable is the Variable Atom variant (spec §3.2): a name, an optional
// guard atom (evaluated under the proposed binding during matching, spec
// §4.1), a set of label tags (contracts the matched subject must satisfy),
// a meta flag (meta-variables are atom-valued holes usable only at
// rewrite time, spec §3 "is_term"), and an optional De Bruijn alias index
// that marks this variable as the fresh bound-variable substitute a Lambda
// introduces for its parameter (spec §4.7).
type variable struct {
	base
	name     string
	guard    Atom
	labels   []string
	meta     bool
	deBruijn *int // non-nil for the ":n" alias a Lambda substitutes in
}

func (v *variable) String() string {
	if v.deBruijn != nil {
		return fmt.Sprintf(":%d", *v.deBruijn)
	}
	prefix := "$"
	if v.meta {
		prefix = "$$"
	}
	return prefix + v.name
}

func (v *variable) Equal(other Atom) bool {
	o, ok := other.(*variable)
	if !ok || !v.theType.Equal(o.theType) || v.meta != o.meta {
		return false
	}
	if v.deBruijn != nil || o.deBruijn != nil {
		return v.deBruijn != nil && o.deBruijn != nil && *v.deBruijn == *o.deBruijn
	}
	return v.name == o.name
}

// Name returns the variable's name (empty for a De Bruijn alias).
func (v *variable) Name() string { return v.name }

// Guard returns the optional guard atom, or nil.
func (v *variable) Guard() Atom { return v.guard }

// Labels returns the variable's label set.
func (v *variable) Labels() []string { return append([]string(nil), v.labels...) }

// IsMeta reports the meta flag.
func (v *variable) IsMeta() bool { return v.meta }

// DeBruijnAlias reports the De Bruijn index this variable aliases, and
// whether it is in fact a De Bruijn alias rather than a named variable.
func (v *variable) DeBruijnAlias() (int, bool) {
	if v.deBruijn == nil {
		return 0, false
	}
	return *v.deBruijn, true
}

// Variable is the exported accessor interface for the Variable Atom
// variant, letting callers outside this package (the matcher, the lambda
// machinery) reach its fields without a type assertion on an unexported
// type.
type Variable interface {
	Atom
	Name() string
	Guard() Atom
	Labels() []string
	IsMeta() bool
	DeBruijnAlias() (int, bool)
}

// VariableOption configures NewVariable.
type VariableOption func(*variable)

// WithGuard attaches a guard atom, rewritten and required to be true under
// the proposed binding before the variable is considered bound (spec
// §4.1).
func WithGuard(guard Atom) VariableOption { return func(v *variable) { v.guard = guard } }

// WithLabels attaches label tags, each a contract the matched subject must
// satisfy via the label registry (spec §4.1, §9).
func WithLabels(labels ...string) VariableOption {
	return func(v *variable) { v.labels = append([]string(nil), labels...) }
}

// WithMeta marks the variable as a meta-variable.
func WithMeta() VariableOption { return func(v *variable) { v.meta = true } }

// NewVariable constructs a named Variable of the given type.
func NewVariable(name string, typ Atom, opts ...VariableOption) Variable {
	v := &variable{name: name}
	for _, opt := range opts {
		opt(v)
	}
	v.base = base{
		kind:    KindVariable,
		theType: typ,
		term:    !v.meta,
	}
	v.hash = hashCombine(hashString("Variable"), hashString(name), typ.Hash(), boolHash(v.meta))
	v.simHash = hashCombine(hashString("Variable"), typ.Hash())
	return v
}

// NewDeBruijnVariable constructs the fresh ":n" variable a Lambda
// substitutes for its bound parameter (spec §4.7). It carries the same
// type, guard, and labels as the original bound variable.
func NewDeBruijnVariable(n int, typ Atom, opts ...VariableOption) Variable {
	v := &variable{deBruijn: &n}
	for _, opt := range opts {
		opt(v)
	}
	v.base = base{
		kind:     KindVariable,
		theType:  typ,
		term:     !v.meta,
		deBruijn: n,
	}
	v.hash = hashCombine(hashString("DeBruijnVariable"), uint64(n), typ.Hash())
	v.simHash = hashCombine(hashString("DeBruijnVariable"), typ.Hash())
	return v
}

func boolHash(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// IsVariable reports whether a is a Variable atom (bound or not is not
// distinguished here — that is a property of Bindings, not of the atom).
func IsVariable(a Atom) bool {
	_, ok := a.(Variable)
	return ok
}

// IsBareVariable reports whether a is a plain named (non-De-Bruijn)
// variable — the shape rule addition must reject as a pattern (spec §4.5,
// §6 BindablePatternException).
func IsBareVariable(a Atom) bool {
	v, ok := a.(Variable)
	if !ok {
		return false
	}
	_, isDeBruijn := v.DeBruijnAlias()
	return !isDeBruijn
}
