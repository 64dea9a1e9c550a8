package atom

// rootType is the single-case implementation backing every named root type
// and the distinguished TypeUniverse singleton (spec §3.13).
type rootType struct {
	base
	name string
}

func (r *rootType) String() string { return r.name }

func (r *rootType) Equal(other Atom) bool {
	o, ok := other.(*rootType)
	return ok && o.name == r.name
}

func newRootType(name string, selfTyped bool) *rootType {
	r := &rootType{name: name}
	r.kind = KindRootType
	r.constant = true
	r.term = true
	r.hash = hashString("RootType:" + name)
	r.simHash = r.hash
	if selfTyped {
		r.theType = r
	}
	return r
}

// TypeUniverse is the distinguished singleton root type that types itself
// (spec §3.13).
var TypeUniverse = newRootType("TypeUniverse", true)

// Named root types, all typed by TypeUniverse.
var (
	INTEGER  = newNamedRootType("INTEGER")
	STRING   = newNamedRootType("STRING")
	SYMBOL   = newNamedRootType("SYMBOL")
	BOOLEAN  = newNamedRootType("BOOLEAN")
	FLOAT    = newNamedRootType("FLOAT")
	ANY      = newNamedRootType("ANY")
	NONE     = newNamedRootType("NONE")
	BINDING  = newNamedRootType("BINDING")
	OPREF    = newNamedRootType("OPREF")
	RSREF    = newNamedRootType("RSREF")
	RULETYPE = newNamedRootType("RULETYPE")
	STRATEGY = newNamedRootType("STRATEGY")
)

func newNamedRootType(name string) *rootType {
	r := newRootType(name, false)
	r.theType = TypeUniverse
	return r
}

// IsRootType reports whether a is one of the named root types or
// TypeUniverse itself — used by the matcher to skip type matching for root
// types and ANY (spec §4.1 "try_match first matches types (unless the
// pattern is a root type or ANY)").
func IsRootType(a Atom) bool {
	_, ok := a.(*rootType)
	return ok
}

// IsAny reports whether a is the ANY root type.
func IsAny(a Atom) bool {
	r, ok := a.(*rootType)
	return ok && r == ANY
}
