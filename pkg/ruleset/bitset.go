// Package ruleset implements the named-ruleset bitset spec §4.6 describes:
// rulesets are named bit positions, bit 0 ("DEFAULT") enabled on
// construction, toggled by name, and compared against a rule's own
// membership bitset to decide eligibility during rewriting.
//
// The bitset width is fixed at uint64 (64 named rulesets) — see DESIGN.md's
// Open Question decision: the teacher's own fixed-width bitset domains
// (model.NewBitSetDomain) set the precedent for a deliberately bounded
// representation over an unbounded []uint64, and 64 rulesets comfortably
// covers any hand-authored rule library.
package ruleset

import "github.com/elision-go/elision/internal/errs"

// Bitset is a set of ruleset membership bits.
type Bitset uint64

// DefaultBit is bit 0, the ruleset enabled by construction (spec §4.6
// "bit 0 = DEFAULT, which is enabled on construction").
const DefaultBit uint = 0

// Has reports whether bit is set.
func (b Bitset) Has(bit uint) bool { return b&(1<<bit) != 0 }

// Set returns a copy of b with bit set.
func (b Bitset) Set(bit uint) Bitset { return b | (1 << bit) }

// Clear returns a copy of b with bit cleared.
func (b Bitset) Clear(bit uint) Bitset { return b &^ (1 << bit) }

// Intersects reports whether b and other share any bit — the eligibility
// test spec §4.6 describes: "eligible when rule.bits & active != empty".
func (b Bitset) Intersects(other Bitset) bool { return b&other != 0 }

// Registry maps ruleset names to bit positions and tracks which bits are
// currently active. maxBits bounds the table at the width of Bitset.
type Registry struct {
	bitOf   map[string]uint
	names   []string
	active  Bitset
	nextBit uint
}

const maxBits = 64

// NewRegistry constructs a Registry with DEFAULT pre-declared and active.
func NewRegistry() *Registry {
	r := &Registry{bitOf: make(map[string]uint)}
	bit, _ := r.declare("DEFAULT")
	r.active = r.active.Set(bit)
	return r
}

// Declare registers a new named ruleset, returning its bit position. A
// ruleset already declared returns its existing bit position unchanged.
func (r *Registry) Declare(name string) (uint, error) {
	return r.declare(name)
}

func (r *Registry) declare(name string) (uint, error) {
	if bit, ok := r.bitOf[name]; ok {
		return bit, nil
	}
	if r.nextBit >= maxBits {
		return 0, &errs.IllegalPropertiesSpecificationError{Reason: "ruleset registry exhausted its 64-bit capacity"}
	}
	bit := r.nextBit
	r.nextBit++
	r.bitOf[name] = bit
	r.names = append(r.names, name)
	return bit, nil
}

// Bit reports the bit position of a declared ruleset name, and whether it
// is declared at all. pkg/rewrite raises errs.NoSuchRulesetError when ok
// is false and config.StrictRulesets is set.
func (r *Registry) Bit(name string) (uint, bool) {
	bit, ok := r.bitOf[name]
	return bit, ok
}

// Enable turns a named ruleset's bit on in the active set.
func (r *Registry) Enable(name string) error {
	bit, ok := r.bitOf[name]
	if !ok {
		return &errs.NoSuchRulesetError{Name: name}
	}
	r.active = r.active.Set(bit)
	return nil
}

// Disable turns a named ruleset's bit off in the active set.
func (r *Registry) Disable(name string) error {
	bit, ok := r.bitOf[name]
	if !ok {
		return &errs.NoSuchRulesetError{Name: name}
	}
	r.active = r.active.Clear(bit)
	return nil
}

// Active reports the current active-ruleset bitset.
func (r *Registry) Active() Bitset { return r.active }

// Names reports every declared ruleset name.
func (r *Registry) Names() []string { return append([]string(nil), r.names...) }
