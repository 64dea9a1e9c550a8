// Package labelreg implements the extensibility table of named predicates
// spec §4.1 requires for variable labels: "each label is a contract the
// subject must meet; implementation is an extensibility table of named
// predicates." A Context (pkg/context) owns one Registry and consults it
// whenever a variable carrying labels is tentatively bound during
// matching.
package labelreg

import "fmt"

// Predicate reports whether subject, an opaque value, satisfies a named
// label's contract. pkg/match calls through this with the matched atom
// itself typed as interface{} to avoid labelreg depending on pkg/atom.
type Predicate func(subject interface{}) bool

// Registry maps label names to their predicates.
type Registry struct {
	predicates map[string]Predicate
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{predicates: make(map[string]Predicate)}
}

// Register adds or replaces the predicate for name.
func (r *Registry) Register(name string, pred Predicate) {
	r.predicates[name] = pred
}

// Check reports whether subject satisfies the named label. An unregistered
// label name is an error, not a silent pass — a typo in a rule's label
// list must not be mistaken for "always satisfied".
func (r *Registry) Check(name string, subject interface{}) (bool, error) {
	pred, ok := r.predicates[name]
	if !ok {
		return false, fmt.Errorf("labelreg: no predicate registered for label %q", name)
	}
	return pred(subject), nil
}

// CheckAll reports whether subject satisfies every named label, short
// circuiting on the first failure or lookup error.
func (r *Registry) CheckAll(names []string, subject interface{}) (bool, error) {
	for _, name := range names {
		ok, err := r.Check(name, subject)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
