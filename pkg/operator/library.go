// Package operator implements the operator-application pipeline of spec
// §4.4 and the operator library that resolves an OperatorRef to its full
// Operator declaration.
package operator

import "github.com/elision-go/elision/pkg/atom"

// Library resolves an operator name to its declared Operator. Spec §4.9
// describes the context as owning the operator library as one of its three
// mutable slots, so — unlike atom.Bindings' copy-on-write persistent map —
// Library is a plain mutable registry, grounded on hybrid_registry.go's
// name/ID -> definition table shape but without that file's immutable-clone
// discipline, since the spec itself calls for a single owned, mutated-in-
// place table rather than a value threaded functionally through calls.
type Library struct {
	operators map[string]atom.Operator
}

// NewLibrary constructs an empty operator library.
func NewLibrary() *Library {
	return &Library{operators: make(map[string]atom.Operator)}
}

// Declare registers op under its ref's name, returning its OperatorRef for
// callers to embed in OpApply/SimpleApply atoms. Re-declaring a name
// replaces the previous definition.
func (l *Library) Declare(op atom.Operator) atom.OperatorRef {
	l.operators[op.Ref().Name()] = op
	return op.Ref()
}

// Lookup resolves a name to its declared Operator.
func (l *Library) Lookup(name string) (atom.Operator, bool) {
	op, ok := l.operators[name]
	return op, ok
}

// Names reports every declared operator name.
func (l *Library) Names() []string {
	out := make([]string, 0, len(l.operators))
	for name := range l.operators {
		out = append(out, name)
	}
	return out
}
