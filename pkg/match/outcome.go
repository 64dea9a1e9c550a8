package match

import "github.com/elision-go/elision/pkg/atom"

// Outcome is try_match's result (spec §4.1): exactly one of Fail, Match, or
// Many.
type Outcome interface {
	isOutcome()
}

// Fail reports a failed match, with an optional chained cause for
// diagnostics (spec §4.1 "Fail(reason, pattern, subject, cause?)").
type Fail struct {
	Reason  string
	Pattern atom.Atom
	Subject atom.Atom
	Cause   error
}

func (Fail) isOutcome() {}

func (f Fail) Error() string {
	msg := f.Reason
	if f.Pattern != nil && f.Subject != nil {
		msg += ": " + f.Pattern.String() + " vs " + f.Subject.String()
	}
	if f.Cause != nil {
		msg += " (" + f.Cause.Error() + ")"
	}
	return msg
}

// NewFail constructs a Fail outcome.
func NewFail(reason string, pattern, subject atom.Atom, cause error) Outcome {
	return Fail{Reason: reason, Pattern: pattern, Subject: subject, Cause: cause}
}

// TimedOut is the Fail reason every suspension point uses once the
// engine's deadline has passed (spec §4.2, §7).
const TimedOut = "Timed out"

// Match reports exactly one augmenting binding.
type Match struct {
	Bindings atom.Bindings
}

func (Match) isOutcome() {}

// Many reports a lazy iterator of augmenting bindings.
type Many struct {
	Iter MatchIter
}

func (Many) isOutcome() {}

// MatchIter is a synchronous pull-based iterator of Bindings, used instead
// of the teacher's goroutine+channel Stream (core.go) because spec §5
// requires a single cooperatively-scheduled thread of control with an
// explicit, externally observable timeout rather than concurrent
// goroutines racing a context cancellation.
type MatchIter interface {
	// Next returns the next binding and true, or a zero value and false
	// once the iterator is exhausted.
	Next() (atom.Bindings, bool)
}

// emptyIter never yields anything.
type emptyIter struct{}

func (emptyIter) Next() (atom.Bindings, bool) { return atom.Bindings{}, false }

// singleIter yields exactly one binding.
type singleIter struct {
	b    atom.Bindings
	done bool
}

func (s *singleIter) Next() (atom.Bindings, bool) {
	if s.done {
		return atom.Bindings{}, false
	}
	s.done = true
	return s.b, true
}

// sliceIter yields the bindings of a materialized slice in order.
type sliceIter struct {
	items []atom.Bindings
	pos   int
}

func (s *sliceIter) Next() (atom.Bindings, bool) {
	if s.pos >= len(s.items) {
		return atom.Bindings{}, false
	}
	b := s.items[s.pos]
	s.pos++
	return b, true
}

// AsIter normalizes any Outcome into a MatchIter: Fail yields nothing,
// Match yields its one binding, Many yields its iterator unchanged.
func AsIter(o Outcome) MatchIter {
	switch v := o.(type) {
	case Fail:
		return emptyIter{}
	case Match:
		return &singleIter{b: v.Bindings}
	case Many:
		return v.Iter
	default:
		return emptyIter{}
	}
}

// bufferedIter replays a fixed prefix of already-pulled bindings before
// resuming an underlying iterator, used by FromIter to give back an
// Outcome after pulling just enough lookahead to classify it.
type bufferedIter struct {
	prefix []atom.Bindings
	pos    int
	rest   MatchIter
}

func (b *bufferedIter) Next() (atom.Bindings, bool) {
	if b.pos < len(b.prefix) {
		v := b.prefix[b.pos]
		b.pos++
		return v, true
	}
	return b.rest.Next()
}

// FromIter normalizes a MatchIter back into the minimal Outcome it
// represents: Fail if empty, Match if it yields exactly one binding, Many
// otherwise. Classifying "exactly one" requires looking one element past
// the first, so FromIter pulls at most two elements of lookahead and
// replays them via bufferedIter; callers that only need Fail vs. anything
// else (most of the sequence matcher) should prefer AsIter/iterating
// directly instead of paying this lookahead cost.
func FromIter(iter MatchIter) Outcome {
	first, ok := iter.Next()
	if !ok {
		return Fail{Reason: "no match"}
	}
	second, ok2 := iter.Next()
	if !ok2 {
		return Match{Bindings: first}
	}
	return Many{Iter: &bufferedIter{prefix: []atom.Bindings{first, second}, rest: iter}}
}
