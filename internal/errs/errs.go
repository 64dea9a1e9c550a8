// Package errs defines the typed error taxonomy surfaced at the core's
// boundary (spec §6). Errors carry an optional source location and a
// human-readable message; validation paths that can fail on more than one
// field at once aggregate with hashicorp/go-multierror rather than
// reporting only the first failure.
package errs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Loc is a source location, independent of any atom representation so this
// package stays leaf-level (no dependency on pkg/atom).
type Loc struct {
	File string
	Line int
	Col  int
}

func (l *Loc) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// located is embedded by every typed error to carry an optional Loc.
type located struct {
	Loc *Loc
}

func (e located) locPrefix() string {
	if e.Loc == nil {
		return ""
	}
	return e.Loc.String() + ": "
}

// IllegalPropertiesSpecificationError reports an AlgProp that violates the
// "non-associative implies no idempotent/absorber/identity" invariant.
type IllegalPropertiesSpecificationError struct {
	located
	Reason string
}

func (e *IllegalPropertiesSpecificationError) Error() string {
	return e.locPrefix() + "illegal algebraic properties specification: " + e.Reason
}

// NewIllegalPropertiesSpecificationError constructs the error, optionally
// aggregating several violated sub-conditions via go-multierror.
func NewIllegalPropertiesSpecificationError(loc *Loc, reasons ...string) error {
	if len(reasons) == 0 {
		reasons = []string{"non-associative AlgProp may not set idempotent, absorber, or identity"}
	}
	var merr *multierror.Error
	for _, r := range reasons {
		merr = multierror.Append(merr, &IllegalPropertiesSpecificationError{located{loc}, r})
	}
	return merr.ErrorOrNil()
}

// ArgumentListError reports an operator applied with the wrong arity or
// argument types, naming the offending parameter index.
type ArgumentListError struct {
	located
	Operator string
	Index    int
	Reason   string
}

func (e *ArgumentListError) Error() string {
	return fmt.Sprintf("%sargument list error in %s at parameter %d: %s", e.locPrefix(), e.Operator, e.Index, e.Reason)
}

// NewArgumentListError aggregates one or more parameter-position failures.
func NewArgumentListError(loc *Loc, op string, failures map[int]string) error {
	var merr *multierror.Error
	for idx, reason := range failures {
		merr = multierror.Append(merr, &ArgumentListError{located{loc}, op, idx, reason})
	}
	return merr.ErrorOrNil()
}

// NoSuchRulesetError reports a reference to an undeclared ruleset while the
// rule library is running in strict mode.
type NoSuchRulesetError struct {
	located
	Name string
}

func (e *NoSuchRulesetError) Error() string {
	return e.locPrefix() + "no such ruleset: " + e.Name
}

// IdentityRuleError reports a rejected rule whose pattern and rewrite are
// structurally identical.
type IdentityRuleError struct {
	located
	Pattern string
}

func (e *IdentityRuleError) Error() string {
	return e.locPrefix() + "identity rule rejected: " + e.Pattern + " rewrites to itself"
}

// BindablePatternError reports a rejected rule whose pattern is a bare
// variable (it would match, and rewrite, every atom).
type BindablePatternError struct {
	located
	Pattern string
}

func (e *BindablePatternError) Error() string {
	return e.locPrefix() + "bindable pattern rejected: " + e.Pattern + " is a bare variable"
}

// LiteralPatternError reports a rejected rule whose pattern is a literal
// while literal-rule rewriting is disabled.
type LiteralPatternError struct {
	located
	Pattern string
}

func (e *LiteralPatternError) Error() string {
	return e.locPrefix() + "literal pattern rejected: " + e.Pattern + " (literal-rule rewriting disabled)"
}

// LambdaVariableMismatchError reports an argument that fails to match a
// lambda's parameter pattern (including a type mismatch).
type LambdaVariableMismatchError struct {
	located
	Reason string
}

func (e *LambdaVariableMismatchError) Error() string {
	return e.locPrefix() + "lambda argument mismatch: " + e.Reason
}

// LambdaUnboundedRecursionError reports a lambda application whose nested
// rewrite depth exceeded the engine's configured bound.
type LambdaUnboundedRecursionError struct {
	located
	Depth int
	Chain []string
}

func (e *LambdaUnboundedRecursionError) Error() string {
	return fmt.Sprintf("%sunbounded lambda recursion detected at depth %d: %v", e.locPrefix(), e.Depth, e.Chain)
}

// SpecialFormError reports a malformed special-form construction: a
// missing required key, a disallowed key, an either-of-two violation, or a
// value of the wrong type.
type SpecialFormError struct {
	located
	Tag    string
	Reason string
}

func (e *SpecialFormError) Error() string {
	return fmt.Sprintf("%smalformed special form %q: %s", e.locPrefix(), e.Tag, e.Reason)
}

// CacheError reports a memoization cache entry present under the expected
// key but holding a value of the wrong type — treated as an implementation
// bug, never a user-facing condition.
type CacheError struct {
	located
	Reason string
}

func (e *CacheError) Error() string {
	return e.locPrefix() + "cache consistency error: " + e.Reason
}

// TimedOutError is not normally constructed directly — a timeout is
// reported as a match Fail with reason "Timed out" (spec §7) — but
// operator application and the rewrite driver return it when they are
// entered after the engine has already timed out.
type TimedOutError struct {
	located
}

func (e *TimedOutError) Error() string {
	return e.locPrefix() + "Timed out"
}
