// Package engine holds the process-local state that spec §5 requires to be
// "represent[ed] explicitly as part of the engine context passed down, not
// as module-level variables": the current rewrite deadline, the
// rewrite-timed-out flag, the remaining rewrite budget, and the lambda
// call-depth counter used for unbounded-recursion detection.
//
// An Engine is created once per top-level rewrite call (mirroring the
// teacher's per-Goal context.Context in core.go) and threaded explicitly
// through the matcher, the operator-application pipeline, and the rewrite
// driver. Nested invocations (native handlers invoking rewrite again) save
// and restore the deadline via Engine.WithDeadline, matching spec §4.4 step
// 11 / §5's "operator application saves and restores the prior deadline".
package engine

import (
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultTimeout is the default per-top-level-rewrite deadline (spec §5:
// "e.g., current wall-clock + 10s; implementation-defined").
const DefaultTimeout = 10 * time.Second

// DefaultBudget is the default rewrite-limit ("library holds an integer
// limit (default 10,000,000; negative = unlimited)").
const DefaultBudget = 10_000_000

// DefaultMaxLambdaDepth bounds lambda-application call depth before
// LambdaUnboundedRecursionError is raised (see DESIGN.md: Go cannot recover
// from a genuine stack overflow, so this explicit counter stands in for the
// spec's "stack-overflow trapping").
const DefaultMaxLambdaDepth = 4096

// Engine is the mutable, per-top-level-call state shared by the matcher,
// the operator-application pipeline, and the rewrite driver.
type Engine struct {
	Log hclog.Logger

	deadline  time.Time
	timedOut  bool
	budget    int64
	lambdaDep int
	maxLambda int
}

// New creates an Engine with the given deadline and rewrite budget. A zero
// deadline means "no deadline" (never times out). A negative budget means
// unlimited rewrites.
func New(deadline time.Time, budget int64, log hclog.Logger) *Engine {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Engine{
		Log:       log,
		deadline:  deadline,
		budget:    budget,
		maxLambda: DefaultMaxLambdaDepth,
	}
}

// NewDefault creates an Engine with DefaultTimeout and DefaultBudget.
func NewDefault(log hclog.Logger) *Engine {
	return New(time.Now().Add(DefaultTimeout), DefaultBudget, log)
}

// TimedOut reports whether the deadline has passed or the flag was set
// directly. Every suspension point (match iterator Next, rewrite, operator
// application entry) must consult this before doing more work.
func (e *Engine) TimedOut() bool {
	if e.timedOut {
		return true
	}
	if !e.deadline.IsZero() && time.Now().After(e.deadline) {
		e.timedOut = true
	}
	return e.timedOut
}

// Cancel sets the timed-out flag unconditionally. Exposed for tests and for
// hosts that want an out-of-band stop — the spec otherwise treats the
// deadline as the sole cancellation primitive.
func (e *Engine) Cancel() {
	e.timedOut = true
}

// WithDeadline runs fn with a new deadline installed, then restores the
// engine's previous deadline and timed-out flag on return. This is what
// spec §4.4 step 11 / §5 call "operator application saves and restores the
// prior deadline so that native-handler-invoked nested rewrites do not
// permanently alter it."
func (e *Engine) WithDeadline(d time.Time, fn func()) {
	prevDeadline, prevTimedOut := e.deadline, e.timedOut
	e.deadline = d
	e.timedOut = false
	fn()
	e.deadline, e.timedOut = prevDeadline, prevTimedOut
}

// RemainingBudget reports the remaining rewrite budget. Negative means
// unlimited.
func (e *Engine) RemainingBudget() int64 {
	return e.budget
}

// ConsumeBudget decrements the remaining budget by one rewrite step and
// reports whether that step was within budget: it reports false only when
// the budget was already exhausted before the call. A negative (unlimited)
// budget is left untouched and always reports true.
func (e *Engine) ConsumeBudget() bool {
	if e.budget < 0 {
		return true
	}
	if e.budget == 0 {
		return false
	}
	e.budget--
	return e.budget > 0 || e.budget == 0
}

// EnterLambda increments the lambda call-depth counter, returning false
// (without incrementing) once the configured maximum is exceeded.
func (e *Engine) EnterLambda() bool {
	if e.lambdaDep >= e.maxLambda {
		return false
	}
	e.lambdaDep++
	return true
}

// ExitLambda decrements the lambda call-depth counter.
func (e *Engine) ExitLambda() {
	if e.lambdaDep > 0 {
		e.lambdaDep--
	}
}

// LambdaDepth reports the current lambda call depth.
func (e *Engine) LambdaDepth() int {
	return e.lambdaDep
}

// SetMaxLambdaDepth overrides DefaultMaxLambdaDepth.
func (e *Engine) SetMaxLambdaDepth(n int) {
	e.maxLambda = n
}
