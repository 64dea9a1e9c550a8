// Package config holds engine-wide tunables, following the teacher's
// StrategyConfig/DefaultStrategyConfig convention (strategy.go) rather than
// a config-file library: no such library appears anywhere in the
// retrieval pack for a project this shape (see DESIGN.md).
package config

import "time"

// Config holds the handful of engine tunables named by the spec: the
// rewrite budget and timeout (§5), whether literal patterns may be used as
// rule patterns (§4.5 rule addition), whether descend (recursive child
// rewriting to a full fixpoint) runs at all (§4.5 rewrite_once),
// and whether ruleset references must be pre-declared (§6
// NoSuchRulesetException).
type Config struct {
	// RewriteBudget is the default per-top-level-rewrite step limit.
	// Negative means unlimited.
	RewriteBudget int64

	// Timeout is the default per-top-level-rewrite deadline.
	Timeout time.Duration

	// AllowLiteralRules permits rule patterns that are bare literals.
	AllowLiteralRules bool

	// FullDescend, when true, rewrites children to a fixpoint during
	// rewrite_once's descend step; when false, the descend step is skipped
	// and children are not rewritten at all. There is no single-pass child
	// rewriting mode.
	FullDescend bool

	// StrictRulesets requires every ruleset name referenced by a rule or a
	// RulesetRef to have been declared first; otherwise references to
	// undeclared rulesets raise NoSuchRulesetError.
	StrictRulesets bool

	// MaxLambdaDepth bounds nested lambda-application call depth.
	MaxLambdaDepth int
}

// Option mutates a Config during construction.
type Option func(*Config)

// WithRewriteBudget overrides RewriteBudget.
func WithRewriteBudget(n int64) Option { return func(c *Config) { c.RewriteBudget = n } }

// WithTimeout overrides Timeout.
func WithTimeout(d time.Duration) Option { return func(c *Config) { c.Timeout = d } }

// WithAllowLiteralRules overrides AllowLiteralRules.
func WithAllowLiteralRules(b bool) Option { return func(c *Config) { c.AllowLiteralRules = b } }

// WithFullDescend overrides FullDescend.
func WithFullDescend(b bool) Option { return func(c *Config) { c.FullDescend = b } }

// WithStrictRulesets overrides StrictRulesets.
func WithStrictRulesets(b bool) Option { return func(c *Config) { c.StrictRulesets = b } }

// WithMaxLambdaDepth overrides MaxLambdaDepth.
func WithMaxLambdaDepth(n int) Option { return func(c *Config) { c.MaxLambdaDepth = n } }

// Default returns the spec's defaults: a 10,000,000-step budget, a 10s
// timeout, literal rules disallowed, full-fixpoint descend, and
// non-strict ruleset references.
func Default(opts ...Option) *Config {
	c := &Config{
		RewriteBudget:     10_000_000,
		Timeout:           10 * time.Second,
		AllowLiteralRules: false,
		FullDescend:       true,
		StrictRulesets:    false,
		MaxLambdaDepth:    4096,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
