package config

import (
	"testing"
	"time"
)

func TestDefaultMatchesSpecDefaults(t *testing.T) {
	c := Default()
	if c.RewriteBudget != 10_000_000 {
		t.Fatalf("expected default rewrite budget 10,000,000, got %d", c.RewriteBudget)
	}
	if c.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout 10s, got %v", c.Timeout)
	}
	if c.AllowLiteralRules {
		t.Fatal("literal rule patterns should be disallowed by default")
	}
	if !c.FullDescend {
		t.Fatal("descend should run to a full fixpoint by default")
	}
	if c.StrictRulesets {
		t.Fatal("ruleset references should not require pre-declaration by default")
	}
}

func TestOptionsOverrideDefaults(t *testing.T) {
	c := Default(
		WithRewriteBudget(5),
		WithTimeout(time.Minute),
		WithAllowLiteralRules(true),
		WithFullDescend(false),
		WithStrictRulesets(true),
		WithMaxLambdaDepth(10),
	)

	if c.RewriteBudget != 5 {
		t.Fatalf("expected overridden budget 5, got %d", c.RewriteBudget)
	}
	if c.Timeout != time.Minute {
		t.Fatalf("expected overridden timeout 1m, got %v", c.Timeout)
	}
	if !c.AllowLiteralRules {
		t.Fatal("expected literal rules enabled")
	}
	if c.FullDescend {
		t.Fatal("expected descend to be disabled")
	}
	if !c.StrictRulesets {
		t.Fatal("expected strict ruleset references")
	}
	if c.MaxLambdaDepth != 10 {
		t.Fatalf("expected overridden max lambda depth 10, got %d", c.MaxLambdaDepth)
	}
}
