package errs

import (
	"strings"
	"testing"
)

func TestNewIllegalPropertiesSpecificationErrorAggregates(t *testing.T) {
	err := NewIllegalPropertiesSpecificationError(nil, "sets idempotent", "sets absorber")
	if err == nil {
		t.Fatal("expected a non-nil aggregated error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "sets idempotent") || !strings.Contains(msg, "sets absorber") {
		t.Fatalf("expected both reasons in aggregated message, got: %s", msg)
	}
}

func TestNewIllegalPropertiesSpecificationErrorDefaultReason(t *testing.T) {
	err := NewIllegalPropertiesSpecificationError(nil)
	if err == nil {
		t.Fatal("expected a default reason when none is given")
	}
}

func TestNewArgumentListErrorReportsParameterIndex(t *testing.T) {
	err := NewArgumentListError(nil, "plus", map[int]string{1: "wrong type"})
	if err == nil || !strings.Contains(err.Error(), "parameter 1") {
		t.Fatalf("expected the parameter index in the error message, got: %v", err)
	}
}

func TestLocPrefixesMessage(t *testing.T) {
	loc := &Loc{File: "rules.elision", Line: 3, Col: 5}
	err := &IdentityRuleError{located{loc}, "$x"}
	if !strings.HasPrefix(err.Error(), "rules.elision:3:5: ") {
		t.Fatalf("expected location prefix, got: %s", err.Error())
	}
}

func TestNilLocProducesNoPrefix(t *testing.T) {
	err := &BindablePatternError{located{nil}, "$x"}
	want := "bindable pattern rejected: $x is a bare variable"
	if err.Error() != want {
		t.Fatalf("expected no location prefix when Loc is nil, got: %s", err.Error())
	}
}
