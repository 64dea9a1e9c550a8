// Package elctx implements the context container spec §4.9 describes: the
// three mutable slots every declaration and rewrite ultimately reads from
// or writes to, plus the routing a bare Declare(atom) call performs over
// them.
package elctx

import (
	"github.com/elision-go/elision/internal/config"
	"github.com/elision-go/elision/internal/errs"
	"github.com/elision-go/elision/internal/labelreg"
	"github.com/elision-go/elision/pkg/atom"
	"github.com/elision-go/elision/pkg/operator"
	"github.com/elision-go/elision/pkg/rewrite"
)

// Context owns the operator library, the rule library (which in turn owns
// the ruleset registry and label registry), and the top-level bindings a
// running session accumulates (spec §4.9: "the context owns three mutable
// slots: the top-level bindings, the operator library, the rule library").
type Context struct {
	Config    *config.Config
	Operators *operator.Library
	Rules     *rewrite.Library
	Bindings  atom.Bindings
}

// New constructs a Context with fresh, empty libraries. A nil cfg uses
// config.Default().
func New(cfg *config.Config) (*Context, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	ops := operator.NewLibrary()
	rules, err := rewrite.NewLibrary(cfg, nil, ops, labelreg.New(), nil)
	if err != nil {
		return nil, err
	}
	return &Context{Config: cfg, Operators: ops, Rules: rules, Bindings: atom.NewBindings()}, nil
}

// Declare routes a to the slot its variant owns (spec §4.9): an Operator
// is declared into the operator library; a Symbol names a ruleset to
// enable; a RewriteRule is added to the rule library; a `var -> value`
// MapPair binds a name at the top level. Anything else is rejected — the
// context has no slot for it.
func (c *Context) Declare(a atom.Atom) error {
	switch {
	case declareAsOperator(c, a):
		return nil
	case declareAsRuleset(c, a):
		return nil
	case declareAsRule(c, a):
		return nil
	}
	if ok, err := declareAsBinding(c, a); ok {
		return err
	}
	return &errs.SpecialFormError{Reason: "don't know how to declare " + a.String()}
}

func declareAsOperator(c *Context, a atom.Atom) bool {
	op, ok := atom.AsOperator(a)
	if !ok {
		return false
	}
	c.Operators.Declare(op)
	return true
}

func declareAsRuleset(c *Context, a atom.Atom) bool {
	name, ok := atom.AsSymbolName(a)
	if !ok {
		return false
	}
	// A Symbol names a ruleset whose membership this declaration enables
	// (spec §4.9 "Symbols to ruleset declarations"); an unrecognized name
	// is registered on first use rather than rejected, matching
	// Rewrite.AddRule's non-strict ruleset handling.
	if _, ok := c.Rules.Rulesets().Bit(name); !ok {
		if _, err := c.Rules.Rulesets().Declare(name); err != nil {
			return false
		}
	}
	_ = c.Rules.EnableRuleset(name)
	return true
}

func declareAsRule(c *Context, a atom.Atom) bool {
	rule, ok := atom.AsRewriteRule(a)
	if !ok {
		return false
	}
	// The rule already carries resolved RulesetRefs (built by whoever
	// constructed it, e.g. pkg/special's "rule" tag); c.Rules.AddRuleAtom
	// indexes it directly rather than re-resolving ruleset names.
	return c.Rules.AddRuleAtom(rule) == nil
}

func declareAsBinding(c *Context, a atom.Atom) (bool, error) {
	mp, ok := atom.AsMapPair(a)
	if !ok {
		return false, nil
	}
	name, ok := atom.AsSymbolName(mp.Left())
	if !ok {
		if v, ok := mp.Left().(atom.Variable); ok {
			name = v.Name()
		} else {
			return true, &errs.SpecialFormError{Reason: "binding's left side must name a variable or symbol"}
		}
	}
	c.Bindings = c.Bindings.Bind(name, mp.Right())
	return true, nil
}
