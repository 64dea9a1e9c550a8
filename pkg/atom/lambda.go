package atom

// lambda is the Lambda Atom variant (spec §3.3, §4.7): a bound variable and
// a body, stored with the body already rewritten to use a fresh
// De-Bruijn-indexed variable (":n") in place of the original bound name,
// so that two lambdas differing only in the bound identifier are
// structurally Equal (spec §8 testable property 6).
type lambda struct {
	base
	param Variable // the fresh De Bruijn alias variable, not the caller's name
	body  Atom
	fixed bool // true iff the body does not depend on the parameter
}

func (l *lambda) String() string {
	return "(\\" + l.param.String() + "." + l.body.String() + ")"
}

func (l *lambda) Equal(other Atom) bool {
	o, ok := other.(*lambda)
	return ok && l.param.Equal(o.param) && l.body.Equal(o.body)
}

// Lambda is the exported accessor interface.
type Lambda interface {
	Atom
	Param() Variable
	Body() Atom
	Fixed() bool
}

func (l *lambda) Param() Variable { return l.param }
func (l *lambda) Body() Atom      { return l.body }
func (l *lambda) Fixed() bool     { return l.fixed }

// NewLambda constructs a Lambda from a caller-named bound variable and a
// body expressed in terms of that name. Per spec §4.7:
//  1. n = body.DeBruijnIndex() + 1
//  2. a fresh variable ":n" is built with the same type/guard/labels as v
//  3. the body is rewritten under v.Name() -> ":n"
//  4. if that rewrite changed nothing, the lambda is "fixed" (body does not
//     depend on the parameter)
func NewLambda(v Variable, body Atom) (Lambda, error) {
	n := body.DeBruijnIndex() + 1
	var opts []VariableOption
	if g := v.Guard(); g != nil {
		opts = append(opts, WithGuard(g))
	}
	if labels := v.Labels(); len(labels) > 0 {
		opts = append(opts, WithLabels(labels...))
	}
	if v.IsMeta() {
		opts = append(opts, WithMeta())
	}
	alias := NewDeBruijnVariable(n, v.Type(), opts...)

	newBody := SubstituteBindings(body, func(name string) (Atom, bool) {
		if name == v.Name() {
			return alias, true
		}
		return nil, false
	})
	fixed := newBody.Equal(body) && !containsVariableNamed(body, v.Name())

	return buildLambda(alias, newBody, fixed), nil
}

func buildLambda(param Variable, body Atom, fixed bool) *lambda {
	l := &lambda{param: param, body: body, fixed: fixed}
	summary := newChildSummary()
	summary.add(param)
	summary.add(body)
	l.base = base{
		kind:     KindLambda,
		theType:  ANY,
		depth:    summary.depth(),
		deBruijn: summary.maxDeBruijn,
		constant: summary.allConstant,
		term:     summary.allTerm,
	}
	l.hash = hashCombine(hashString("Lambda"), param.Hash(), body.Hash())
	l.simHash = hashCombine(hashString("Lambda"), body.SimHash())
	return l
}

// rebuildLambda reconstructs a Lambda after SubstituteBindings has walked
// its body for some other (free) variable substitution. The parameter's De
// Bruijn alias does not change — only the body's other free occurrences
// might — so this skips the name-substitution step NewLambda performs and
// just recomputes the derived fields.
func rebuildLambda(orig *lambda, newBody Atom) *lambda {
	return buildLambda(orig.param, newBody, orig.fixed && newBody.Equal(orig.body))
}

// WithBody reconstructs l with its body replaced, leaving the parameter's
// De Bruijn alias untouched. Exported for the rewrite driver's descent into
// a Lambda's body (spec §4.5 "descend: parameter and body"), which rewrites
// the body in place rather than through name/index substitution and so
// needs the same no-realias reconstruction rebuildLambda performs
// internally.
func WithBody(l Lambda, newBody Atom) Lambda {
	if ll, ok := l.(*lambda); ok {
		return rebuildLambda(ll, newBody)
	}
	return l
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func containsVariableNamed(a Atom, name string) bool {
	if name == "" {
		return false
	}
	switch v := a.(type) {
	case Variable:
		return v.Name() == name
	case Lambda:
		return containsVariableNamed(v.Body(), name)
	case SimpleApply:
		return containsVariableNamed(v.Op(), name) || containsVariableNamed(v.Arg(), name)
	case OpApply:
		for _, e := range v.Args().Elements() {
			if containsVariableNamed(e, name) {
				return true
			}
		}
		return false
	case AtomSeq:
		for _, e := range v.Elements() {
			if containsVariableNamed(e, name) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// AsLambda type-asserts a to the Lambda accessor interface.
func AsLambda(a Atom) (Lambda, bool) {
	l, ok := a.(*lambda)
	return l, ok
}
