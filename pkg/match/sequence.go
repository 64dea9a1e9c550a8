package match

import (
	"fmt"

	"github.com/elision-go/elision/pkg/atom"
)

// SequenceMatcher dispatches an AtomSeq-vs-AtomSeq match on the pattern
// sequence's AlgProp (spec §4.2): positional when neither associative nor
// commutative, permutation-based when commutative only, grouping-based
// when associative only, and both combined when AC.
func SequenceMatcher(ctx *Context, patterns, subjects atom.AtomSeq, binds atom.Bindings, hint atom.OperatorRef) Outcome {
	if ctx.timedOut() {
		return NewFail(TimedOut, patterns, subjects, nil)
	}
	props := patterns.Props()
	pe := patterns.Elements()
	se := subjects.Elements()

	switch {
	case !props.IsAssociative() && !props.IsCommutative():
		if len(pe) != len(se) {
			return NewFail("sequence length mismatch", patterns, subjects, nil)
		}
		return positionalMatchElems(ctx, pe, se, binds)

	case props.IsCommutative() && !props.IsAssociative():
		if len(pe) != len(se) {
			return NewFail("sequence length mismatch", patterns, subjects, nil)
		}
		return commutativeMatch(ctx, pe, se, binds)

	case props.IsAssociative() && !props.IsCommutative():
		se2, err := prepareAssociativeSubjects(props, se, len(pe))
		if err != nil {
			return NewFail(err.Error(), patterns, subjects, err)
		}
		return groupSubjects(ctx, pe, se2, binds, hint, positionalMatchElems)

	default: // AC
		se2, err := prepareAssociativeSubjects(props, se, len(pe))
		if err != nil {
			return NewFail(err.Error(), patterns, subjects, err)
		}
		return groupSubjects(ctx, pe, se2, binds, hint, commutativeMatch)
	}
}

// positionalMatchElems matches two equal-length slices left to right,
// accumulating bindings (spec §4.2 "neither A nor C").
func positionalMatchElems(ctx *Context, pe, se []atom.Atom, binds atom.Bindings) Outcome {
	if len(pe) != len(se) {
		return NewFail("sequence length mismatch", nil, nil, nil)
	}
	outcome := Outcome(Match{binds})
	for i := range pe {
		p, s := pe[i], se[i]
		outcome = ChainToOutcome(outcome, func(b atom.Bindings) Outcome {
			return TryMatch(ctx, p, s, b, nil)
		})
	}
	return outcome
}

// shallowestUnbindableIndex returns the index of the pattern element with
// smallest Depth() among those whose structural root is not a plain
// variable (spec §4.2's unbindable pre-filter), or -1 if every pattern
// element is a bare variable.
func shallowestUnbindableIndex(pe []atom.Atom) int {
	idx := -1
	for i, p := range pe {
		if _, isVar := p.(atom.Variable); isVar {
			continue
		}
		if idx == -1 || p.Depth() < pe[idx].Depth() {
			idx = i
		}
	}
	return idx
}

func removeAt(s []atom.Atom, i int) []atom.Atom {
	out := make([]atom.Atom, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}

// commutativeMatch implements the C-only strategy (spec §4.2): the
// unbindable pre-filter runs first (pruning the search early on failure),
// then the remaining all-bare-variable patterns are matched against the
// remaining subjects by permutation.
func commutativeMatch(ctx *Context, pe, se []atom.Atom, binds atom.Bindings) Outcome {
	if ctx.timedOut() {
		return NewFail(TimedOut, nil, nil, nil)
	}
	if len(pe) != len(se) {
		return NewFail("sequence length mismatch", nil, nil, nil)
	}
	if len(pe) == 0 {
		return Match{binds}
	}

	idx := shallowestUnbindableIndex(pe)
	if idx == -1 {
		return permuteBindable(ctx, pe, se, binds)
	}

	pat := pe[idx]
	restPatterns := removeAt(pe, idx)

	var outcomes []Outcome
	for j, s := range se {
		m := TryMatch(ctx, pat, s, binds, nil)
		if _, isFail := m.(Fail); isFail {
			continue
		}
		restSubjects := removeAt(se, j)
		outcomes = append(outcomes, ChainToOutcome(m, func(b atom.Bindings) Outcome {
			return commutativeMatch(ctx, restPatterns, restSubjects, b)
		}))
	}
	if len(outcomes) == 0 {
		return NewFail("unbindable pre-filter: pattern matches no subject position", pat, nil, nil)
	}
	return concatOutcomes(outcomes)
}

// permuteBindable matches a sequence of bare-variable patterns against se
// by trying every bijection in lexicographic order of subject positions
// (spec §4.2 "enumerate permutations of the remaining unbindable-free
// subjects against the remaining bindable patterns").
func permuteBindable(ctx *Context, pe, se []atom.Atom, binds atom.Bindings) Outcome {
	perms := newPermIter(ctx, len(se))
	return FromIter(&genConcatIter{
		gen: perms.Next,
		build: func(perm []int) Outcome {
			permuted := make([]atom.Atom, len(se))
			for i, p := range perm {
				permuted[i] = se[p]
			}
			return positionalMatchElems(ctx, pe, permuted, binds)
		},
	})
}

// prepareAssociativeSubjects applies spec §4.2's identity handling: extra
// identity-valued subjects are dropped ("treated as absent"), then missing
// subjects are padded with the identity up to the pattern count ("missing
// subjects treated as the identity"). If the pattern has no identity and
// there are fewer subjects than patterns, associative matching cannot
// proceed.
func prepareAssociativeSubjects(props atom.AlgProp, se []atom.Atom, patternCount int) ([]atom.Atom, error) {
	id, hasID := props.Identity()
	if hasID {
		filtered := make([]atom.Atom, 0, len(se))
		for _, s := range se {
			if s.Equal(id) {
				continue
			}
			filtered = append(filtered, s)
		}
		se = filtered
		for len(se) < patternCount {
			se = append(se, id)
		}
	}
	if len(se) < patternCount {
		return nil, fmt.Errorf("associative sequence match: %d subjects for %d patterns and no identity to pad with", len(se), patternCount)
	}
	return se, nil
}

// groupSubjects enumerates the groupings spec §4.2 describes (P-1 dividers
// among S-1 inter-subject positions, lexicographic order), builds each
// group's atom (the lone element, or op(group...) via hint), and hands the
// resulting P-length group-atom slice to matchGroups — positionalMatchElems
// for the A-only strategy, commutativeMatch for AC.
func groupSubjects(
	ctx *Context,
	pe, se []atom.Atom,
	binds atom.Bindings,
	hint atom.OperatorRef,
	matchGroups func(ctx *Context, pe, se []atom.Atom, binds atom.Bindings) Outcome,
) Outcome {
	P := len(pe)
	S := len(se)
	if P == S {
		return matchGroups(ctx, pe, se, binds)
	}
	if hint == nil {
		return NewFail("associative matching requires an operator hint for grouping", nil, nil, nil)
	}
	combs := newCombIter(ctx, S-1, P-1)
	return FromIter(&genConcatIter{
		gen: combs.Next,
		build: func(cuts []int) Outcome {
			groups := buildGroups(se, cuts)
			groupAtoms := make([]atom.Atom, len(groups))
			for i, g := range groups {
				if len(g) == 1 {
					groupAtoms[i] = g[0]
					continue
				}
				a, err := atom.NewOpApply(hint, g, atom.NewBindings())
				if err != nil {
					return NewFail(err.Error(), nil, nil, err)
				}
				groupAtoms[i] = a
			}
			return matchGroups(ctx, pe, groupAtoms, binds)
		},
	})
}

// buildGroups splits se into len(cuts)+1 non-empty contiguous groups, with
// cuts[i] naming (0-indexed into se) the last element of the i-th group.
func buildGroups(se []atom.Atom, cuts []int) [][]atom.Atom {
	groups := make([][]atom.Atom, 0, len(cuts)+1)
	start := 0
	for _, c := range cuts {
		groups = append(groups, se[start:c+1])
		start = c + 1
	}
	groups = append(groups, se[start:])
	return groups
}

// genConcatIter lazily concatenates the Outcome produced by build(x) for
// each x the generator gen yields, in order. It underlies both the
// grouping iterator and the permutation iterator: each just supplies a
// different index generator over the same concatenation shape.
type genConcatIter struct {
	gen   func() ([]int, bool)
	build func([]int) Outcome
	inner MatchIter
}

func (g *genConcatIter) Next() (atom.Bindings, bool) {
	for {
		if g.inner != nil {
			if b, ok := g.inner.Next(); ok {
				return b, true
			}
			g.inner = nil
		}
		idx, ok := g.gen()
		if !ok {
			return atom.Bindings{}, false
		}
		g.inner = AsIter(g.build(idx))
	}
}

// multiConcatIter lazily concatenates a fixed, already-built slice of
// Outcomes (used by the unbindable pre-filter, where each candidate
// subject position produces one Outcome up front).
type multiConcatIter struct {
	outcomes []Outcome
	idx      int
	inner    MatchIter
}

func (m *multiConcatIter) Next() (atom.Bindings, bool) {
	for {
		if m.inner != nil {
			if b, ok := m.inner.Next(); ok {
				return b, true
			}
			m.inner = nil
		}
		if m.idx >= len(m.outcomes) {
			return atom.Bindings{}, false
		}
		m.inner = AsIter(m.outcomes[m.idx])
		m.idx++
	}
}

func concatOutcomes(outcomes []Outcome) Outcome {
	return FromIter(&multiConcatIter{outcomes: outcomes})
}

// combIter produces, in lexicographic order, all k-element combinations of
// {0, ..., n-1} (spec §4.2's P-1 dividers among S-1 inter-subject
// positions). A zero-divider request (k == 0, the whole-sequence-as-one-
// group case) yields exactly one empty combination.
type combIter struct {
	ctx       *Context
	n, k      int
	comb      []int
	first     bool
	exhausted bool
}

func newCombIter(ctx *Context, n, k int) *combIter {
	if k <= 0 {
		return &combIter{ctx: ctx, n: n, k: 0, first: true}
	}
	comb := make([]int, k)
	for i := range comb {
		comb[i] = i
	}
	return &combIter{ctx: ctx, n: n, k: k, comb: comb, first: true}
}

func (c *combIter) Next() ([]int, bool) {
	if c.exhausted {
		return nil, false
	}
	if c.ctx.timedOut() {
		c.exhausted = true
		return nil, false
	}
	if c.k == 0 {
		c.exhausted = true
		return []int{}, true
	}
	if c.first {
		c.first = false
		return append([]int(nil), c.comb...), true
	}
	if !nextCombination(c.comb, c.n) {
		c.exhausted = true
		return nil, false
	}
	return append([]int(nil), c.comb...), true
}

func nextCombination(comb []int, n int) bool {
	k := len(comb)
	i := k - 1
	for i >= 0 && comb[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	comb[i]++
	for j := i + 1; j < k; j++ {
		comb[j] = comb[j-1] + 1
	}
	return true
}

// permIter produces, in lexicographic order, every permutation of
// {0, ..., n-1} (spec §4.2 "permutations... produced in lexicographic
// order of positions").
type permIter struct {
	ctx       *Context
	perm      []int
	first     bool
	exhausted bool
}

func newPermIter(ctx *Context, n int) *permIter {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return &permIter{ctx: ctx, perm: perm, first: true}
}

func (p *permIter) Next() ([]int, bool) {
	if p.exhausted {
		return nil, false
	}
	if p.ctx.timedOut() {
		p.exhausted = true
		return nil, false
	}
	if p.first {
		p.first = false
		return append([]int(nil), p.perm...), true
	}
	if !nextPermutation(p.perm) {
		p.exhausted = true
		return nil, false
	}
	return append([]int(nil), p.perm...), true
}

func nextPermutation(a []int) bool {
	n := len(a)
	i := n - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := n - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	for l, r := i+1, n-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}
	return true
}
