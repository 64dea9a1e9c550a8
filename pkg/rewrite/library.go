// Package rewrite implements the rewrite driver (spec §4.5): the rule
// library, ruleset-gated rule selection, the fixpoint rewrite loop, and the
// descent into an atom's children once no top-level rule applies. It is the
// package that actually wires pkg/match, pkg/operator and pkg/debruijn
// together into "rewrite this atom to normal form".
package rewrite

import (
	"time"

	"github.com/elision-go/elision/internal/cachekey"
	"github.com/elision-go/elision/internal/config"
	"github.com/elision-go/elision/internal/engine"
	"github.com/elision-go/elision/internal/errs"
	"github.com/elision-go/elision/internal/labelreg"
	"github.com/elision-go/elision/pkg/atom"
	"github.com/elision-go/elision/pkg/debruijn"
	"github.com/elision-go/elision/pkg/match"
	"github.com/elision-go/elision/pkg/operator"
	"github.com/elision-go/elision/pkg/ruleset"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the memoization cache (spec §9: "a bounded LRU"). The
// config package carries no cache-size knob of its own — see DESIGN.md's
// Open Question decision — so this is a plain constant rather than another
// config.Config field.
const cacheSize = 8192

type cacheEntry struct {
	subject    atom.Atom
	result     atom.Atom
	changed    bool
	generation uint64
}

// Library is the rewrite engine's rule store: an indexed set of rules
// gated by ruleset membership, the operator library it consults when a
// rewritten atom's children need re-applying to their operator, and a
// generation-tagged memoization cache.
type Library struct {
	cfg      *config.Config
	rulesets *ruleset.Registry
	ops      *operator.Library
	index    *Index
	cache    *lru.Cache[cachekey.Key, cacheEntry]
	log      hclog.Logger
	labels   *labelreg.Registry

	generation uint64
}

// NewLibrary constructs a rewrite Library. A nil cfg uses config.Default(),
// a nil log uses hclog's discard logger, and a nil labels registry gets a
// fresh empty one — matching the teacher's convention of never requiring a
// caller to thread a dependency it doesn't otherwise care about.
func NewLibrary(cfg *config.Config, rulesets *ruleset.Registry, ops *operator.Library, labels *labelreg.Registry, log hclog.Logger) (*Library, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if rulesets == nil {
		rulesets = ruleset.NewRegistry()
	}
	if ops == nil {
		ops = operator.NewLibrary()
	}
	if labels == nil {
		labels = labelreg.New()
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	cache, err := lru.New[cachekey.Key, cacheEntry](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Library{cfg: cfg, rulesets: rulesets, ops: ops, index: newIndex(), cache: cache, log: log, labels: labels}, nil
}

func (l *Library) bumpGeneration() { l.generation++ }

// Rulesets exposes the rule library's ruleset registry so a caller can
// declare or toggle rulesets through the same authority Rewrite checks
// rule eligibility against.
func (l *Library) Rulesets() *ruleset.Registry { return l.rulesets }

// Labels exposes the label registry so a caller can register the
// application-specific predicates that variable labels in rule patterns
// name.
func (l *Library) Labels() *labelreg.Registry { return l.labels }

// Operators exposes the operator library Rewrite consults when
// reconstructing an Apply whose arguments changed under descent.
func (l *Library) Operators() *operator.Library { return l.ops }

// Rewrite rewrites a to normal form under the given active-ruleset set
// (spec §4.5 steps 1-4): literals and variables pass straight through
// (unless AllowLiteralRules is set for literals), a cache hit short-circuits
// the whole walk, and otherwise a fresh timeout/budget window is opened for
// the fixpoint loop.
func (l *Library) Rewrite(a atom.Atom, active ruleset.Bitset) (atom.Atom, bool, error) {
	eng := engine.New(time.Now().Add(l.cfg.Timeout), l.cfg.RewriteBudget, l.log)
	eng.SetMaxLambdaDepth(l.cfg.MaxLambdaDepth)
	return l.rewrite(a, active, eng)
}

func (l *Library) rewrite(a atom.Atom, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool, error) {
	if atom.IsVariable(a) {
		return a, false, nil
	}
	if atom.IsLiteral(a) && !l.cfg.AllowLiteralRules {
		return a, false, nil
	}

	key := cachekey.For(a, uint64(active))
	if entry, ok := l.cache.Get(key); ok && entry.generation == l.generation && entry.subject.Equal(a) {
		return entry.result, entry.changed, nil
	}

	if eng.TimedOut() {
		return a, false, &errs.TimedOutError{}
	}

	result, changed, err := l.doRewrite(a, active, eng)
	if err != nil {
		return a, false, err
	}

	l.cache.Add(key, cacheEntry{subject: a, result: result, changed: changed, generation: l.generation})
	if changed {
		resultKey := cachekey.For(result, uint64(active))
		l.cache.Add(resultKey, cacheEntry{subject: result, result: result, changed: false, generation: l.generation})
	}
	return result, changed, nil
}

// doRewrite is the fixpoint loop (spec §4.5 "do_rewrite"): apply one
// rewrite step, and if the atom changed and isn't yet stable, feed the
// result back in. The loop is bounded by the engine's rewrite budget and
// deadline rather than unwound via Go call-stack recursion, since a long
// rewrite chain on a tail-recursive rule set would otherwise grow the loop
// depth unboundedly.
func (l *Library) doRewrite(a atom.Atom, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool, error) {
	changedOverall := false
	for {
		if eng.TimedOut() {
			return a, changedOverall, nil
		}
		if !eng.ConsumeBudget() {
			return a, changedOverall, nil
		}
		next, stepChanged, err := l.rewriteOnce(a, active, eng)
		if err != nil {
			return a, changedOverall, err
		}
		if !stepChanged {
			return a, changedOverall, nil
		}
		changedOverall = true
		if next.Equal(a) {
			return next, true, nil
		}
		a = next
	}
}

// rewriteOnce performs spec §4.5's "rewrite_once": try beta-reducing a
// lambda application, then the first matching rule at the top, then
// (failing both, and if FullDescend is set) descend into a's children.
func (l *Library) rewriteOnce(a atom.Atom, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool, error) {
	if sa, ok := atom.AsSimpleApply(a); ok {
		if lam, ok := atom.AsLambda(sa.Op()); ok {
			ctx := l.context(eng, active)
			reduce := func(body atom.Atom, eng *engine.Engine) (atom.Atom, error) {
				result, _, err := l.rewrite(body, active, eng)
				return result, err
			}
			result, err := debruijn.Apply(ctx, eng, reduce, lam, sa.Arg(), nil)
			if err == nil {
				return result, true, nil
			}
			// A mismatched argument leaves the application stuck rather
			// than failing the whole rewrite: fall through to ordinary
			// rule matching and descent, the same way an un-applicable
			// operator call is left alone.
		}
	}

	if next, ok := l.rewriteTop(a, active, eng); ok {
		return next, true, nil
	}
	if !l.cfg.FullDescend {
		return a, false, nil
	}
	return l.descend(a, active, eng)
}

// rewriteTop tries each rule indexed under a's structural key, in
// declaration order, and returns the first whose pattern matches a and
// whose guards (if any) are all satisfied (spec §4.5 "first applicable
// rule wins").
func (l *Library) rewriteTop(a atom.Atom, active ruleset.Bitset, eng *engine.Engine) (atom.Atom, bool) {
	ctx := l.context(eng, active)
	for _, rule := range l.index.Lookup(a) {
		if !l.ruleEligible(rule, active) {
			continue
		}
		outcome := match.TryMatch(ctx, rule.Pattern(), a, atom.NewBindings(), nil)
		iter := match.AsIter(outcome)
		for {
			binds, ok := iter.Next()
			if !ok {
				break
			}
			if !l.guardsSatisfied(rule.Guards(), binds, active, eng) {
				continue
			}
			result := atom.SubstituteBindings(rule.Rewrite(), func(n string) (atom.Atom, bool) { return binds.Lookup(n) })
			// A fresh tag per firing, not per rule, so two log lines for
			// the same rule at different call sites are never mistaken for
			// one another when correlating a trace.
			l.log.Trace("rule fired", "tag", uuid.NewString(), "pattern", rule.Pattern().String(), "result", result.String())
			return result, true
		}
	}
	return a, false
}

func (l *Library) ruleEligible(rule atom.RewriteRule, active ruleset.Bitset) bool {
	var bits uint64
	for _, ref := range rule.Rulesets() {
		bits |= ref.Bit()
	}
	return ruleset.Bitset(bits).Intersects(active)
}

func (l *Library) guardsSatisfied(guards []atom.Atom, binds atom.Bindings, active ruleset.Bitset, eng *engine.Engine) bool {
	for _, g := range guards {
		substituted := atom.SubstituteBindings(g, func(n string) (atom.Atom, bool) { return binds.Lookup(n) })
		result, _, err := l.rewrite(substituted, active, eng)
		if err != nil {
			return false
		}
		if b, ok := atom.AsBool(result); !ok || !b {
			return false
		}
	}
	return true
}

func (l *Library) context(eng *engine.Engine, active ruleset.Bitset) *match.Context {
	reduce := func(a atom.Atom, binds atom.Bindings, eng *engine.Engine) (atom.Atom, error) {
		substituted := atom.SubstituteBindings(a, func(n string) (atom.Atom, bool) { return binds.Lookup(n) })
		result, _, err := l.rewrite(substituted, active, eng)
		return result, err
	}
	return match.NewContext(eng, reduce, l.labels)
}
