package atom

import "sort"

// rewriteCacheEntry is one entry of a Bindings' process-local rewrite memo
// (spec §3 "Bindings... carry a process-local cache rewrites: OpApply ->
// (Atom, changed)").
type rewriteCacheEntry struct {
	key     OpApply
	result  Atom
	changed bool
}

// Bindings is the symbol-name -> Atom environment threaded through
// matching and rewriting (spec §3 "Bindings"). It is persistent
// (copy-on-write, like the teacher's Substitution in core.go) so that a
// failed branch of the matcher can simply discard its Bindings value
// without undoing anything in a shared map.
//
// Bindings also carries two optional AtomSeq captures, patterns and
// subjects, used by the AC/A/C sequence matchers (pkg/match) to remember
// residual sequences across grouping/permutation steps, and a rewrite memo
// keyed by OpApply hash, used to avoid re-rewriting the same application
// twice within one bound environment (spec §3, §4.5 step 2's cache is the
// rule-library-wide version of this same idea at a coarser grain).
type Bindings struct {
	m        map[string]Atom
	patterns AtomSeq
	subjects AtomSeq
	cache    map[uint64]rewriteCacheEntry
}

// NewBindings returns an empty Bindings.
func NewBindings() Bindings {
	return Bindings{}
}

// Lookup returns the atom bound to name, if any.
func (b Bindings) Lookup(name string) (Atom, bool) {
	if b.m == nil {
		return nil, false
	}
	a, ok := b.m[name]
	return a, ok
}

// Bind returns a new Bindings with name bound to value. The receiver is
// left unmodified.
func (b Bindings) Bind(name string, value Atom) Bindings {
	out := make(map[string]Atom, len(b.m)+1)
	for k, v := range b.m {
		out[k] = v
	}
	out[name] = value
	return Bindings{m: out, patterns: b.patterns, subjects: b.subjects, cache: b.cache}
}

// Names returns the currently-bound symbol names.
func (b Bindings) Names() []string {
	out := make([]string, 0, len(b.m))
	for k := range b.m {
		out = append(out, k)
	}
	return out
}

// Len reports the number of bound names.
func (b Bindings) Len() int { return len(b.m) }

// Patterns and Subjects return the AC/A/C matcher's residual-sequence
// captures, if set.
func (b Bindings) Patterns() (AtomSeq, bool) { return b.patterns, b.patterns != nil }
func (b Bindings) Subjects() (AtomSeq, bool) { return b.subjects, b.subjects != nil }

// WithPatterns and WithSubjects return a copy of b with the given capture
// set. They do not copy the name map (cheap: maps are shared until Bind is
// next called).
func (b Bindings) WithPatterns(p AtomSeq) Bindings {
	return Bindings{m: b.m, patterns: p, subjects: b.subjects, cache: b.cache}
}
func (b Bindings) WithSubjects(s AtomSeq) Bindings {
	return Bindings{m: b.m, patterns: b.patterns, subjects: s, cache: b.cache}
}

// Lookup the rewrite memo for a given OpApply (by structural hash, with an
// Equal check to guard against collision).
func (b Bindings) CachedRewrite(key OpApply) (Atom, bool, bool) {
	if b.cache == nil {
		return nil, false, false
	}
	entry, ok := b.cache[key.Hash()]
	if !ok || !entry.key.Equal(key) {
		return nil, false, false
	}
	return entry.result, entry.changed, true
}

// CacheRewrite records a rewrite memo entry, returning the (possibly newly
// allocated) Bindings carrying it. The memo map is shared across Bind
// calls on purpose: it is process-local bookkeeping, not part of the
// logical binding state that must be rolled back on backtracking.
func (b Bindings) CacheRewrite(key OpApply, result Atom, changed bool) Bindings {
	if b.cache == nil {
		b.cache = make(map[uint64]rewriteCacheEntry)
	}
	b.cache[key.Hash()] = rewriteCacheEntry{key: key, result: result, changed: changed}
	return b
}

// bindingsAtom is the BindingsAtom Atom variant (spec §3.7): a bindings map
// treated as an Atom of type ANY. Unlike Bindings, it carries no captures
// or cache — it is plain data, matched via key-set equality plus an
// order-free sequence match over the values (spec §4.1 "BindingsAtom vs
// BindingsAtom").
type bindingsAtom struct {
	base
	m map[string]Atom
}

func (b *bindingsAtom) String() string {
	out := "{"
	for i, k := range b.sortedKeys() {
		if i > 0 {
			out += ", "
		}
		out += k + ": " + b.m[k].String()
	}
	return out + "}"
}

// sortedKeys returns b.m's keys in a fixed order, so that String and Hash
// never depend on Go's randomized map iteration order — required for the
// Atom.Hash() invariant that Equal atoms always hash equal (spec §3's
// BindingsAtom is order-free on its keys, but its Hash and String still need
// to be deterministic for a given logical map).
func (b *bindingsAtom) sortedKeys() []string {
	out := make([]string, 0, len(b.m))
	for k := range b.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (b *bindingsAtom) Equal(other Atom) bool {
	o, ok := other.(*bindingsAtom)
	if !ok || len(b.m) != len(o.m) {
		return false
	}
	for k, v := range b.m {
		ov, ok := o.m[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// BindingsAtom is the exported accessor interface.
type BindingsAtom interface {
	Atom
	Keys() []string
	Get(name string) (Atom, bool)
	Values() []Atom
}

func (b *bindingsAtom) Keys() []string { return b.sortedKeys() }
func (b *bindingsAtom) Get(name string) (Atom, bool) { a, ok := b.m[name]; return a, ok }
func (b *bindingsAtom) Values() []Atom {
	out := make([]Atom, 0, len(b.m))
	for _, v := range b.m {
		out = append(out, v)
	}
	return out
}

// NewBindingsAtom constructs a BindingsAtom from a name->Atom map.
func NewBindingsAtom(m map[string]Atom) BindingsAtom {
	cp := make(map[string]Atom, len(m))
	summary := newChildSummary()
	for k, v := range m {
		cp[k] = v
		summary.add(v)
	}
	b := &bindingsAtom{m: cp}
	b.base = base{
		kind:     KindBindings,
		theType:  ANY,
		depth:    summary.depth(),
		deBruijn: summary.maxDeBruijn,
		constant: summary.allConstant,
		term:     summary.allTerm,
	}
	h := hashString("BindingsAtom")
	for _, k := range b.sortedKeys() {
		h = hashCombine(h, hashString(k), cp[k].Hash())
	}
	b.hash = h
	b.simHash = hashCombine(hashString("BindingsAtom"), uint64(len(cp)))
	return b
}

// AsBindingsAtom type-asserts a to the BindingsAtom accessor interface.
func AsBindingsAtom(a Atom) (BindingsAtom, bool) {
	b, ok := a.(*bindingsAtom)
	return b, ok
}
