package atom

// specialForm is the SpecialForm Atom variant (spec §4.8): a tagged wrapper
// used for forms that dispatch to a constructor other than plain
// application — "rule", "operator", "binds", "match", "map", and any other
// tag a context recognizes. pkg/special owns the tag->constructor table;
// this type just carries the tag and its (not yet interpreted) content
// through the data model and through SubstituteBindings.
type specialForm struct {
	base
	tag     string
	content Atom
}

func (s *specialForm) String() string { return "#" + s.tag + "(" + s.content.String() + ")" }

func (s *specialForm) Equal(other Atom) bool {
	o, ok := other.(*specialForm)
	return ok && s.tag == o.tag && s.content.Equal(o.content)
}

// SpecialForm is the exported accessor interface.
type SpecialForm interface {
	Atom
	Tag() string
	Content() Atom
}

func (s *specialForm) Tag() string  { return s.tag }
func (s *specialForm) Content() Atom { return s.content }

// NewSpecialForm constructs a SpecialForm wrapping content under tag.
func NewSpecialForm(tag string, content Atom) SpecialForm {
	s := &specialForm{tag: tag, content: content}
	summary := newChildSummary()
	summary.add(content)
	s.base = base{
		kind:     KindSpecialForm,
		theType:  ANY,
		depth:    summary.depth(),
		deBruijn: summary.maxDeBruijn,
		constant: summary.allConstant,
		term:     summary.allTerm,
	}
	s.hash = hashCombine(hashString("SpecialForm"), hashString(tag), content.Hash())
	s.simHash = hashCombine(hashString("SpecialForm"), hashString(tag), content.SimHash())
	return s
}

// AsSpecialForm type-asserts a to the SpecialForm accessor interface.
func AsSpecialForm(a Atom) (SpecialForm, bool) {
	s, ok := a.(*specialForm)
	return s, ok
}
