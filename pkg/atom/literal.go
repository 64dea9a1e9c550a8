package atom

import "fmt"

// LiteralForm distinguishes the six literal payload shapes of spec §3.1.
type LiteralForm int

const (
	FormInteger LiteralForm = iota
	FormBitString
	FormString
	FormSymbol
	FormBoolean
	FormFloat
)

// literal is the leaf Atom implementation for integers, bit-strings,
// strings, symbols, booleans, and floats. Leaves are equal iff type and
// value are equal (spec §3.1).
type literal struct {
	base
	form LiteralForm

	// Integer / BitString width / radix-agnostic magnitude.
	intVal int64

	// BitString.
	bitWidth int

	// String / Symbol.
	strVal string

	// Boolean.
	boolVal bool

	// Float: significand, exponent, radix.
	significand int64
	exponent    int64
	radix       int
}

func (l *literal) String() string {
	switch l.form {
	case FormInteger:
		return fmt.Sprintf("%d", l.intVal)
	case FormBitString:
		return fmt.Sprintf("%d:bits[%d]", l.intVal, l.bitWidth)
	case FormString:
		return fmt.Sprintf("%q", l.strVal)
	case FormSymbol:
		return l.strVal
	case FormBoolean:
		return fmt.Sprintf("%t", l.boolVal)
	case FormFloat:
		return fmt.Sprintf("%dE%dR%d", l.significand, l.exponent, l.radix)
	default:
		return "<bad-literal>"
	}
}

func (l *literal) Equal(other Atom) bool {
	o, ok := other.(*literal)
	if !ok || o.form != l.form || !l.theType.Equal(o.theType) {
		return false
	}
	switch l.form {
	case FormInteger:
		return l.intVal == o.intVal
	case FormBitString:
		return l.intVal == o.intVal && l.bitWidth == o.bitWidth
	case FormString, FormSymbol:
		return l.strVal == o.strVal
	case FormBoolean:
		return l.boolVal == o.boolVal
	case FormFloat:
		return l.significand == o.significand && l.exponent == o.exponent && l.radix == o.radix
	default:
		return false
	}
}

func newLiteralBase(form LiteralForm, typ Atom, canonical string) base {
	return base{
		kind:     KindLiteral,
		theType:  typ,
		constant: true,
		term:     true,
		hash:     hashCombine(hashString("Literal"), uint64(form), hashString(canonical), typ.Hash()),
		simHash:  hashCombine(hashString("Literal"), uint64(form), typ.Hash()),
	}
}

// NewInteger constructs an INTEGER-typed literal.
func NewInteger(v int64) Atom {
	l := &literal{form: FormInteger, intVal: v}
	l.base = newLiteralBase(FormInteger, INTEGER, fmt.Sprintf("%d", v))
	return l
}

// NewBitString constructs a fixed-width bit-string literal, typed INTEGER
// (the spec does not name a distinct bit-string root type).
func NewBitString(v int64, width int) Atom {
	l := &literal{form: FormBitString, intVal: v, bitWidth: width}
	l.base = newLiteralBase(FormBitString, INTEGER, fmt.Sprintf("%d:%d", v, width))
	return l
}

// NewString constructs a STRING-typed literal.
func NewString(v string) Atom {
	l := &literal{form: FormString, strVal: v}
	l.base = newLiteralBase(FormString, STRING, v)
	return l
}

// NewSymbol constructs a SYMBOL-typed literal.
func NewSymbol(name string) Atom {
	l := &literal{form: FormSymbol, strVal: name}
	l.base = newLiteralBase(FormSymbol, SYMBOL, name)
	return l
}

// NewBoolean constructs a BOOLEAN-typed literal.
func NewBoolean(v bool) Atom {
	l := &literal{form: FormBoolean, boolVal: v}
	l.base = newLiteralBase(FormBoolean, BOOLEAN, fmt.Sprintf("%t", v))
	return l
}

// True and False are the canonical BOOLEAN literals, used pervasively by
// guard evaluation (spec §4.1).
var True = NewBoolean(true)
var False = NewBoolean(false)

// NewFloat constructs a FLOAT-typed literal from significand, exponent, and
// radix (spec §3.1).
func NewFloat(significand, exponent int64, radix int) Atom {
	l := &literal{form: FormFloat, significand: significand, exponent: exponent, radix: radix}
	l.base = newLiteralBase(FormFloat, FLOAT, fmt.Sprintf("%dE%dR%d", significand, exponent, radix))
	return l
}

// IsLiteral reports whether a is a Literal atom.
func IsLiteral(a Atom) bool {
	_, ok := a.(*literal)
	return ok
}

// AsBool reports the boolean value of a BOOLEAN literal and whether a was
// in fact one (used by guard evaluation, spec §4.1).
func AsBool(a Atom) (bool, bool) {
	l, ok := a.(*literal)
	if !ok || l.form != FormBoolean {
		return false, false
	}
	return l.boolVal, true
}

// AsSymbolName reports the name of a SYMBOL literal.
func AsSymbolName(a Atom) (string, bool) {
	l, ok := a.(*literal)
	if !ok || l.form != FormSymbol {
		return "", false
	}
	return l.strVal, true
}

// AsInt reports the integer value of an INTEGER or BitString literal.
func AsInt(a Atom) (int64, bool) {
	l, ok := a.(*literal)
	if !ok || (l.form != FormInteger && l.form != FormBitString) {
		return 0, false
	}
	return l.intVal, true
}
