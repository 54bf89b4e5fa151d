package lang

import (
	"strconv"
	"strings"
)

// Literal is a runtime value and the payload of a literal AST node.
//
// The concrete types are [Nil], [Bool], [Number], [Quantity], [String], and
// [List].
type Literal interface {
	String() string
	literal()
}

// Nil is the absent value.
type Nil struct{}

// Bool is a boolean value.
type Bool bool

// Number is a unitless 64-bit floating point value.
type Number float64

// String is a text value.
type String string

// List is an ordered sequence of values.
type List []Literal

func (Nil) literal()    {}
func (Bool) literal()   {}
func (Number) literal() {}
func (String) literal() {}
func (List) literal()   {}

func (Nil) String() string { return "nil" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (n Number) String() string { return formatNumber(float64(n)) }

func (s String) String() string { return string(s) }

// String returns the list in source form. String elements are quoted.
func (l List) String() string {
	var sb strings.Builder

	sb.WriteByte('[')

	for i, item := range l {
		if i > 0 {
			sb.WriteString(", ")
		}

		if s, ok := item.(String); ok {
			sb.WriteString(strconv.Quote(string(s)))
		} else {
			sb.WriteString(display(item))
		}
	}

	sb.WriteByte(']')

	return sb.String()
}

// IsTruthy reports whether v counts as true in a logical context.
// Only nil and false are falsy.
func IsTruthy(v Literal) bool {
	switch v := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// AsNumber returns the float value of v if v is a [Number].
// Quantities are not numbers.
func AsNumber(v Literal) (float64, bool) {
	n, ok := v.(Number)

	return float64(n), ok
}

// Equal reports whether a and b are structurally equal.
// Values of different kinds are never equal.
func Equal(a, b Literal) bool {
	if a == nil {
		a = Nil{}
	}

	if b == nil {
		b = Nil{}
	}

	if la, ok := a.(List); ok {
		lb, ok := b.(List)
		if !ok || len(la) != len(lb) {
			return false
		}

		for i := range la {
			if !Equal(la[i], lb[i]) {
				return false
			}
		}

		return true
	}

	if _, ok := b.(List); ok {
		return false
	}

	return a == b
}

// TypeName returns the kind of v as shown in diagnostics.
func TypeName(v Literal) string {
	switch v.(type) {
	case nil, Nil:
		return "nil"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case Quantity:
		return "quantity"
	case String:
		return "string"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// display returns the text used for v in string concatenation and output.
func display(v Literal) string {
	if v == nil {
		return Nil{}.String()
	}

	return v.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
