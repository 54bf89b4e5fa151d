package lang

import (
	"log/slog"
	"strconv"
)

// TimeUnit is the resolution of a time [Quantity].
type TimeUnit uint8

const (
	Second TimeUnit = iota // s
	Minute                 // m
)

// String returns the unit suffix of t.
func (t TimeUnit) String() string {
	switch t {
	case Second:
		return "s"
	case Minute:
		return "m"
	default:
		return "TimeUnit(" + strconv.Itoa(int(t)) + ")"
	}
}

// Unit is the domain unit carried by a [Quantity].
//
// Time units are encoded after [Rep] so that every Unit is a comparable
// scalar; use [Time] to construct one and [Unit.Time] to inspect it.
type Unit uint8

const (
	Percent Unit = iota // %
	Rep                 // x

	timeBase
)

// Time returns the time unit with resolution t.
func Time(t TimeUnit) Unit { return timeBase + Unit(t) }

// Time reports the time resolution of u, if u is a time unit.
func (u Unit) Time() (TimeUnit, bool) {
	if u < timeBase {
		return 0, false
	}

	return TimeUnit(u - timeBase), true
}

// String returns the source suffix of u. It is the inverse of [ParseUnit].
func (u Unit) String() string {
	switch u {
	case Percent:
		return "%"
	case Rep:
		return "x"
	}

	if t, ok := u.Time(); ok {
		return t.String()
	}

	return "Unit(" + strconv.Itoa(int(u)) + ")"
}

// Units returns every unit the lexer recognizes as a numeric suffix.
func Units() []Unit {
	return []Unit{Percent, Rep, Time(Second), Time(Minute)}
}

// ParseUnit returns the unit denoted by suffix s.
// Any text other than "%", "x", "s", or "m" fails with [ErrBadUnit].
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "x":
		return Rep, nil
	case "%":
		return Percent, nil
	case "s":
		return Time(Second), nil
	case "m":
		return Time(Minute), nil
	default:
		return 0, ErrBadUnit.With(slog.String("unit", s))
	}
}

// isUnitSuffix reports whether c begins a unit suffix.
func isUnitSuffix(c byte) bool {
	return c == 's' || c == 'm' || c == '%' || c == 'x'
}

// Quantity is a number paired with a [Unit]. Values are never normalized:
// 1m and 60s are distinct quantities.
type Quantity struct {
	Value float64
	Unit  Unit
}

// NewQuantity returns the quantity value in unit.
func NewQuantity(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

func (Quantity) literal() {}

// String returns the quantity as it would be written in source, e.g. "30s".
func (q Quantity) String() string {
	return formatNumber(q.Value) + q.Unit.String()
}
