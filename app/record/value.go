package record

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which member of the Value union is set
type Kind uint8

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "absent"
	}
}

// Value is a single scalar field of a row: absent, a string or a number.
// Values are comparable and can be used as map keys. A number and a string
// with the same text are different values.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Absent is the zero Value
var Absent = Value{}

// String builds a string value
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number builds a numeric value. NaN is stored as absent since it can never
// match itself as a map key.
func Number(n float64) Value {
	if math.IsNaN(n) {
		return Absent
	}
	return Value{kind: KindNumber, num: n}
}

// Kind returns the union member that is set
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the field had no value (null or missing)
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNumber reports whether the value is numeric
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsString reports whether the value is a string
func (v Value) IsString() bool { return v.kind == KindString }

// Float returns the numeric payload and whether the value is a number
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Str returns the string payload and whether the value is a string
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// IsBlank reports whether the value is absent or an empty string
func (v Value) IsBlank() bool {
	return v.kind == KindAbsent || (v.kind == KindString && v.str == "")
}

// IsFalsy reports whether the value is absent, empty or the number zero.
// Search haystacks and label fallbacks skip falsy fields.
func (v Value) IsFalsy() bool {
	return v.IsBlank() || (v.kind == KindNumber && v.num == 0)
}

// Text renders the value. Numbers use the shortest decimal form that
// round-trips ("2020", "1500.5"); absent renders as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Lower is Text lower-cased
func (v Value) Lower() string {
	return strings.ToLower(v.Text())
}

// TextOr returns Text, or fallback when the value is falsy
func (v Value) TextOr(fallback string) string {
	if v.IsFalsy() {
		return fallback
	}
	return v.Text()
}

// String implements fmt.Stringer
func (v Value) String() string {
	return v.Text()
}

// FromAny converts a decoded JSON scalar into a Value. ok is false for
// arrays, objects and other non-scalar types.
func FromAny(x any) (v Value, ok bool) {
	switch t := x.(type) {
	case nil:
		return Absent, true
	case string:
		return String(t), true
	case float64:
		return Number(t), true
	case float32:
		return Number(float64(t)), true
	case int64:
		return Number(float64(t)), true
	case int:
		return Number(float64(t)), true
	case int32:
		return Number(float64(t)), true
	case bool:
		return String(strconv.FormatBool(t)), true
	default:
		return Absent, false
	}
}
