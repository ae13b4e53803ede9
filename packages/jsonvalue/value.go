package jsonvalue

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies which JSON kind a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single object entry. Objects keep members in document order
// and keys are unique (a duplicate key in the input replaces the earlier
// value in place, matching json_decode behavior).
type Member struct {
	Key   string
	Value Value
}

// Value is one decoded JSON value. The zero Value is null. Values are
// immutable after construction and safe to share across goroutines.
type Value struct {
	kind    Kind
	boolVal bool
	raw     string // number literal or string text
	list    []Value
	members []Member
}

func NullValue() Value { return Value{kind: KindNull} }

func BoolValue(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// NumberValue builds a number from its JSON literal text, e.g. "25", "2.5",
// "1e3". The literal is kept verbatim; see CanonicalNumber.
func NumberValue(literal string) Value {
	return Value{kind: KindNumber, raw: literal}
}

func StringValue(s string) Value { return Value{kind: KindString, raw: s} }

func ListValue(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

func ObjectValue(members ...Member) Value {
	return Value{kind: KindObject, members: members}
}

func (v Value) Kind() Kind { return v.kind }

// IsContainer reports whether the value is a list or an object.
func (v Value) IsContainer() bool {
	return v.kind == KindList || v.kind == KindObject
}

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool { return v.boolVal }

// Text returns the string payload. Valid only for KindString.
func (v Value) Text() string { return v.raw }

// NumberLiteral returns the number exactly as it appeared in the input.
func (v Value) NumberLiteral() string { return v.raw }

// CanonicalNumber returns the canonical decimal form of a number: integer
// literals verbatim, everything else re-rendered without an exponent, so
// "1e3" becomes "1000" and "2.50" becomes "2.5".
func (v Value) CanonicalNumber() string {
	if v.kind != KindNumber {
		return ""
	}
	if isIntegerLiteral(v.raw) {
		return v.raw
	}
	f, err := strconv.ParseFloat(v.raw, 64)
	if err != nil {
		return v.raw
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Float64 parses the number payload. Valid only for KindNumber.
func (v Value) Float64() (float64, error) {
	return strconv.ParseFloat(v.raw, 64)
}

// IsIntegralNumber reports whether the value is a number written without a
// fraction or exponent, the distinction the integer/float type patterns
// rely on: 25 is integral, 25.0 and 1e3 are not.
func (v Value) IsIntegralNumber() bool {
	return v.kind == KindNumber && isIntegerLiteral(v.raw)
}

// Items returns the list payload. The returned slice must not be mutated.
func (v Value) Items() []Value { return v.list }

// Members returns the object payload in document order. The returned slice
// must not be mutated.
func (v Value) Members() []Member { return v.members }

// Get looks up an object member by key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of list items or object members, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Interface converts the value into the ordinary encoding/json shapes
// (nil, bool, float64, string, []any, map[string]any). This is the single
// conversion boundary for collaborators that consume any, such as JSONPath
// evaluation and JSON Schema validation. Object key order is lost here;
// callers that need order keep working on Value.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolVal
	case KindNumber:
		f, err := strconv.ParseFloat(v.raw, 64)
		if err != nil {
			return v.raw
		}
		return f
	case KindString:
		return v.raw
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// JSON renders the value as compact JSON text with members in document
// order and numbers in canonical form.
func (v Value) JSON() string {
	var sb strings.Builder
	v.writeJSON(&sb)
	return sb.String()
}

// String implements fmt.Stringer as compact JSON.
func (v Value) String() string { return v.JSON() }

func (v Value) writeJSON(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		if v.boolVal {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(v.CanonicalNumber())
	case KindString:
		sb.WriteString(quoteJSON(v.raw))
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.writeJSON(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quoteJSON(m.Key))
			sb.WriteByte(':')
			m.Value.writeJSON(sb)
		}
		sb.WriteByte('}')
	}
}

func quoteJSON(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(b)
}

// isIntegerLiteral reports whether a JSON number literal has no fraction and
// no exponent, i.e. it denotes an integer as written. "25" is integral,
// "25.0" and "1e3" are not.
func isIntegerLiteral(lit string) bool {
	if lit == "" {
		return false
	}
	for i := 0; i < len(lit); i++ {
		switch lit[i] {
		case '.', 'e', 'E':
			return false
		}
	}
	return true
}
