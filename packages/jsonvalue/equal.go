package jsonvalue

import "strconv"

// LooseScalarEquals reports whether two scalar values are interchangeable
// under the loose comparison used by containment matching:
//
//   - null equals null
//   - booleans equal by value
//   - numbers compare numerically, so 25, 25.0 and 2.5e1 are all equal
//   - a number equals a string when the string parses as a number with the
//     same numeric value, so "27" equals 27
//   - strings compare bytewise
//
// Booleans never equal numbers or strings, and containers are never loosely
// equal to anything.
func LooseScalarEquals(a, b Value) bool {
	if a.IsContainer() || b.IsContainer() {
		return false
	}
	switch {
	case a.kind == KindNull || b.kind == KindNull:
		return a.kind == KindNull && b.kind == KindNull
	case a.kind == KindBool || b.kind == KindBool:
		return a.kind == KindBool && b.kind == KindBool && a.boolVal == b.boolVal
	case a.kind == KindNumber && b.kind == KindNumber:
		return numbersEqual(a.raw, b.raw)
	case a.kind == KindNumber && b.kind == KindString:
		return numberEqualsString(a, b.raw)
	case a.kind == KindString && b.kind == KindNumber:
		return numberEqualsString(b, a.raw)
	default:
		return a.raw == b.raw
	}
}

func numbersEqual(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil {
		return a == b
	}
	return fa == fb
}

func numberEqualsString(num Value, s string) bool {
	fs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	fn, err := num.Float64()
	if err != nil {
		return num.raw == s
	}
	return fn == fs
}

// Equal reports deep equality of two values. Kinds must match; numbers
// compare numerically, lists elementwise in order, objects by key set with
// Equal values regardless of member order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindNumber:
		return numbersEqual(a.raw, b.raw)
	case KindString:
		return a.raw == b.raw
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
