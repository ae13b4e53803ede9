// Package containment implements the structural-subset relation between two
// JSON values: does the haystack contain the needle, anywhere in its
// structure, ignoring extra object keys and list order?
package containment

import "github.com/abdul-hamid-achik/jsonspec/packages/jsonvalue"

// Contains reports whether needle is contained in haystack. The needle
// drives the walk:
//
//   - a scalar needle matches any loosely equal scalar anywhere in the
//     haystack (see jsonvalue.LooseScalarEquals)
//   - an object needle matches when some object anywhere in the haystack
//     carries every needle key with a value that recursively contains the
//     needle's value; extra keys are ignored
//   - a list needle matches when some list anywhere in the haystack has,
//     for every needle element, at least one element containing it; the
//     pairing is existential per element, so element order never matters
//
// The search is anchored at the root and recurses through every object
// member and list element, so a deeply nested fragment still matches.
func Contains(haystack, needle jsonvalue.Value) bool {
	switch needle.Kind() {
	case jsonvalue.KindObject:
		return someReachable(haystack, func(v jsonvalue.Value) bool {
			return objectSubset(v, needle)
		})
	case jsonvalue.KindList:
		return someReachable(haystack, func(v jsonvalue.Value) bool {
			return listSubset(v, needle)
		})
	default:
		return someReachable(haystack, func(v jsonvalue.Value) bool {
			return jsonvalue.LooseScalarEquals(v, needle)
		})
	}
}

// someReachable applies pred to v and every value nested inside it, in
// document order, stopping at the first hit.
func someReachable(v jsonvalue.Value, pred func(jsonvalue.Value) bool) bool {
	if pred(v) {
		return true
	}
	switch v.Kind() {
	case jsonvalue.KindList:
		for _, item := range v.Items() {
			if someReachable(item, pred) {
				return true
			}
		}
	case jsonvalue.KindObject:
		for _, m := range v.Members() {
			if someReachable(m.Value, pred) {
				return true
			}
		}
	}
	return false
}

func objectSubset(candidate, needle jsonvalue.Value) bool {
	if candidate.Kind() != jsonvalue.KindObject {
		return false
	}
	for _, m := range needle.Members() {
		held, ok := candidate.Get(m.Key)
		if !ok || !Contains(held, m.Value) {
			return false
		}
	}
	return true
}

func listSubset(candidate, needle jsonvalue.Value) bool {
	if candidate.Kind() != jsonvalue.KindList {
		return false
	}
	for _, want := range needle.Items() {
		found := false
		for _, held := range candidate.Items() {
			if Contains(held, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
