// Package jsontype matches decoded JSON values against the typed-pattern
// language used by shape assertions.
//
// A pattern spec is either a nested mapping (each key names a member that
// must exist, with the key's own spec applied to its value, extra members
// ignored) or a pattern string of the form
//
//	type[:filter]*
//
// where type is one of string, integer, float, array, boolean, null,
// alternatives are joined with '|' (string|null), and filters chain after
// the type: empty, >{n}, <{n}, url, date, email, regex({expr}). The
// regex argument is treated as opaque up to its matching close parenthesis,
// so expressions containing ':' or '|' parse correctly.
package jsontype

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/jsonspec/packages/jsonvalue"
)

// UnsupportedPatternError reports a pattern that names an unknown type or
// filter, or a filter argument that cannot be compiled. It is produced at
// parse time, never during matching.
type UnsupportedPatternError struct {
	Pattern string
	Detail  string
}

func (e *UnsupportedPatternError) Error() string {
	return fmt.Sprintf("unsupported pattern %q: %s", e.Pattern, e.Detail)
}

func unsupported(pattern, detail string) *UnsupportedPatternError {
	return &UnsupportedPatternError{Pattern: pattern, Detail: detail}
}

// Spec is a parsed type description ready for matching.
type Spec struct {
	pat     *pattern
	members []specMember
}

type specMember struct {
	key  string
	spec *Spec
}

// ParseSpec converts an author-supplied description into a Spec: a pattern
// string, a (possibly nested) mapping of member name to description, or a
// decoded Value holding either shape. Mapping keys are checked in sorted
// order so diagnostics stay deterministic.
func ParseSpec(desc any) (*Spec, error) {
	switch d := desc.(type) {
	case string:
		pat, err := parsePattern(d)
		if err != nil {
			return nil, err
		}
		return &Spec{pat: pat}, nil
	case map[string]any:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		spec := &Spec{}
		for _, k := range keys {
			sub, err := ParseSpec(d[k])
			if err != nil {
				return nil, err
			}
			spec.members = append(spec.members, specMember{key: k, spec: sub})
		}
		return spec, nil
	case map[string]string:
		converted := make(map[string]any, len(d))
		for k, v := range d {
			converted[k] = v
		}
		return ParseSpec(converted)
	case jsonvalue.Value:
		return specFromValue(d)
	default:
		return nil, unsupported(fmt.Sprintf("%v", desc), fmt.Sprintf("a type description must be a string or a mapping, got %T", desc))
	}
}

func specFromValue(v jsonvalue.Value) (*Spec, error) {
	switch v.Kind() {
	case jsonvalue.KindString:
		return ParseSpec(v.Text())
	case jsonvalue.KindObject:
		spec := &Spec{}
		for _, m := range v.Members() {
			sub, err := specFromValue(m.Value)
			if err != nil {
				return nil, err
			}
			spec.members = append(spec.members, specMember{key: m.Key, spec: sub})
		}
		return spec, nil
	default:
		return nil, unsupported(v.JSON(), "a type description must be a string or a mapping")
	}
}

// Describe renders the spec compactly, for use in negated-match
// diagnostics.
func (s *Spec) Describe() string {
	if s.pat != nil {
		return "'" + s.pat.raw + "'"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range s.members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Quote(m.key))
		sb.WriteByte(':')
		sb.WriteString(m.spec.Describe())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Match applies the spec to a value. A failed match returns a stable
// diagnostic naming the offending key path or list item and echoing a
// compact serialization of the inspected value; a successful match returns
// an empty diagnostic.
//
// A mapping spec checks only the members it names (subset semantics), and
// when the value is a list the mapping is applied to every element. A
// pattern spec applies to the value itself.
func Match(v jsonvalue.Value, spec *Spec) (bool, string) {
	return matchAt(v, spec, "")
}

func matchAt(v jsonvalue.Value, spec *Spec, path string) (bool, string) {
	if spec.pat != nil {
		if spec.pat.match(v) {
			return true, ""
		}
		if path != "" {
			return false, fmt.Sprintf("key '%s' value %s does not match '%s'", path, compact(v), spec.pat.raw)
		}
		return false, fmt.Sprintf("value %s does not match '%s'", compact(v), spec.pat.raw)
	}

	if v.Kind() == jsonvalue.KindList {
		for i, item := range v.Items() {
			if ok, msg := matchAt(item, spec, path); !ok {
				return false, fmt.Sprintf("item[%d]: %s", i, msg)
			}
		}
		return true, ""
	}

	if v.Kind() != jsonvalue.KindObject {
		if path != "" {
			return false, fmt.Sprintf("key '%s' is not an object: %s", path, compact(v))
		}
		return false, fmt.Sprintf("expected an object to inspect, got %s", compact(v))
	}

	for _, m := range spec.members {
		childPath := joinPath(path, m.key)
		held, ok := v.Get(m.key)
		if !ok {
			return false, fmt.Sprintf("key '%s' not found in %s", childPath, compact(v))
		}
		if ok, msg := matchAt(held, m.spec, childPath); !ok {
			return false, msg
		}
	}
	return true, ""
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

const compactLimit = 80

func compact(v jsonvalue.Value) string {
	s := v.JSON()
	if len(s) > compactLimit {
		return s[:compactLimit] + "..."
	}
	return s
}
