package jsontype

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/jsonspec/packages/jsonvalue"
)

// pattern is one parsed `type[:filter]*` chain, possibly with alternatives
// joined by '|'. A value matches when any alternative accepts it.
type pattern struct {
	raw  string
	alts []alternative
}

type alternative struct {
	typ     string
	filters []filter
}

var knownTypes = map[string]bool{
	"string":  true,
	"integer": true,
	"float":   true,
	"array":   true,
	"boolean": true,
	"null":    true,
}

// parsePattern scans a pattern string. Splitting on '|' and ':' tracks
// parenthesis depth so that regex(...) arguments containing either
// character stay opaque. All problems are reported at parse time as
// *UnsupportedPatternError.
func parsePattern(raw string) (*pattern, error) {
	p := &pattern{raw: raw}
	for _, part := range splitTop(raw, '|') {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, unsupported(raw, "empty type alternative")
		}
		alt, err := parseAlternative(raw, part)
		if err != nil {
			return nil, err
		}
		p.alts = append(p.alts, alt)
	}
	return p, nil
}

func parseAlternative(raw, part string) (alternative, error) {
	chain := splitTop(part, ':')
	typ := strings.TrimSpace(chain[0])
	if !knownTypes[typ] {
		return alternative{}, unsupported(raw, fmt.Sprintf("unknown type %q", typ))
	}

	alt := alternative{typ: typ}
	for _, tok := range chain[1:] {
		f, err := parseFilter(raw, typ, strings.TrimSpace(tok))
		if err != nil {
			return alternative{}, err
		}
		alt.filters = append(alt.filters, f)
	}
	return alt, nil
}

func parseFilter(raw, typ, tok string) (filter, error) {
	switch {
	case tok == "":
		return nil, unsupported(raw, "empty filter")
	case tok == "empty":
		if typ != "array" {
			return nil, unsupported(raw, fmt.Sprintf("filter 'empty' does not apply to type %q", typ))
		}
		return emptyFilter{}, nil
	case tok[0] == '>' || tok[0] == '<':
		if typ != "integer" && typ != "float" && typ != "string" {
			return nil, unsupported(raw, fmt.Sprintf("filter %q does not apply to type %q", tok, typ))
		}
		bound, err := strconv.ParseFloat(strings.TrimSpace(tok[1:]), 64)
		if err != nil {
			return nil, unsupported(raw, fmt.Sprintf("filter %q has a non-numeric bound", tok))
		}
		return compareFilter{op: tok[0], bound: bound, raw: tok}, nil
	case tok == "url", tok == "date", tok == "email":
		if typ != "string" {
			return nil, unsupported(raw, fmt.Sprintf("filter %q does not apply to type %q", tok, typ))
		}
		switch tok {
		case "url":
			return urlFilter{}, nil
		case "date":
			return dateFilter{}, nil
		default:
			return emailFilter{}, nil
		}
	case strings.HasPrefix(tok, "regex(") && strings.HasSuffix(tok, ")"):
		if typ != "string" {
			return nil, unsupported(raw, fmt.Sprintf("filter 'regex' does not apply to type %q", typ))
		}
		return compileRegexFilter(raw, tok[len("regex("):len(tok)-1])
	default:
		return nil, unsupported(raw, fmt.Sprintf("unknown filter %q", tok))
	}
}

// splitTop splits s on sep occurrences that sit at parenthesis depth zero.
func splitTop(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for pos := 0; pos < len(s); pos++ {
		switch s[pos] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:pos])
				start = pos + 1
			}
		}
	}
	return append(parts, s[start:])
}

func (p *pattern) match(v jsonvalue.Value) bool {
	for _, alt := range p.alts {
		if alt.match(v) {
			return true
		}
	}
	return false
}

func (alt alternative) match(v jsonvalue.Value) bool {
	if !typeMatches(alt.typ, v) {
		return false
	}
	for _, f := range alt.filters {
		if !f.apply(v) {
			return false
		}
	}
	return true
}

func typeMatches(typ string, v jsonvalue.Value) bool {
	switch typ {
	case "string":
		return v.Kind() == jsonvalue.KindString
	case "integer":
		return v.IsIntegralNumber()
	case "float":
		return v.Kind() == jsonvalue.KindNumber && !v.IsIntegralNumber()
	case "array":
		// both JSON lists and objects count, the pattern language predates
		// the distinction
		return v.IsContainer()
	case "boolean":
		return v.Kind() == jsonvalue.KindBool
	case "null":
		return v.Kind() == jsonvalue.KindNull
	default:
		return false
	}
}
