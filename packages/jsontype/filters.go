package jsontype

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/jsonspec/packages/jsonvalue"
)

type filter interface {
	apply(v jsonvalue.Value) bool
}

type emptyFilter struct{}

func (emptyFilter) apply(v jsonvalue.Value) bool {
	return v.IsContainer() && v.Len() == 0
}

// compareFilter implements >{n} and <{n}. Strings are parsed as numbers for
// the comparison; a string that is not numeric never satisfies the filter.
type compareFilter struct {
	op    byte
	bound float64
	raw   string
}

func (f compareFilter) apply(v jsonvalue.Value) bool {
	var n float64
	var err error
	switch v.Kind() {
	case jsonvalue.KindNumber:
		n, err = v.Float64()
	case jsonvalue.KindString:
		n, err = strconv.ParseFloat(v.Text(), 64)
	default:
		return false
	}
	if err != nil {
		return false
	}
	if f.op == '>' {
		return n > f.bound
	}
	return n < f.bound
}

type urlFilter struct{}

func (urlFilter) apply(v jsonvalue.Value) bool {
	u, err := url.Parse(v.Text())
	return err == nil && u.IsAbs() && u.Host != ""
}

// dateLayouts is the documented set of accepted date/time forms, tried in
// order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

type dateFilter struct{}

func (dateFilter) apply(v jsonvalue.Value) bool {
	s := v.Text()
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// emailPattern is the WHATWG HTML5 email input pattern.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

type emailFilter struct{}

func (emailFilter) apply(v jsonvalue.Value) bool {
	return emailPattern.MatchString(v.Text())
}

type regexFilter struct {
	re *regexp.Regexp
}

func (f regexFilter) apply(v jsonvalue.Value) bool {
	return f.re.MatchString(v.Text())
}

// compileRegexFilter compiles the opaque regex(...) argument. Arguments may
// arrive with PCRE-style delimiters (~@~, /x/i, {x}i and the other bracket
// pairs); the delimiters are stripped and trailing i, m, s flags become the
// equivalent inline flags. Undelimited arguments compile as written.
// Compilation happens here, at parse time, so an invalid expression is an
// UnsupportedPatternError rather than a silent mismatch.
func compileRegexFilter(raw, arg string) (filter, error) {
	body, flags, delimited := stripRegexDelimiters(arg)
	if !delimited {
		body, flags = arg, ""
	}

	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			inline.WriteRune(f)
		case 'u':
			// native behavior, nothing to map
		default:
			return nil, unsupported(raw, "unsupported regex flag "+strconv.QuoteRune(f))
		}
	}
	if inline.Len() > 0 {
		body = "(?" + inline.String() + ")" + body
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, unsupported(raw, "invalid regex: "+err.Error())
	}
	return regexFilter{re: re}, nil
}

// stripRegexDelimiters detects a PCRE-style delimited expression: the first
// byte is a non-alphanumeric delimiter whose partner (the same byte, or the
// closing bracket for a bracket pair) appears later; everything after the
// closing delimiter is flags.
func stripRegexDelimiters(s string) (body, flags string, ok bool) {
	if len(s) < 2 {
		return "", "", false
	}
	open := s[0]
	if isAlphanumeric(open) || open == '\\' || open == ' ' {
		return "", "", false
	}
	closing := open
	switch open {
	case '(':
		closing = ')'
	case '{':
		closing = '}'
	case '[':
		closing = ']'
	case '<':
		closing = '>'
	}
	end := strings.LastIndexByte(s, closing)
	if end <= 0 {
		return "", "", false
	}
	return s[1:end], s[end+1:], true
}

func isAlphanumeric(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
