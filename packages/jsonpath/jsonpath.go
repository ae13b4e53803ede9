// Package jsonpath evaluates RFC 9535 JSONPath expressions directly against
// decoded values, without going through the projected tree.
package jsonpath

import (
	"fmt"

	jp "github.com/theory/jsonpath"

	"github.com/abdul-hamid-achik/jsonspec/packages/jsonvalue"
)

// QueryError reports a malformed JSONPath expression.
type QueryError struct {
	Expr string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid jsonpath %q: %v", e.Expr, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Validate checks an expression without evaluating it.
func Validate(expr string) error {
	if _, err := jp.Parse(expr); err != nil {
		return &QueryError{Expr: expr, Err: err}
	}
	return nil
}

// Filter returns every value the expression selects, in document order for
// list-derived matches. No match is an empty slice, never an error; only a
// malformed expression fails.
func Filter(v jsonvalue.Value, expr string) ([]jsonvalue.Value, error) {
	path, err := jp.Parse(expr)
	if err != nil {
		return nil, &QueryError{Expr: expr, Err: err}
	}

	matches := path.Select(v.Interface())
	out := make([]jsonvalue.Value, 0, len(matches))
	for _, m := range matches {
		mv, err := jsonvalue.FromInterface(m)
		if err != nil {
			return nil, fmt.Errorf("convert match for %q: %w", expr, err)
		}
		out = append(out, mv)
	}
	return out, nil
}
