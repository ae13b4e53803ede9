package jsontree

import (
	"errors"
	"fmt"

	"github.com/antchfx/xpath"
)

// QueryError reports a path expression the engine could not evaluate.
type QueryError struct {
	Expr string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid xpath %q: %v", e.Expr, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Evaluate runs an XPath 1.0 expression against the tree and returns the
// result in its natural category: []*Node for node sets, or bool, float64,
// string for the scalar categories (so count(//x) comes back as a float64).
func (t *Tree) Evaluate(expr string) (any, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, &QueryError{Expr: expr, Err: err}
	}
	result := compiled.Evaluate(t.navigator())
	if iter, ok := result.(*xpath.NodeIterator); ok {
		return collect(iter), nil
	}
	return result, nil
}

// Filter runs a node-set expression and returns the matched nodes in
// document order. A match on a type attribute yields the owning element.
// Expressions that evaluate to a scalar category are a QueryError here.
func (t *Tree) Filter(expr string) ([]*Node, error) {
	result, err := t.Evaluate(expr)
	if err != nil {
		return nil, err
	}
	nodes, ok := result.([]*Node)
	if !ok {
		return nil, &QueryError{Expr: expr, Err: errors.New("expression does not select nodes")}
	}
	return nodes, nil
}

func collect(iter *xpath.NodeIterator) []*Node {
	nodes := []*Node{}
	for iter.MoveNext() {
		nav, ok := iter.Current().(*navigator)
		if !ok {
			continue
		}
		nodes = append(nodes, nav.curr)
	}
	return nodes
}
