package assertions

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/abdul-hamid-achik/jsonspec/packages/containment"
	"github.com/abdul-hamid-achik/jsonspec/packages/jsonpath"
	"github.com/abdul-hamid-achik/jsonspec/packages/jsontree"
	"github.com/abdul-hamid-achik/jsonspec/packages/jsontype"
	"github.com/abdul-hamid-achik/jsonspec/packages/jsonvalue"
)

// Result is the outcome of one assertion. A false Passed is an expected
// mismatch, not an error; Message explains it for the test author.
type Result struct {
	Passed  bool
	Message string
}

func pass() Result { return Result{Passed: true} }

func fail(format string, args ...any) Result {
	return Result{Passed: false, Message: fmt.Sprintf(format, args...)}
}

// Asserter runs assertion verbs against one response body. The body is
// decoded once at construction; the projected tree and the plain interface
// form are built on first use and shared by every later call, so an
// Asserter is safe for concurrent readers.
type Asserter struct {
	body  string
	value jsonvalue.Value
	raw   gjson.Result

	treeOnce sync.Once
	tree     *jsontree.Tree
}

// NewAsserter decodes a response body. Invalid JSON (including an empty
// body) fails with *jsonvalue.DecodeError.
func NewAsserter(body string) (*Asserter, error) {
	v, err := jsonvalue.DecodeString(body)
	if err != nil {
		return nil, err
	}
	return &Asserter{body: body, value: v, raw: gjson.Parse(body)}, nil
}

// Body returns the raw body text.
func (a *Asserter) Body() string { return a.body }

// Value returns the decoded body.
func (a *Asserter) Value() jsonvalue.Value { return a.value }

// Tree returns the projected tree, building it on first call.
func (a *Asserter) Tree() *jsontree.Tree {
	a.treeOnce.Do(func() {
		a.tree = jsontree.Project(a.value)
	})
	return a.tree
}

// SeeResponseContainsJSON checks that the fragment is structurally
// contained in the body: object keys are a subset, list elements match
// existentially in any order, scalars compare loosely.
func (a *Asserter) SeeResponseContainsJSON(fragment any) (Result, error) {
	needle, err := jsonvalue.FromInterface(fragment)
	if err != nil {
		return Result{}, err
	}
	if containment.Contains(a.value, needle) {
		return pass(), nil
	}
	return fail("response does not contain the JSON fragment %s; response was %s",
		compactValue(needle, 120), compactValue(a.value, 120)), nil
}

// DontSeeResponseContainsJSON is the negation of SeeResponseContainsJSON.
func (a *Asserter) DontSeeResponseContainsJSON(fragment any) (Result, error) {
	needle, err := jsonvalue.FromInterface(fragment)
	if err != nil {
		return Result{}, err
	}
	if !containment.Contains(a.value, needle) {
		return pass(), nil
	}
	return fail("response unexpectedly contains the JSON fragment %s", compactValue(needle, 120)), nil
}

// SeeResponseMatchesJSONType checks the body against a typed-pattern
// description. A non-empty jsonPath selects the values to inspect, every
// one of which must match; with an empty path the whole body is inspected.
// Unknown types or filters in the description fail with
// *jsontype.UnsupportedPatternError.
func (a *Asserter) SeeResponseMatchesJSONType(desc any, jsonPath string) (Result, error) {
	spec, targets, err := a.typeTargets(desc, jsonPath)
	if err != nil {
		return Result{}, err
	}
	if len(targets) == 0 {
		return fail("nothing matched path '%s' in response %s", jsonPath, compactValue(a.value, 120)), nil
	}
	for _, target := range targets {
		if ok, msg := jsontype.Match(target, spec); !ok {
			return fail("%s", msg), nil
		}
	}
	return pass(), nil
}

// DontSeeResponseMatchesJSONType is the negation of
// SeeResponseMatchesJSONType; a path that selects nothing passes.
func (a *Asserter) DontSeeResponseMatchesJSONType(desc any, jsonPath string) (Result, error) {
	spec, targets, err := a.typeTargets(desc, jsonPath)
	if err != nil {
		return Result{}, err
	}
	if len(targets) == 0 {
		return pass(), nil
	}
	for _, target := range targets {
		if ok, _ := jsontype.Match(target, spec); !ok {
			return pass(), nil
		}
	}
	if len(targets) == 1 {
		return fail("json unexpectedly matches type %s; inspected %s",
			spec.Describe(), compactValue(targets[0], 120)), nil
	}
	return fail("json unexpectedly matches type %s; all %d selected values match",
		spec.Describe(), len(targets)), nil
}

func (a *Asserter) typeTargets(desc any, jsonPath string) (*jsontype.Spec, []jsonvalue.Value, error) {
	spec, err := jsontype.ParseSpec(desc)
	if err != nil {
		return nil, nil, err
	}
	if jsonPath == "" {
		return spec, []jsonvalue.Value{a.value}, nil
	}
	matches, err := jsonpath.Filter(a.value, jsonPath)
	if err != nil {
		return nil, nil, err
	}
	return spec, matches, nil
}

// SeeResponseJSONMatchesJSONPath checks that the expression selects at
// least one element.
func (a *Asserter) SeeResponseJSONMatchesJSONPath(expr string) (Result, error) {
	matches, err := jsonpath.Filter(a.value, expr)
	if err != nil {
		return Result{}, err
	}
	if len(matches) > 0 {
		return pass(), nil
	}
	return fail("no elements matched JSONPath '%s' in response %s", expr, compactValue(a.value, 120)), nil
}

// DontSeeResponseJSONMatchesJSONPath is the negation of
// SeeResponseJSONMatchesJSONPath.
func (a *Asserter) DontSeeResponseJSONMatchesJSONPath(expr string) (Result, error) {
	matches, err := jsonpath.Filter(a.value, expr)
	if err != nil {
		return Result{}, err
	}
	if len(matches) == 0 {
		return pass(), nil
	}
	return fail("%d element(s) unexpectedly matched JSONPath '%s'", len(matches), expr), nil
}

// SeeResponseJSONMatchesXPath checks that the expression selects at least
// one node of the projected tree.
func (a *Asserter) SeeResponseJSONMatchesXPath(expr string) (Result, error) {
	nodes, err := a.Tree().Filter(expr)
	if err != nil {
		return Result{}, err
	}
	if len(nodes) > 0 {
		return pass(), nil
	}
	return fail("no nodes matched XPath '%s' in response %s", expr, compactValue(a.value, 120)), nil
}

// DontSeeResponseJSONMatchesXPath is the negation of
// SeeResponseJSONMatchesXPath.
func (a *Asserter) DontSeeResponseJSONMatchesXPath(expr string) (Result, error) {
	nodes, err := a.Tree().Filter(expr)
	if err != nil {
		return Result{}, err
	}
	if len(nodes) == 0 {
		return pass(), nil
	}
	return fail("%d node(s) unexpectedly matched XPath '%s'", len(nodes), expr), nil
}

// GrabDataFromResponseByJSONPath returns every value the expression
// selects; an empty result is not an error.
func (a *Asserter) GrabDataFromResponseByJSONPath(expr string) ([]jsonvalue.Value, error) {
	return jsonpath.Filter(a.value, expr)
}

// EvaluateXPath evaluates any XPath 1.0 expression against the projected
// tree: node-set expressions yield []*jsontree.Node, the scalar categories
// yield bool, float64 or string.
func (a *Asserter) EvaluateXPath(expr string) (any, error) {
	return a.Tree().Evaluate(expr)
}

// FilterByXPath returns the nodes a node-set expression selects.
func (a *Asserter) FilterByXPath(expr string) ([]*jsontree.Node, error) {
	return a.Tree().Filter(expr)
}

// GrabByPath looks up a gjson dot path on the raw body, for quick scalar
// grabs like "user.ids.0".
func (a *Asserter) GrabByPath(path string) (any, bool) {
	r := a.raw.Get(path)
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}

// HasPath reports whether a gjson dot path exists in the raw body.
func (a *Asserter) HasPath(path string) bool {
	return a.raw.Get(path).Exists()
}

// SeeResponseIsValidOnJSONSchemaStr validates the raw body against a JSON
// Schema supplied as text. A malformed schema is an error; a failing
// document is a Result listing the violations.
func (a *Asserter) SeeResponseIsValidOnJSONSchemaStr(schema string) (Result, error) {
	if strings.TrimSpace(schema) == "" {
		return Result{}, fmt.Errorf("schema is empty")
	}
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewStringLoader(a.body)

	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return Result{}, fmt.Errorf("schema validation: %w", err)
	}
	if validation.Valid() {
		return pass(), nil
	}

	var problems []string
	for _, desc := range validation.Errors() {
		problems = append(problems, desc.String())
	}
	return fail("schema validation failed: %s", strings.Join(problems, "; ")), nil
}

// ToXML renders the projected tree as markup, preserving each leaf's type
// attribute.
func (a *Asserter) ToXML() string {
	return a.Tree().XML()
}

// SanitizedTags exposes the projection's illegal-key to placeholder-tag
// mapping for diagnostics.
func (a *Asserter) SanitizedTags() map[string]string {
	return a.Tree().SanitizedTags()
}

func compactValue(v jsonvalue.Value, maxLen int) string {
	s := v.JSON()
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
