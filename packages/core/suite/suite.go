package suite

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/jsonspec/packages/assertions"
	"github.com/abdul-hamid-achik/jsonspec/packages/jsontree"
)

// Suite is one parsed check-suite file.
type Suite struct {
	Name   string  `yaml:"name"`
	Checks []Check `yaml:"checks"`
}

// Check is a single named assertion. Exactly one assertion field may be
// set; JSONPath doubles as the target selector when JSONType or
// DontJSONType is present.
type Check struct {
	Name string `yaml:"name"`

	ContainsJSON any    `yaml:"containsJson"`
	JSONType     any    `yaml:"jsonType"`
	JSONPath     string `yaml:"jsonPath"`
	XPath        string `yaml:"xpath"`
	Schema       string `yaml:"schema"`

	DontContainsJSON any    `yaml:"dontContainsJson"`
	DontJSONType     any    `yaml:"dontJsonType"`
	DontJSONPath     string `yaml:"dontJsonPath"`
	DontXPath        string `yaml:"dontXpath"`
}

// CheckResult is the outcome of one check. A non-nil Err means the check
// could not be evaluated (bad expression, bad pattern, missing schema) and
// Passed is false; otherwise Message explains a failed assertion.
type CheckResult struct {
	Name     string
	Passed   bool
	Message  string
	Err      error
	Duration time.Duration
}

// RunResult aggregates one suite run for reporting and history.
type RunResult struct {
	Document string
	Suite    string
	Results  []CheckResult
	Duration time.Duration
	Passed   int
	Failed   int
	Errored  int
}

// Summarize wraps ordered check results into a RunResult, counting
// outcomes. Errored checks are not counted as Failed.
func Summarize(document, suiteName string, results []CheckResult, duration time.Duration) *RunResult {
	r := &RunResult{
		Document: document,
		Suite:    suiteName,
		Results:  results,
		Duration: duration,
	}
	for _, c := range results {
		switch {
		case c.Err != nil:
			r.Errored++
		case c.Passed:
			r.Passed++
		default:
			r.Failed++
		}
	}
	return r
}

// Load reads and parses a suite file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite: %w", err)
	}
	return Parse(data)
}

// Parse parses suite YAML and validates that every check carries exactly
// one assertion. Unnamed checks are given positional names.
func Parse(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing suite: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Suite) validate() error {
	if len(s.Checks) == 0 {
		return fmt.Errorf("suite has no checks")
	}
	for i := range s.Checks {
		c := &s.Checks[i]
		n := 0
		if c.ContainsJSON != nil {
			n++
		}
		if c.DontContainsJSON != nil {
			n++
		}
		if c.JSONType != nil {
			n++
		}
		if c.DontJSONType != nil {
			n++
		}
		if c.JSONPath != "" && c.JSONType == nil && c.DontJSONType == nil {
			n++
		}
		if c.DontJSONPath != "" {
			n++
		}
		if c.XPath != "" {
			n++
		}
		if c.DontXPath != "" {
			n++
		}
		if c.Schema != "" {
			n++
		}
		if n == 0 {
			return fmt.Errorf("check %d has no assertion", i+1)
		}
		if n > 1 {
			return fmt.Errorf("check %d has %d assertions, want exactly one", i+1, n)
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("check %d", i+1)
		}
	}
	return nil
}

// SchemaPaths returns the distinct schema references in check order, so a
// caller can load them relative to the suite file before running.
func (s *Suite) SchemaPaths() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range s.Checks {
		if c.Schema != "" && !seen[c.Schema] {
			seen[c.Schema] = true
			out = append(out, c.Schema)
		}
	}
	return out
}

// Run evaluates every check against the asserter, in order. schemas maps
// each schema reference to its loaded text; a reference with no entry
// fails that check with an error.
func Run(a *assertions.Asserter, s *Suite, schemas map[string]string) []CheckResult {
	results := make([]CheckResult, 0, len(s.Checks))
	for i := range s.Checks {
		results = append(results, RunCheck(a, &s.Checks[i], schemas))
	}
	return results
}

// RunCheck evaluates one check. Callers that stop on the first failure
// drive this directly instead of Run.
func RunCheck(a *assertions.Asserter, c *Check, schemas map[string]string) CheckResult {
	start := time.Now()
	res, err := evaluate(a, c, schemas)
	out := CheckResult{Name: c.Name, Duration: time.Since(start)}
	if err != nil {
		out.Err = err
		return out
	}
	out.Passed = res.Passed
	out.Message = res.Message
	return out
}

func evaluate(a *assertions.Asserter, c *Check, schemas map[string]string) (assertions.Result, error) {
	switch {
	case c.ContainsJSON != nil:
		return a.SeeResponseContainsJSON(c.ContainsJSON)
	case c.DontContainsJSON != nil:
		return a.DontSeeResponseContainsJSON(c.DontContainsJSON)
	case c.JSONType != nil:
		return a.SeeResponseMatchesJSONType(c.JSONType, c.JSONPath)
	case c.DontJSONType != nil:
		return a.DontSeeResponseMatchesJSONType(c.DontJSONType, c.JSONPath)
	case c.JSONPath != "":
		return a.SeeResponseJSONMatchesJSONPath(c.JSONPath)
	case c.DontJSONPath != "":
		return a.DontSeeResponseJSONMatchesJSONPath(c.DontJSONPath)
	case c.XPath != "":
		return evalXPath(a, c.XPath, false)
	case c.DontXPath != "":
		return evalXPath(a, c.DontXPath, true)
	case c.Schema != "":
		text, ok := schemas[c.Schema]
		if !ok {
			return assertions.Result{}, fmt.Errorf("schema %q is not loaded", c.Schema)
		}
		return a.SeeResponseIsValidOnJSONSchemaStr(text)
	}
	return assertions.Result{}, fmt.Errorf("check %q has no assertion", c.Name)
}

// evalXPath accepts any XPath result category and converts it with the
// XPath boolean rules: a node-set is truthy when non-empty, a number when
// non-zero, a string when non-empty.
func evalXPath(a *assertions.Asserter, expr string, negate bool) (assertions.Result, error) {
	v, err := a.EvaluateXPath(expr)
	if err != nil {
		return assertions.Result{}, err
	}
	truthy := xpathTruthy(v)
	if truthy == !negate {
		return assertions.Result{Passed: true}, nil
	}
	if negate {
		return assertions.Result{Message: fmt.Sprintf("xpath '%s' is unexpectedly satisfied (%s)", expr, describeXPathResult(v))}, nil
	}
	return assertions.Result{Message: fmt.Sprintf("xpath '%s' is not satisfied (%s)", expr, describeXPathResult(v))}, nil
}

func xpathTruthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	case []*jsontree.Node:
		return len(t) > 0
	}
	return false
}

func describeXPathResult(v any) string {
	switch t := v.(type) {
	case bool:
		return fmt.Sprintf("boolean %v", t)
	case float64:
		return fmt.Sprintf("number %v", t)
	case string:
		return fmt.Sprintf("string %q", t)
	case []*jsontree.Node:
		return fmt.Sprintf("%d node(s)", len(t))
	}
	return fmt.Sprintf("%T", v)
}
