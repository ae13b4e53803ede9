package suite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/jsonspec/packages/assertions"
)

const suiteBody = `{
	"user": {"id": 42, "name": "Nadia", "roles": ["admin", "editor"]},
	"success": 1
}`

func mustAsserter(t *testing.T, body string) *assertions.Asserter {
	t.Helper()
	a, err := assertions.NewAsserter(body)
	require.NoError(t, err)
	return a
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
name: user checks
checks:
  - name: contains user
    containsJson: {user: {name: Nadia}}
  - name: id typed
    jsonType: {id: integer}
    jsonPath: $.user
  - name: name present
    jsonPath: $.user.name
  - name: success set
    xpath: count(//success)
  - name: schema ok
    schema: ./user.schema.json
  - name: no token
    dontJsonPath: $.token
`))
	require.NoError(t, err)

	assert.Equal(t, "user checks", s.Name)
	require.Len(t, s.Checks, 6)
	assert.Equal(t, "contains user", s.Checks[0].Name)
	assert.NotNil(t, s.Checks[0].ContainsJSON)
	assert.Equal(t, "$.user", s.Checks[1].JSONPath)
	assert.Equal(t, "./user.schema.json", s.Checks[4].Schema)
	assert.Equal(t, "$.token", s.Checks[5].DontJSONPath)
}

func TestParse_UnnamedChecksGetPositionalNames(t *testing.T) {
	s, err := Parse([]byte(`
checks:
  - jsonPath: $.user
  - xpath: //success
`))
	require.NoError(t, err)
	require.Len(t, s.Checks, 2)
	assert.Equal(t, "check 1", s.Checks[0].Name)
	assert.Equal(t, "check 2", s.Checks[1].Name)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "not yaml",
			yaml:    `checks: "unterminated`,
			wantErr: "parsing suite",
		},
		{
			name:    "no checks",
			yaml:    "name: empty",
			wantErr: "no checks",
		},
		{
			name: "check without assertion",
			yaml: `
checks:
  - name: empty check
`,
			wantErr: "check 1 has no assertion",
		},
		{
			name: "check with two assertions",
			yaml: `
checks:
  - name: doubled
    jsonPath: $.user
    xpath: //user
`,
			wantErr: "check 1 has 2 assertions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_JSONPathTargetsJSONType(t *testing.T) {
	s, err := Parse([]byte(`
checks:
  - name: typed target
    jsonType: {id: integer}
    jsonPath: $.user
`))
	require.NoError(t, err)
	require.Len(t, s.Checks, 1)
	assert.NotNil(t, s.Checks[0].JSONType)
	assert.Equal(t, "$.user", s.Checks[0].JSONPath)
}

func TestLoad(t *testing.T) {
	content := `
checks:
  - name: has user
    jsonPath: $.user
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "suite.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Checks, 1)

	_, err = Load(filepath.Join(tmpDir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading suite")
}

func TestSchemaPaths(t *testing.T) {
	s, err := Parse([]byte(`
checks:
  - name: a
    schema: ./user.schema.json
  - name: b
    schema: ./order.schema.json
  - name: c
    schema: ./user.schema.json
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"./user.schema.json", "./order.schema.json"}, s.SchemaPaths())
}

func TestRun(t *testing.T) {
	s, err := Parse([]byte(`
checks:
  - name: contains user
    containsJson: {user: {name: Nadia}}
  - name: id typed
    jsonType: {id: integer, name: string}
    jsonPath: $.user
  - name: roles present
    jsonPath: $.user.roles
  - name: success truthy
    xpath: count(//success)
  - name: wrong name
    containsJson: {user: {name: Bodya}}
  - name: no token
    dontJsonPath: $.token
`))
	require.NoError(t, err)

	a := mustAsserter(t, suiteBody)
	results := Run(a, s, nil)
	require.Len(t, results, 6)

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
		assert.NoError(t, r.Err, r.Name)
	}
	assert.Equal(t, []string{
		"contains user", "id typed", "roles present",
		"success truthy", "wrong name", "no token",
	}, names)

	assert.True(t, results[0].Passed)
	assert.True(t, results[1].Passed, results[1].Message)
	assert.True(t, results[2].Passed)
	assert.True(t, results[3].Passed, results[3].Message)
	assert.False(t, results[4].Passed)
	assert.NotEmpty(t, results[4].Message)
	assert.True(t, results[5].Passed)
}

func TestRun_XPathTruthiness(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"non-zero count", "count(//user/roles)", true},
		{"zero count", "count(//token)", false},
		{"boolean", "count(//success) > 0", true},
		{"non-empty string", "string(//user/name)", true},
		{"empty string", "string(//token)", false},
		{"node-set", "//user", true},
		{"empty node-set", "//token", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Suite{Checks: []Check{{Name: "x", XPath: tt.expr}}}
			a := mustAsserter(t, suiteBody)

			results := Run(a, s, nil)
			require.Len(t, results, 1)
			require.NoError(t, results[0].Err)
			assert.Equal(t, tt.want, results[0].Passed, results[0].Message)

			neg := &Suite{Checks: []Check{{Name: "x", DontXPath: tt.expr}}}
			results = Run(mustAsserter(t, suiteBody), neg, nil)
			require.NoError(t, results[0].Err)
			assert.Equal(t, !tt.want, results[0].Passed)
		})
	}
}

func TestRun_SchemaChecks(t *testing.T) {
	s := &Suite{Checks: []Check{
		{Name: "valid", Schema: "user.schema.json"},
		{Name: "missing", Schema: "other.schema.json"},
	}}
	schemas := map[string]string{
		"user.schema.json": `{"type": "object", "required": ["user", "success"]}`,
	}

	a := mustAsserter(t, suiteBody)
	results := Run(a, s, schemas)
	require.Len(t, results, 2)

	assert.True(t, results[0].Passed, results[0].Message)
	require.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "not loaded")
	assert.False(t, results[1].Passed)
}

func TestRun_BadExpressionIsError(t *testing.T) {
	s := &Suite{Checks: []Check{
		{Name: "bad xpath", XPath: "count("},
		{Name: "bad jsonpath", JSONPath: "$["},
		{Name: "still runs", JSONPath: "$.user"},
	}}

	a := mustAsserter(t, suiteBody)
	results := Run(a, s, nil)
	require.Len(t, results, 3)

	assert.Error(t, results[0].Err)
	assert.Error(t, results[1].Err)
	require.NoError(t, results[2].Err)
	assert.True(t, results[2].Passed)
}
