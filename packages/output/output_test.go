package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/jsonspec/packages/core/suite"
)

func sampleRun() *suite.RunResult {
	return suite.Summarize("user.json", "checks.yaml", []suite.CheckResult{
		{Name: "has user", Passed: true, Duration: 2 * time.Millisecond},
		{Name: "wrong name", Passed: false, Message: "response does not contain the JSON fragment", Duration: time.Millisecond},
		{Name: "bad xpath", Err: errors.New("invalid xpath \"count(\"")},
	}, 5*time.Millisecond)
}

func TestSummarize(t *testing.T) {
	r := sampleRun()

	assert.Equal(t, 1, r.Passed)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 1, r.Errored)
	assert.Equal(t, "user.json", r.Document)
	assert.Equal(t, "checks.yaml", r.Suite)
}

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatResult(sampleRun())
	out := buf.String()

	assert.Contains(t, out, "Checking: user.json against checks.yaml")
	assert.Contains(t, out, "✓ has user")
	assert.Contains(t, out, "✗ wrong name")
	assert.Contains(t, out, "→ response does not contain the JSON fragment")
	assert.Contains(t, out, "x bad xpath")
	assert.Contains(t, out, "1 passed")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "1 errored")
	assert.Contains(t, out, "3 total")
}

func TestConsoleFormatter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithQuiet(true))

	f.FormatResult(sampleRun())
	out := buf.String()

	assert.NotContains(t, out, "Checking:")
	assert.NotContains(t, out, "✓ has user")
	assert.Contains(t, out, "✗ wrong name")
	assert.Contains(t, out, "3 total")
}

func TestConsoleFormatter_TruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("m", 150)
	run := suite.Summarize("doc.json", "", []suite.CheckResult{
		{Name: "long", Passed: false, Message: long},
	}, time.Millisecond)

	var buf bytes.Buffer
	NewConsoleFormatter(WithWriter(&buf), WithNoColor(true)).FormatResult(run)
	assert.Contains(t, buf.String(), long[:100]+"...")

	buf.Reset()
	NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true)).FormatResult(run)
	assert.Contains(t, buf.String(), long)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatResult(sampleRun())
	require.NoError(t, f.Flush(5*time.Millisecond))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	_, err := uuid.Parse(out.RunID)
	assert.NoError(t, err)
	assert.Equal(t, f.RunID(), out.RunID)

	assert.Equal(t, 3, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.Passed)
	assert.Equal(t, 1, out.Summary.Failed)
	assert.Equal(t, 1, out.Summary.Errored)

	require.Len(t, out.Checks, 3)
	assert.Equal(t, "has user", out.Checks[0].Name)
	assert.True(t, out.Checks[0].Passed)
	assert.Equal(t, "user.json", out.Checks[0].Document)
	assert.NotEmpty(t, out.Checks[1].Message)
	assert.NotEmpty(t, out.Checks[2].Error)
}

func TestJUnitFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJUnitFormatter(JUnitWithWriter(&buf))

	f.FormatResult(sampleRun())
	require.NoError(t, f.Flush(5*time.Millisecond))

	var out JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "jsonspec", out.Name)
	assert.Equal(t, 3, out.Tests)
	assert.Equal(t, 1, out.Failures)
	assert.Equal(t, 1, out.Errors)

	require.Len(t, out.TestSuites, 1)
	ts := out.TestSuites[0]
	assert.Equal(t, "checks.yaml", ts.Name)
	require.Len(t, ts.TestCases, 3)
	assert.Nil(t, ts.TestCases[0].Failure)
	require.NotNil(t, ts.TestCases[1].Failure)
	assert.Contains(t, ts.TestCases[1].Failure.Content, "does not contain")
	require.NotNil(t, ts.TestCases[2].Error)
}

func TestTAPFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTAPFormatter(TAPWithWriter(&buf))

	f.FormatResult(sampleRun())
	require.NoError(t, f.Flush(5*time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "TAP version 13\n")
	assert.Contains(t, out, "1..3\n")
	assert.Contains(t, out, "ok 1 - has user\n")
	assert.Contains(t, out, "not ok 2 - wrong name\n")
	assert.Contains(t, out, "not ok 3 - bad xpath\n")
	assert.Contains(t, out, "severity: error\n")
}
