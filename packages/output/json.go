package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abdul-hamid-achik/jsonspec/packages/core/suite"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	RunID    string      `json:"runId"`
	Summary  JSONSummary `json:"summary"`
	Checks   []JSONCheck `json:"checks"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

// JSONSummary represents the check summary
type JSONSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Errored int `json:"errored"`
}

// JSONCheck represents a single check result
type JSONCheck struct {
	Name     string  `json:"name"`
	Document string  `json:"document,omitempty"`
	Suite    string  `json:"suite,omitempty"`
	Passed   bool    `json:"passed"`
	Message  string  `json:"message,omitempty"`
	Error    string  `json:"error,omitempty"`
	Duration float64 `json:"duration"`
}

// JSONFormatter formats check results as JSON
type JSONFormatter struct {
	writer io.Writer
	runID  string
	checks []JSONCheck
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		runID:  uuid.New().String(),
		checks: make([]JSONCheck, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// RunID returns the identifier stamped on the output document.
func (f *JSONFormatter) RunID() string { return f.runID }

func (f *JSONFormatter) FormatResult(result *suite.RunResult) {
	for _, r := range result.Results {
		check := JSONCheck{
			Name:     r.Name,
			Document: result.Document,
			Suite:    result.Suite,
			Passed:   r.Passed,
			Message:  r.Message,
			Duration: float64(r.Duration.Milliseconds()),
		}
		if r.Err != nil {
			check.Error = r.Err.Error()
		}
		f.checks = append(f.checks, check)
	}
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual check results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var passed, failed, errored int
	for _, c := range f.checks {
		switch {
		case c.Error != "":
			errored++
		case c.Passed:
			passed++
		default:
			failed++
		}
	}

	output := JSONOutput{
		RunID: f.runID,
		Summary: JSONSummary{
			Total:   len(f.checks),
			Passed:  passed,
			Failed:  failed,
			Errored: errored,
		},
		Checks:   f.checks,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
