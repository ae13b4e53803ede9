package bench

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/jsonspec/packages/core/suite"
)

const benchBody = `{"user": {"id": 42, "name": "Nadia"}, "success": 1}`

func passingSuite() *suite.Suite {
	return &suite.Suite{Checks: []suite.Check{
		{Name: "has user", JSONPath: "$.user"},
		{Name: "id typed", JSONType: map[string]any{"id": "integer"}, JSONPath: "$.user"},
	}}
}

func TestMetricsPercentiles(t *testing.T) {
	m := NewMetrics()

	// Record latencies with known spread
	for i := 0; i < 100; i++ {
		m.Record(time.Duration(i+1) * time.Millisecond)
	}

	assert.True(t, m.P50() > 0)
	assert.True(t, m.P95() > m.P50())
	assert.True(t, m.P99() >= m.P95())
	assert.True(t, m.Max() >= m.P99())
	assert.True(t, m.Mean() > 0)
}

func TestMetricsClampsOutOfRangeValues(t *testing.T) {
	m := NewMetrics()

	m.Record(0)
	m.Record(2 * time.Hour)

	assert.Equal(t, time.Microsecond, m.P50())
	assert.True(t, m.Max() <= 61*time.Second)
}

func TestRun(t *testing.T) {
	report, err := Run(context.Background(), benchBody, passingSuite(), Options{Iterations: 50})
	require.NoError(t, err)

	assert.Equal(t, 50, report.Iterations)
	assert.Equal(t, 0, report.Failures)
	assert.True(t, report.P50 > 0)
	assert.True(t, report.P99 >= report.P50)
	assert.True(t, report.Max >= report.P99)
	assert.True(t, report.Elapsed > 0)
}

func TestRun_CountsFailingIterations(t *testing.T) {
	s := &suite.Suite{Checks: []suite.Check{
		{Name: "passes", JSONPath: "$.user"},
		{Name: "fails", JSONPath: "$.token"},
	}}

	report, err := Run(context.Background(), benchBody, s, Options{Iterations: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, report.Failures)
}

func TestRun_CountsErroredIterations(t *testing.T) {
	s := &suite.Suite{Checks: []suite.Check{
		{Name: "bad", XPath: "count("},
	}}

	report, err := Run(context.Background(), benchBody, s, Options{Iterations: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, report.Failures)
}

func TestRun_PacesWithRate(t *testing.T) {
	start := time.Now()
	_, err := Run(context.Background(), benchBody, passingSuite(), Options{
		Iterations: 3,
		Rate:       100, // 10ms between iterations after the first
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, benchBody, passingSuite(), Options{Iterations: 5})
	assert.Error(t, err)

	_, err = Run(ctx, benchBody, passingSuite(), Options{Iterations: 5, Rate: 10})
	assert.Error(t, err)
}

func TestRun_InvalidInputs(t *testing.T) {
	_, err := Run(context.Background(), benchBody, passingSuite(), Options{Iterations: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iterations must be positive")

	_, err = Run(context.Background(), "{not json", passingSuite(), Options{Iterations: 1})
	assert.Error(t, err)
}

func TestReportFormat(t *testing.T) {
	report := &Report{
		Iterations: 100,
		Failures:   2,
		P50:        time.Millisecond,
		P95:        2 * time.Millisecond,
		P99:        3 * time.Millisecond,
		Mean:       1200 * time.Microsecond,
		Max:        5 * time.Millisecond,
		Elapsed:    150 * time.Millisecond,
	}

	out := report.Format()
	assert.Contains(t, out, "iterations: 100")
	assert.Contains(t, out, "failures:   2")
	assert.Contains(t, out, "p95:")
	assert.Contains(t, out, "elapsed:")
}
