// Package bench measures assertion-engine latency by running one suite
// against one document repeatedly and aggregating per-iteration timings.
package bench

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/jsonspec/packages/assertions"
	"github.com/abdul-hamid-achik/jsonspec/packages/core/suite"
)

// Options configures a bench run.
type Options struct {
	Iterations int
	Rate       float64           // iterations per second; 0 means unpaced
	Schemas    map[string]string // schema texts for schema checks
}

// Report summarizes a bench run. Percentiles cover the full
// decode-and-check latency of one iteration.
type Report struct {
	Iterations int
	Failures   int // iterations with at least one failed or errored check

	P50     time.Duration
	P95     time.Duration
	P99     time.Duration
	Mean    time.Duration
	Max     time.Duration
	Elapsed time.Duration
}

// Format renders the report as plain text.
func (r *Report) Format() string {
	return fmt.Sprintf(
		"iterations: %d\nfailures:   %d\np50:        %v\np95:        %v\np99:        %v\nmean:       %v\nmax:        %v\nelapsed:    %v\n",
		r.Iterations, r.Failures, r.P50, r.P95, r.P99, r.Mean, r.Max, r.Elapsed)
}

// Metrics collects iteration latencies.
type Metrics struct {
	mu        sync.Mutex
	histogram *hdrhistogram.Histogram
}

// NewMetrics creates a latency collector covering 1µs to 60s at 3
// significant digits.
func NewMetrics() *Metrics {
	return &Metrics{
		histogram: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Record adds one iteration latency, clamped to the histogram range.
func (m *Metrics) Record(d time.Duration) {
	latencyUs := d.Microseconds()
	if latencyUs < 1 {
		latencyUs = 1
	}
	if latencyUs > 60_000_000 {
		latencyUs = 60_000_000
	}

	m.mu.Lock()
	_ = m.histogram.RecordValue(latencyUs)
	m.mu.Unlock()
}

// P50 returns the median latency.
func (m *Metrics) P50() time.Duration { return m.quantile(50) }

// P95 returns the 95th percentile latency.
func (m *Metrics) P95() time.Duration { return m.quantile(95) }

// P99 returns the 99th percentile latency.
func (m *Metrics) P99() time.Duration { return m.quantile(99) }

// Mean returns the mean latency.
func (m *Metrics) Mean() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Duration(m.histogram.Mean()) * time.Microsecond
}

// Max returns the largest recorded latency.
func (m *Metrics) Max() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Duration(m.histogram.Max()) * time.Microsecond
}

func (m *Metrics) quantile(q float64) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Duration(m.histogram.ValueAtQuantile(q)) * time.Microsecond
}

// Run evaluates the suite against the body Options.Iterations times. Each
// iteration decodes the body fresh so the measured latency covers the
// whole engine path. When Rate is positive the iterations are paced by a
// token-bucket limiter; cancelling the context stops the run.
func Run(ctx context.Context, body string, s *suite.Suite, opts Options) (*Report, error) {
	if opts.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", opts.Iterations)
	}

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	metrics := NewMetrics()
	report := &Report{Iterations: opts.Iterations}
	start := time.Now()

	for i := 0; i < opts.Iterations; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}

		iterStart := time.Now()
		a, err := assertions.NewAsserter(body)
		if err != nil {
			return nil, err
		}
		results := suite.Run(a, s, opts.Schemas)
		metrics.Record(time.Since(iterStart))

		for _, r := range results {
			if r.Err != nil || !r.Passed {
				report.Failures++
				break
			}
		}
	}

	report.Elapsed = time.Since(start)
	report.P50 = metrics.P50()
	report.P95 = metrics.P95()
	report.P99 = metrics.P99()
	report.Mean = metrics.Mean()
	report.Max = metrics.Max()
	return report, nil
}
