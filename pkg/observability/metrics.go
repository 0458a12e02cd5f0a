package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes counters and timers to CloudWatch. Data points are
// buffered and flushed in the background so the hot path never blocks on
// a network call.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client

	mu      sync.Mutex
	pending []types.MetricDatum
}

// NewMetrics creates a new CloudWatch-backed metrics sink. A nil client
// turns every operation into a no-op, which is what tests and local
// development use.
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	m := &Metrics{
		namespace: namespace,
		client:    client,
	}
	if client != nil {
		go m.flushLoop()
	}
	return m
}

// Increment records a unit count for a metric
func (m *Metrics) Increment(metric, label string) {
	m.record(metric, label, 1, types.StandardUnitCount)
}

// RecordDuration records an elapsed time for a metric
func (m *Metrics) RecordDuration(metric, label string, d time.Duration) {
	m.record(metric, label, float64(d.Milliseconds()), types.StandardUnitMilliseconds)
}

// StartTimer starts a timer that records its duration when stopped
func (m *Metrics) StartTimer(metric, label string) Timer {
	return &timer{metrics: m, metric: metric, label: label, start: time.Now()}
}

// Timer records a duration when stopped
type Timer interface {
	Stop()
}

type timer struct {
	metrics *Metrics
	metric  string
	label   string
	start   time.Time
}

func (t *timer) Stop() {
	t.metrics.RecordDuration(t.metric, t.label, time.Since(t.start))
}

func (m *Metrics) record(metric, label string, value float64, unit types.StandardUnit) {
	if m.client == nil {
		return
	}

	datum := types.MetricDatum{
		MetricName: aws.String(metric),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: []types.Dimension{
			{Name: aws.String("Label"), Value: aws.String(label)},
		},
	}

	m.mu.Lock()
	m.pending = append(m.pending, datum)
	m.mu.Unlock()
}

func (m *Metrics) flushLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Flush(context.Background())
	}
}

// Flush pushes buffered data points to CloudWatch
func (m *Metrics) Flush(ctx context.Context) {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.mu.Unlock()

	if m.client == nil || len(batch) == 0 {
		return
	}

	// PutMetricData accepts at most 20 data points per call
	const chunkSize = 20
	for i := 0; i < len(batch); i += chunkSize {
		end := i + chunkSize
		if end > len(batch) {
			end = len(batch)
		}
		// Errors are dropped; metrics must never take the service down
		_, _ = m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: batch[i:end],
		})
	}
}
