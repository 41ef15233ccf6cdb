package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes counters and timers to CloudWatch. Publishing is
// fire-and-forget; a metrics failure must never fail a request.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
	mu        sync.Mutex
}

// NewMetrics creates a metrics instance publishing under the given namespace
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// Increment increments a counter metric by one
func (m *Metrics) Increment(metric, label string) {
	m.put(metric, label, 1, types.StandardUnitCount)
}

// StartTimer starts a duration timer for a metric
func (m *Metrics) StartTimer(metric, label string) Timer {
	return &cloudWatchTimer{
		metrics: m,
		metric:  metric,
		label:   label,
		start:   time.Now(),
	}
}

// Timer records a duration when stopped
type Timer interface {
	Stop()
}

type cloudWatchTimer struct {
	metrics *Metrics
	metric  string
	label   string
	start   time.Time
}

func (t *cloudWatchTimer) Stop() {
	elapsed := time.Since(t.start)
	t.metrics.put(t.metric, t.label, float64(elapsed.Milliseconds()), types.StandardUnitMilliseconds)
}

func (m *Metrics) put(metric, label string, value float64, unit types.StandardUnit) {
	if m == nil || m.client == nil {
		return
	}

	datum := types.MetricDatum{
		MetricName: aws.String(metric),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String("Operation"),
				Value: aws.String(label),
			},
		},
	}

	// Publish asynchronously with a short deadline so slow CloudWatch calls
	// cannot stall the request path.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		m.mu.Lock()
		defer m.mu.Unlock()

		_, _ = m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: []types.MetricDatum{datum},
		})
	}()
}
