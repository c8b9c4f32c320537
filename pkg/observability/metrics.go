package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes counters and timers to CloudWatch. Publishing is
// fire-and-forget; a failed put never fails the request that produced it.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
}

// NewMetrics creates a CloudWatch-backed metrics publisher
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

// RecordValue records an arbitrary value for a metric
func (m *Metrics) RecordValue(metric, label string, value float64) {
	m.put(metric, label, value, types.StandardUnitNone)
}

// StartTimer begins timing an operation; Stop publishes the duration
func (m *Metrics) StartTimer(metric, label string) Timer {
	return &cloudWatchTimer{
		metrics: m,
		metric:  metric,
		label:   label,
		start:   time.Now(),
	}
}

func (m *Metrics) put(metric, label string, value float64, unit types.StandardUnit) {
	if m.client == nil {
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

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_, _ = m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: []types.MetricDatum{datum},
		})
	}()
}

// Timer measures the duration of a single operation
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
