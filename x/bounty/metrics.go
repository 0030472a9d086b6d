package bounty

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder counts bounty operations and the value they moved.
type MetricsRecorder struct {
	operations *prometheus.CounterVec
	moved      *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	metrics     *MetricsRecorder
)

// Metrics returns the recorder registered with the default prometheus
// registry.
func Metrics() *MetricsRecorder {
	metricsOnce.Do(func() {
		metrics = NewMetricsRecorder()
		prometheus.MustRegister(metrics.operations, metrics.moved)
	})
	return metrics
}

// NewMetricsRecorder returns an unregistered recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bounty_operations_total",
			Help: "Count of delivered bounty operations by result.",
		}, []string{"operation", "result"}),
		moved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bounty_value_moved_total",
			Help: "Sum of value moved by bounty operations by asset.",
		}, []string{"operation", "asset"}),
	}
}

// ObserveOperation counts a delivered operation.
func (m *MetricsRecorder) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// ObserveMoved adds the value moved by a successful operation.
func (m *MetricsRecorder) ObserveMoved(op, asset string, amount uint64) {
	if m == nil {
		return
	}
	m.moved.WithLabelValues(op, asset).Add(float64(amount))
}
