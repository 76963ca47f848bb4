package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gitstore"

const objectdbSubsystem = "objectdb"

// StorageMetrics tracks object database lookup metrics and implements
// objectdb.MetricRegister.
type StorageMetrics struct {
	hasDuration  prometheus.Counter
	openDuration prometheus.Counter
}

// NewStorageMetrics creates and registers storage metrics.
func NewStorageMetrics() *StorageMetrics {
	hasDuration := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: objectdbSubsystem,
		Name:      "has_time",
		Help:      "Accumulated time spent in object existence checks",
	})
	prometheus.MustRegister(hasDuration)

	openDuration := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: objectdbSubsystem,
		Name:      "open_time",
		Help:      "Accumulated time spent opening objects",
	})
	prometheus.MustRegister(openDuration)

	return &StorageMetrics{
		hasDuration:  hasDuration,
		openDuration: openDuration,
	}
}

// AddHasDuration implements objectdb.MetricRegister.
func (m *StorageMetrics) AddHasDuration(d time.Duration) {
	m.hasDuration.Add(d.Seconds())
}

// AddOpenDuration implements objectdb.MetricRegister.
func (m *StorageMetrics) AddOpenDuration(d time.Duration) {
	m.openDuration.Add(d.Seconds())
}
