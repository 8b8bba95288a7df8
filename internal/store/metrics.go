package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for store activity.
var (
	itemsInStore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "items_in_store",
			Help: "Number of items currently held in the store",
		},
	)

	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of store operations by type and result",
		},
		[]string{"operation", "result"},
	)
)

// Operation result labels.
const (
	resultOK       = "ok"
	resultNotFound = "not_found"
)

func recordOperation(operation, result string) {
	storeOperationsTotal.WithLabelValues(operation, result).Inc()
}
