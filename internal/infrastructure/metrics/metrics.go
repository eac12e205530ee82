package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	PersonCreated = "person_created_total"
	PersonUpdated = "person_updated_total"
	PersonDeleted = "person_deleted_total"
	AppRequests   = "app_requests_total"
)

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "personregistry",
			Name:      "general_counters",
			Help:      "Person lifecycle and request counters.",
		},
		[]string{"result"})
}

// NewUnregisteredCounter is NewCounter without the default registry, for tests.
func NewUnregisteredCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "personregistry",
			Name:      "general_counters",
		},
		[]string{"result"})
}
