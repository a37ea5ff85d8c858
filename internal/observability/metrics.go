// Package observability provides metrics and tracing for the application.
package observability

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinboard_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// EntityMutations counts create/update/delete outcomes per entity type.
	EntityMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinboard_entity_mutations_total",
		Help: "Total entity mutations by entity, operation, and outcome",
	}, []string{"entity", "operation", "outcome"})

	// UniquenessConflicts counts duplicate-key insertions translated into
	// client conflicts (likes, follows, slugs).
	UniquenessConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinboard_uniqueness_conflicts_total",
		Help: "Total uniqueness violations surfaced as conflicts",
	}, []string{"entity"})

	// ActivationEmails counts activation mail dispatch outcomes.
	ActivationEmails = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinboard_activation_emails_total",
		Help: "Total activation emails by outcome",
	}, []string{"outcome"})

	// ImageBytesStored tracks bytes written by the image store.
	ImageBytesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinboard_image_bytes_stored_total",
		Help: "Total bytes written by the image store",
	})
)

var (
	promOnce sync.Once
	promHTTP *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the fiberprometheus middleware used for HTTP-level
// request metrics. The middleware registers with the default Prometheus
// registry, which tolerates only one registration per process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promHTTP = fiberprometheus.New(serviceName)
	})
	return promHTTP
}
