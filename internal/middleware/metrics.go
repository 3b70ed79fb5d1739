package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// AuthFailures counts rejected authentication attempts by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_auth_failures_total",
		Help: "Total number of failed authentication attempts by reason",
	}, []string{"reason"})

	// FollowOperations counts follow-graph mutations by operation and outcome.
	FollowOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_follow_operations_total",
		Help: "Total number of follow/unfollow operations by outcome",
	}, []string{"operation", "outcome"})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the fiberprometheus middleware for HTTP metrics.
// fiberprometheus registers its collectors on the default Prometheus registry,
// which panics on duplicate registration, so the instance is process-wide and
// every server in the process shares it.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware returns the HTTP metrics collection handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
