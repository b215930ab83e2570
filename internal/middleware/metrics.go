package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures, labeled by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "realme_redis_errors_total",
	Help: "Total number of Redis command errors",
}, []string{"command"})

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The underlying collectors register in the default registry, so the
// middleware is created once per process no matter how many servers exist.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New(serviceName)
	})
	return promMW
}

// MetricsMiddleware returns the Fiber handler that records HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
