package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts failed Redis commands by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ripple_redis_errors_total",
	Help: "Number of Redis command failures.",
}, []string{"command"})

// InitMetrics creates the Prometheus HTTP metrics middleware for the given
// service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware returns the request metrics handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
