package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// MiddlewareCollection bundles the custom middleware used by the server.
type MiddlewareCollection struct {
	Metrics *MetricsMiddleware
	Logging *LoggingMiddleware
}

func NewMiddlewareCollection(logger *logrus.Logger, requestsTotal *prometheus.CounterVec, requestDuration *prometheus.HistogramVec) *MiddlewareCollection {
	return &MiddlewareCollection{
		Metrics: NewMetricsMiddleware(requestsTotal, requestDuration),
		Logging: NewLoggingMiddleware(logger),
	}
}
