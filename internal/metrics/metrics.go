// Package metrics holds the Prometheus collectors of the service.
package metrics

import "github.com/prometheus/client_golang/prometheus" // Prometheus client

var (
	// HTTPRequests counts handled requests by method, route template and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)
	// HTTPDuration observes request latency by method and route template
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

var (
	// AccountsRegistered counts accounts created through signup
	AccountsRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accounts_registered_total",
			Help: "Accounts created through signup",
		},
	)
	// ProductsCreated counts created products
	ProductsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "products_created_total",
			Help: "Products created",
		},
	)
	// ValidationFailures counts payloads answered with a field error map
	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Payloads rejected with field errors",
		},
		[]string{"entity"}, // account|login|product
	)
	// ListingCacheOps counts listing cache hits, misses and errors
	ListingCacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_cache_operations_total",
			Help: "Product listing cache operations",
		},
		[]string{"op"}, // hit|miss|error
	)
)

// MustRegister registers every collector with the default registry
func MustRegister() {
	prometheus.MustRegister(
		HTTPRequests, HTTPDuration,
		AccountsRegistered, ProductsCreated, ValidationFailures, ListingCacheOps,
	)
}
