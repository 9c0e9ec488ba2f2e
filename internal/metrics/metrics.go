package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PedigreeCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pedigree_parent_cache_lookups_total",
			Help: "Parent pointer cache lookups by result",
		},
		[]string{"result"},
	)

	PedigreeEdgeRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pedigree_edge_rejections_total",
			Help: "Rejected pedigree edge mutations by kind",
		},
		[]string{"kind"},
	)
)
