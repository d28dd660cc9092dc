package eway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eway",
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Gateway requests by request family and outcome.",
	}, []string{"family", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eway",
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Gateway round-trip latency by request family.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"family"})
)
