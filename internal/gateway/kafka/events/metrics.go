package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_retries_total",
			Help: "Total number of gateway retry attempts",
		},
		[]string{"service", "topic", "result"},
	)

	GatewayPublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_publish_duration_seconds",
			Help:    "Duration of event publishes including retries",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "topic", "result"},
	)
)
