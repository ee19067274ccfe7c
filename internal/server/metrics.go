package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicescan_http_requests_total",
		Help: "HTTP responses by handler and status code.",
	}, []string{"handler", "code"})

	ocrDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "invoicescan_ocr_duration_seconds",
		Help:    "Wall time spent in Tesseract per upload.",
		Buckets: prometheus.DefBuckets,
	})
)
