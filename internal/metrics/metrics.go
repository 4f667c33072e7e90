package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "route"},
	)

	ReviewsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_created_total",
			Help: "Reviews created per dining hall.",
		},
		[]string{"location"},
	)

	ImageUploadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_upload_bytes_total",
			Help: "Bytes accepted by the image store.",
		},
	)

	ReviewImageCascadeDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_image_cascade_deletes_total",
			Help: "Image deletions triggered by review deletion, by result.",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
