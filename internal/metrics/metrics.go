package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "video_hub",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "video_hub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	ratings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "video_hub",
			Name:      "video_ratings_total",
			Help:      "Rating submissions by result.",
		},
		[]string{"result"},
	)
)

// Rating results.
const (
	RatingAccepted  = "accepted"
	RatingSelfVote  = "self_vote"
	RatingDuplicate = "duplicate"
	RatingNotFound  = "not_found"
	RatingConflict  = "conflict"
	RatingInvalid   = "invalid"
	RatingError     = "error"
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, ratings)
	})
}

func ObserveHTTP(route, method, status string, seconds float64) {
	httpRequests.WithLabelValues(route, method, status).Inc()
	httpDuration.WithLabelValues(route).Observe(seconds)
}

func IncRating(result string) {
	ratings.WithLabelValues(result).Inc()
}
