package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	geminiCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemini_calls_total",
			Help: "Total number of Gemini API attempts",
		},
		[]string{"status"},
	)

	geminiCallDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gemini_call_duration_seconds",
			Help:    "Gemini API attempt duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120, 240},
		},
	)

	quizAnswersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_answers_total",
			Help: "Total number of quiz answers submitted",
		},
		[]string{"correct"},
	)

	newsItemsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_items_added_total",
			Help: "Total number of news items inserted by refresh runs",
		},
	)
)

// MetricsMiddleware collects Prometheus metrics for every HTTP request.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		httpRequestsInFlight.Dec()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

// RecordGeminiCall records one outbound Gemini attempt.
func RecordGeminiCall(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	geminiCallsTotal.WithLabelValues(status).Inc()
	geminiCallDuration.Observe(duration.Seconds())
}

// RecordQuizAnswer records one submitted quiz answer.
func RecordQuizAnswer(correct bool) {
	quizAnswersTotal.WithLabelValues(strconv.FormatBool(correct)).Inc()
}

// RecordNewsAdded records how many news items a refresh run inserted.
func RecordNewsAdded(count int) {
	newsItemsAdded.Add(float64(count))
}
