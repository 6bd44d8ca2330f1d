package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SubmissionsGraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_submissions_graded_total",
			Help: "Number of graded test submissions",
		},
		[]string{"outcome"},
	)

	ScoreRatio = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_score_ratio",
			Help:    "score / full_score of graded submissions",
			Buckets: []float64{0, 0.25, 0.5, 0.75, 0.9, 1},
		},
	)

	ReconcileChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_reconcile_changes_total",
			Help: "Rows written by test definition reconciliation",
		},
		[]string{"entity", "op"},
	)

	RecommendationsServed = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_recommendations_served",
			Help:    "Number of tests returned per recommendation request",
			Buckets: prometheus.LinearBuckets(0, 1, 6),
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(SubmissionsGraded)
		prometheus.MustRegister(ScoreRatio)
		prometheus.MustRegister(ReconcileChanges)
		prometheus.MustRegister(RecommendationsServed)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// ObserveGrade 记录一次评分结果
func ObserveGrade(score, fullScore int) {
	outcome := "partial"
	switch {
	case fullScore == 0:
		outcome = "empty"
	case score == fullScore:
		outcome = "perfect"
	case score == 0:
		outcome = "zero"
	}
	SubmissionsGraded.WithLabelValues(outcome).Inc()
	if fullScore > 0 {
		ScoreRatio.Observe(float64(score) / float64(fullScore))
	}
}

func AddReconcileChanges(entity, op string, n int) {
	if n > 0 {
		ReconcileChanges.WithLabelValues(entity, op).Add(float64(n))
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
