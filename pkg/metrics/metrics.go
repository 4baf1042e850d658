package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: "tidetable",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)

	documentFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "document_fetches_total",
			Subsystem: "tidetable",
			Help:      "Tide table document retrievals by origin and outcome.",
		},
		[]string{"origin", "outcome"},
	)

	documentCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "document_cache_total",
			Subsystem: "tidetable",
			Help:      "Tide table document cache lookups by result.",
		},
		[]string{"result"},
	)

	emptyDays = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "empty_days_total",
			Subsystem: "tidetable",
			Help:      "Reported days for which the document had no tides.",
		},
		[]string{"station"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		documentFetches,
		documentCache,
		emptyDays,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// ObserveFetch counts one document retrieval. origin is "http" or "file".
func ObserveFetch(origin string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	documentFetches.WithLabelValues(origin, outcome).Inc()
}

// ObserveCache counts one document cache lookup.
func ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	documentCache.WithLabelValues(result).Inc()
}

// ObserveEmptyDays counts days reported without any tide.
func ObserveEmptyDays(station string, n int) {
	if n > 0 {
		emptyDays.WithLabelValues(station).Add(float64(n))
	}
}

// LatencyHandler observes the latency of every request next serves. path
// names the route rather than the raw URL so labels stay bounded.
func LatencyHandler(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		rec := &statusRecorder{ResponseWriter: w}

		// Defer metric observing. Any panics in next are reported as 500 errors
		// and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, rec.code(), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) code() string {
	if s.status == 0 {
		// Unset, will be set to 200 by stdlib.
		return "200"
	}
	return strconv.Itoa(s.status)
}
