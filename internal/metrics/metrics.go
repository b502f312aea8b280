// Package metrics объявляет метрики prometheus, которые отдаются на /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests число запросов к API клуба по ресурсу, методу и коду ответа.
	// Код "error" означает, что ответа не было.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "horseclub",
		Name:      "upstream_requests_total",
		Help:      "Requests sent to the club API.",
	}, []string{"resource", "method", "code"})

	// UpstreamDuration длительность запросов к API клуба.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "horseclub",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of club API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource", "method"})

	// CacheLookups результаты обращений к кешу ответов: hit, miss, error.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "horseclub",
		Name:      "cache_lookups_total",
		Help:      "Response cache lookups by result.",
	}, []string{"result"})

	// StaleResponses ответы, выброшенные компонентами как устаревшие.
	StaleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "horseclub",
		Name:      "stale_responses_total",
		Help:      "List responses discarded because a newer request was issued.",
	})
)

// ObserveUpstream записывает один запрос к API. code 0 означает ошибку транспорта.
func ObserveUpstream(resource, method string, code int, started time.Time) {
	label := "error"
	if code != 0 {
		label = strconv.Itoa(code)
	}
	UpstreamRequests.WithLabelValues(resource, method, label).Inc()
	UpstreamDuration.WithLabelValues(resource, method).Observe(time.Since(started).Seconds())
}
