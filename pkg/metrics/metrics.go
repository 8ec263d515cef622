package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Кэш (типизированная обёртка над KV).
var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations by outcome and resource",
		},
		[]string{"op", "resource"}, // hit|miss|error|set|delete|invalidate
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in the in-memory cache",
		},
	)
)

// KV-бэкенд (redis|memory).
var (
	KVRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kv_requests_total",
			Help: "Total number of KV backend requests by method",
		},
		[]string{"backend", "method"},
	)
	KVErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kv_errors_total",
			Help: "Total number of KV backend errors by method",
		},
		[]string{"backend", "method"},
	)
	KVRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kv_request_duration_seconds",
			Help:    "KV backend request latency distributions",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "method"},
	)
)

// Домен и транспорт.
var (
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Number of orders persisted",
		},
	)
	KafkaMessagesProduced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_produced_total",
			Help: "Number of events written to Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of events failed to write",
		},
		[]string{"topic"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре; повторные вызовы ничего не делают.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CacheOps, CacheSize,
			KVRequests, KVErrors, KVRequestDuration,
			OrdersCreated, KafkaMessagesProduced, KafkaMessagesFailed,
			HTTPRequests,
		)
	})
}
