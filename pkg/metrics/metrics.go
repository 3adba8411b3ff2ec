// Package metrics 定义服务暴露给 Prometheus 的指标。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VerificationsTotal 按方式与结果统计的核验次数
	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "asset_verify",
		Name:      "verifications_total",
		Help:      "Number of label verifications by method and result.",
	}, []string{"method", "result"})

	// EventWriteFailuresTotal 审计事件写入失败次数
	EventWriteFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "asset_verify",
		Name:      "event_write_failures_total",
		Help:      "Number of verification events that could not be persisted.",
	})

	// HistoryRecoveredTotal 通过标签反查归组的历史事件数
	HistoryRecoveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "asset_verify",
		Name:      "history_recovered_events_total",
		Help:      "Number of history events grouped through a label lookup instead of their snapshot serial.",
	})

	// HTTPRequestDuration HTTP 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "asset_verify",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
