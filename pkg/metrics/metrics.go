// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类：
// 1. HTTP指标：请求总数、耗时分布、处理中请求数（由gin中间件记录）
// 2. 借阅业务指标：借出/归还/拒绝计数（由应用层用例记录）
//
// 命名规范：
// - Counter以_total结尾（loans_borrowed_total）
// - Histogram以单位结尾（http_request_duration_seconds）
// - Gauge使用现在时态（http_requests_in_progress）
//
// 使用方式：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//	...
//	metrics.LoansBorrowedTotal.Inc()
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 借阅业务指标

	// LoansBorrowedTotal 借出成功总数（Counter）
	LoansBorrowedTotal prometheus.Counter

	// LoansReturnedTotal 归还成功总数（Counter）
	LoansReturnedTotal prometheus.Counter

	// LoansDeniedTotal 因无可借副本被拒绝的借阅总数（Counter）
	LoansDeniedTotal prometheus.Counter

	// BorrowDuration 借阅事务耗时（Histogram）
	// 借阅在一个数据库事务内完成行锁+校验+插入，耗时值得观察
	BorrowDuration prometheus.Histogram

	// 消息队列指标

	// EventsPublishedTotal 借阅事件发布总数（Counter）
	// 标签：routing_key（loan.borrowed / loan.returned）
	EventsPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，使用promauto注册到默认Registry
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 借阅业务指标
	LoansBorrowedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_borrowed_total",
			Help: "借出成功总数",
		},
	)

	LoansReturnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_returned_total",
			Help: "归还成功总数",
		},
	)

	LoansDeniedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_denied_total",
			Help: "因无可借副本被拒绝的借阅总数",
		},
	)

	BorrowDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loan_borrow_duration_seconds",
			Help:    "借阅事务耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// 消息队列指标
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_events_published_total",
			Help: "借阅事件发布总数",
		},
		[]string{"routing_key"},
	)
}
