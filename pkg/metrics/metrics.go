// Package metrics 审核服务的 prometheus 指标, 统一挂在 moodboard 命名空间下
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const Namespace = "moodboard"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "path"},
	)

	// ReviewTransitions 已提交的状态迁移
	ReviewTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "review",
			Name:      "transitions_total",
			Help:      "Image status transitions committed",
		},
		[]string{"from", "to"},
	)

	// LockBusy 等锁超时被拒绝的写操作, scope 为 serial 或 alloc
	LockBusy = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "review",
			Name:      "lock_busy_total",
			Help:      "Writes rejected because the record lock was held",
		},
		[]string{"scope"},
	)

	// BlobCompensations 写记录失败后对已上传对象的补偿删除
	BlobCompensations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "blob",
			Name:      "compensations_total",
			Help:      "Uploaded objects removed after the record insert failed",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, ReviewTransitions, LockBusy, BlobCompensations)
}

// ObserveHTTP path 用路由模板, 避免 sno 撑爆标签
func ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if path == "" {
		path = "unknown"
	}
	HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
