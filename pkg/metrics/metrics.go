// Package metrics 提供 Prometheus 指标集合与暴露入口
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
type Metrics struct {
	registry *prometheus.Registry

	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// 违约申请提交计数
	ApplicationsSubmitted prometheus.Counter
	// 违约申请审批计数（按结果）
	ApplicationsDecided *prometheus.CounterVec
	// 重生申请提交计数
	RenewalsSubmitted prometheus.Counter
	// 重生申请审批计数（按结果）
	RenewalsDecided *prometheus.CounterVec
	// 当前处于违约状态的客户数
	ActiveDefaults prometheus.Gauge
}

// New 创建指标实例并完成注册
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "defaultmgmt",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "defaultmgmt",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ApplicationsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "defaultmgmt",
			Subsystem: serviceName,
			Name:      "applications_submitted_total",
			Help:      "Total default applications submitted",
		}),
		ApplicationsDecided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "defaultmgmt",
			Subsystem: serviceName,
			Name:      "applications_decided_total",
			Help:      "Total default applications decided",
		}, []string{"result"}),
		RenewalsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "defaultmgmt",
			Subsystem: serviceName,
			Name:      "renewals_submitted_total",
			Help:      "Total renewal applications submitted",
		}),
		RenewalsDecided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "defaultmgmt",
			Subsystem: serviceName,
			Name:      "renewals_decided_total",
			Help:      "Total renewal applications decided",
		}, []string{"result"}),
		ActiveDefaults: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "defaultmgmt",
			Subsystem: serviceName,
			Name:      "active_defaults",
			Help:      "Customers currently in default status",
		}),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ApplicationsSubmitted,
		m.ApplicationsDecided,
		m.RenewalsSubmitted,
		m.RenewalsDecided,
		m.ActiveDefaults,
	)

	return m
}

// Handler 返回 Prometheus 暴露端点
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
