package telemetry

import (
	"strconv"
	"time"

	"shiftboard/config"
	"shiftboard/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric struct；未啟用時所有 vector 為 nil，方法皆為 no-op
type Metric struct {
	HttpRequestsTotal    *prometheus.CounterVec
	HttpRequestDuration  *prometheus.HistogramVec
	RequestSuccessTotal  *prometheus.CounterVec
	RequestFailTotal     *prometheus.CounterVec
	LoginThrottledTotal  prometheus.Counter
	AttendanceMarksTotal *prometheus.CounterVec
	config               *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	name := func(metric core.MetricName) string {
		return config.App.Name + "_" + string(metric)
	}
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name(core.MetricHttpRequestDuration),
				Help:    "API request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		RequestSuccessTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricRequestSuccessTotal),
				Help: "Requests answered with a success envelope",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		RequestFailTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricRequestFailTotal),
				Help: "Requests answered with an error envelope",
			},
			labelNames(core.MetricLabelReason),
		),
		LoginThrottledTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: name(core.MetricLoginThrottledTotal),
				Help: "Auth requests rejected by the per-IP throttle",
			},
		),
		AttendanceMarksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricAttendanceMarksTotal),
				Help: "Attendance marks by result (created / updated)",
			},
			labelNames(core.MetricLabelResult),
		),
	}
}

func (m *Metric) ObserveRequest(endpoint string, status int, duration time.Duration) {
	if m == nil || m.HttpRequestsTotal == nil || m.HttpRequestDuration == nil {
		return
	}
	m.HttpRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.HttpRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *Metric) IncSuccess(endpoint string, status int) {
	if m == nil || m.RequestSuccessTotal == nil {
		return
	}
	m.RequestSuccessTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

func (m *Metric) IncFail(reason string) {
	if m == nil || m.RequestFailTotal == nil {
		return
	}
	m.RequestFailTotal.WithLabelValues(reason).Inc()
}

func (m *Metric) IncLoginThrottled() {
	if m == nil || m.LoginThrottledTotal == nil {
		return
	}
	m.LoginThrottledTotal.Inc()
}

func (m *Metric) IncAttendanceMark(created bool) {
	if m == nil || m.AttendanceMarksTotal == nil {
		return
	}
	result := "updated"
	if created {
		result = "created"
	}
	m.AttendanceMarksTotal.WithLabelValues(result).Inc()
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
