package telemetry

import (
	"strings"

	"soundgate/config"
	"soundgate/internal/core"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ProviderSet = wire.NewSet(NewMetric, NewTrace)

// Metric 欄位可能為 nil（metric 關閉時），呼叫端需自行判斷
type Metric struct {
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec
	CreditsFetchTotal   *prometheus.CounterVec
	UpstreamUp          prometheus.Gauge
	config              *config.Configuration
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
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricName(config, core.MetricHttpRequestDuration),
				Help:    "API request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		CreditsFetchTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricCreditsFetchTotal),
				Help: "Credits balance requests by outcome and returned status",
			},
			labelNames(core.MetricLabelOutcome, core.MetricLabelStatus),
		),
		UpstreamUp: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: metricName(config, core.MetricUpstreamUp),
				Help: "1 when the last scheduled SunoAPI credits probe succeeded",
			},
		),
	}
}

func metricName(config *config.Configuration, name core.MetricName) string {
	// prometheus 名稱不允許 "-"
	return strings.ReplaceAll(config.App.Name, "-", "_") + "_" + string(name)
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
