package cron

import (
	"context"
	"time"

	"soundgate/config"
	"soundgate/internal/core"
	"soundgate/internal/service/credits"
	"soundgate/internal/telemetry"

	"go.uber.org/zap"
)

// UpstreamProbe 定期查詢一次點數，只更新 upstream_up gauge；結果不會被快取或回傳給使用者
type UpstreamProbe struct {
	logger  *zap.Logger
	trace   *telemetry.Trace
	metric  *telemetry.Metric
	fetcher credits.Fetcher
	timeout time.Duration
}

func NewUpstreamProbe(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fetcher credits.Fetcher,
) *UpstreamProbe {
	timeout := 10 * time.Second
	if config.Suno.Timeout > 0 {
		timeout = time.Duration(config.Suno.Timeout) * time.Millisecond
	}
	return &UpstreamProbe{
		logger:  logger,
		trace:   trace,
		metric:  metric,
		fetcher: fetcher,
		timeout: timeout,
	}
}

func (p *UpstreamProbe) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	p.Probe(ctx)
}

// Probe 回報上游是否可用
func (p *UpstreamProbe) Probe(ctx context.Context) bool {
	ctx, _, end := p.trace.WithSpan(ctx, string(core.SpanUpstreamProbe))

	_, err := p.fetcher.GetCredits(ctx)
	end(err)
	if err != nil {
		status, message := credits.Normalize(err)
		p.logger.Warn("[Cron] upstream probe failed",
			zap.Int("status", status),
			zap.String("message", message),
		)
		p.setUp(0)
		return false
	}
	p.setUp(1)
	return true
}

func (p *UpstreamProbe) setUp(v float64) {
	if p.metric != nil && p.metric.UpstreamUp != nil {
		p.metric.UpstreamUp.Set(v)
	}
}
