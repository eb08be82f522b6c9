package cron

import (
	"context"
	"testing"

	"soundgate/config"
	"soundgate/internal/service/credits"
	"soundgate/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubFetcher struct {
	err   error
	calls int
}

func (s *stubFetcher) GetCredits(context.Context) (credits.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return credits.Response(`{"credits":1}`), nil
}

func TestProbeSetsUpstreamGauge(t *testing.T) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_upstream_up"})
	metric := &telemetry.Metric{UpstreamUp: gauge}
	core, logs := observer.New(zap.WarnLevel)
	fetcher := &stubFetcher{}

	probe := NewUpstreamProbe(zap.New(core), &telemetry.Trace{}, metric, &config.Configuration{}, fetcher)

	assert.True(t, probe.Probe(context.Background()))
	assert.Equal(t, float64(1), testutil.ToFloat64(gauge))

	fetcher.err = &credits.Error{Status: 503, Message: "Service unavailable"}
	assert.False(t, probe.Probe(context.Background()))
	assert.Equal(t, float64(0), testutil.ToFloat64(gauge))
	assert.Equal(t, 2, fetcher.calls)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, int64(503), entries[0].ContextMap()["status"])
	}
}

func TestProbeWithoutMetrics(t *testing.T) {
	probe := NewUpstreamProbe(zap.NewNop(), &telemetry.Trace{}, &telemetry.Metric{}, &config.Configuration{}, &stubFetcher{})
	assert.NotPanics(t, probe.Run)
}

func TestCronRejectsInvalidSpec(t *testing.T) {
	conf := &config.Configuration{}
	conf.Suno.ProbeCron = "not a cron"
	probe := NewUpstreamProbe(zap.NewNop(), &telemetry.Trace{}, &telemetry.Metric{}, conf, &stubFetcher{})

	c := NewCron(zap.NewNop(), conf, probe)
	assert.Error(t, c.Run())
}

func TestCronStartStop(t *testing.T) {
	conf := &config.Configuration{}
	conf.Suno.ProbeCron = "0 */5 * * * *"
	probe := NewUpstreamProbe(zap.NewNop(), &telemetry.Trace{}, &telemetry.Metric{}, conf, &stubFetcher{})

	c := NewCron(zap.NewNop(), conf, probe)
	assert.NoError(t, c.Run())
	assert.Len(t, c.server.Entries(), 1)
	assert.NoError(t, c.Stop(context.Background()))
}
