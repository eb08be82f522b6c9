package cron

import (
	"context"

	"soundgate/config"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron, NewUpstreamProbe)

type Cron struct {
	logger *zap.Logger
	config *config.Configuration
	server *cron.Cron
	probe  *UpstreamProbe
}

// NewCron .
func NewCron(logger *zap.Logger, config *config.Configuration, probe *UpstreamProbe) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	return &Cron{
		logger: logger,
		config: config,
		server: server,
		probe:  probe,
	}
}

func (c *Cron) Run() error {
	if spec := c.config.Suno.ProbeCron; spec != "" {
		if _, err := c.server.AddFunc(spec, c.probe.Run); err != nil {
			return err
		}
		c.logger.Info("upstream probe scheduled", zap.String("spec", spec))
	}

	c.server.Start()
	return nil
}

// Stop 等待執行中的 job 結束，或 ctx 逾時
func (c *Cron) Stop(ctx context.Context) error {
	done := c.server.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
