package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"soundgate/config"
	"soundgate/internal/cron"
	"soundgate/internal/service"

	"go.uber.org/zap"
)

type App struct {
	conf          *config.Configuration
	logger        *zap.Logger
	cronSrv       *cron.Cron
	httpSrv       *http.Server
	healthService *service.HealthService
}

func newHttpServer(
	conf *config.Configuration,
	router http.Handler,
) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.FormatUint(uint64(conf.App.Port), 10),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// newHttpClient 供呼叫 SunoAPI 使用；SUNO.TIMEOUT 為 0 時不設逾時
func newHttpClient(conf *config.Configuration) *http.Client {
	return &http.Client{
		Timeout: time.Duration(conf.Suno.Timeout) * time.Millisecond,
	}
}

func newApp(
	conf *config.Configuration,
	logger *zap.Logger,
	httpSrv *http.Server,
	healthService *service.HealthService,
	cronSrv *cron.Cron,
) *App {
	return &App{
		conf:          conf,
		logger:        logger,
		httpSrv:       httpSrv,
		healthService: healthService,
		cronSrv:       cronSrv,
	}
}

func (a *App) Run() error {
	info := a.healthService.Info()
	a.logger.Info("app runtime info",
		zap.String("env", info.Env),
		zap.String("name", info.Name),
		zap.String("version", info.Version),
		zap.String("go_version", info.GoVersion),
		zap.Time("start_at", info.StartAt),
	)

	if err := a.cronSrv.Run(); err != nil {
		return err
	}
	a.logger.Info("cron server started")

	// 先綁定 port，綁定成功後才標記 ready
	listener, err := net.Listen("tcp", a.httpSrv.Addr)
	if err != nil {
		_ = a.cronSrv.Stop(context.Background())
		return fmt.Errorf("listen %s: %w", a.httpSrv.Addr, err)
	}
	a.logger.Info("http server listening", zap.String("addr", listener.Addr().String()))

	go func() {
		if err := a.httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.healthService.SetReady(false)
			a.logger.Fatal("http server stopped unexpectedly", zap.Error(err))
		}
	}()
	a.healthService.SetReady(true)

	return nil
}

func (a *App) Stop(ctx context.Context) error {
	a.healthService.SetReady(false)

	if err := a.httpSrv.Shutdown(ctx); err != nil {
		return err
	}
	a.logger.Info("http server has been stop")

	if err := a.cronSrv.Stop(ctx); err != nil {
		return err
	}
	a.logger.Info("cron server has been stop")

	return nil
}
