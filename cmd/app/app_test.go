package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"soundgate/config"
	"soundgate/internal/cron"
	"soundgate/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, addr string) *App {
	t.Helper()
	conf := &config.Configuration{}
	conf.App.Name = "soundgate"
	logger := zap.NewNop()

	srv := &http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}),
		ReadHeaderTimeout: time.Second,
	}
	return newApp(conf, logger, srv, service.NewHealthService(conf), cron.NewCron(logger, conf, nil))
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestAppRunMarksReadyAfterBind(t *testing.T) {
	addr := freeAddr(t)
	app := newTestApp(t, addr)

	require.NoError(t, app.Run())
	assert.True(t, app.healthService.IsReady())

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, app.Stop(ctx))
	assert.False(t, app.healthService.IsReady())
}

func TestAppRunFailsWhenPortTaken(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()

	app := newTestApp(t, occupied.Addr().String())

	err = app.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen "+occupied.Addr().String())
	assert.False(t, app.healthService.IsReady())
}
