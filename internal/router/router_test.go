package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"soundgate/config"
	"soundgate/internal/database/client"
	"soundgate/internal/database/fluentd/repository"
	"soundgate/internal/handler"
	"soundgate/internal/middleware"
	"soundgate/internal/service"
	"soundgate/internal/service/credits"
	"soundgate/internal/service/session"
	"soundgate/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type anonymousResolver struct{}

func (anonymousResolver) Resolve(context.Context, *http.Request) (*session.Session, error) {
	return nil, nil
}

type unusedFetcher struct{}

func (unusedFetcher) GetCredits(context.Context) (credits.Response, error) {
	panic("fetcher must not be called without a session")
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	conf := &config.Configuration{}
	conf.App.Env = "test"
	conf.App.Name = "soundgate"
	conf.App.Version = "9.9.9"

	logger := zap.NewNop()
	trace := &telemetry.Trace{}
	metric := &telemetry.Metric{}
	logRepository := repository.NewLogRepository(conf, &client.NoopClient{})
	health := service.NewHealthService(conf)

	return NewRouter(
		conf,
		middleware.NewTraceEntry(trace, metric, conf),
		middleware.NewRecovery(logger, trace, conf, logRepository),
		middleware.NewCors(trace, conf),
		middleware.NewLogger(logger, trace, conf, logRepository),
		middleware.NewResponse(logger, trace, conf, logRepository),
		NewHealthRouter(handler.NewHealthHandler(health)),
		NewCreditsRouter(handler.NewCreditsHandler(logger, trace, metric, conf, anonymousResolver{}, unusedFetcher{}, logRepository)),
	)
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t)

	tcs := []struct {
		path       string
		wantStatus int
	}{
		{"/health-check", http.StatusOK},
		{"/health/liveness", http.StatusOK},
		{"/health/readiness", http.StatusServiceUnavailable},
		{"/version", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/credits", http.StatusUnauthorized},
		{"/api/credits/costs", http.StatusOK},
	}
	for _, tc := range tcs {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.wantStatus, w.Code, tc.path)
		assert.Equal(t, "9.9.9", w.Header().Get("X-App-Version"), tc.path)
	}
}
