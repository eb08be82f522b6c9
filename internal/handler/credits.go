package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"soundgate/config"
	"soundgate/internal/core"
	"soundgate/internal/database/fluentd/model"
	"soundgate/internal/database/fluentd/repository"
	"soundgate/internal/dto"
	"soundgate/internal/pkg/response"
	"soundgate/internal/service/credits"
	"soundgate/internal/service/session"
	"soundgate/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const unauthorizedMessage = "You must be logged in to view credits"

type CreditsHandler struct {
	logger        *zap.Logger
	trace         *telemetry.Trace
	metric        *telemetry.Metric
	config        *config.Configuration
	resolver      session.Resolver
	fetcher       credits.Fetcher
	logRepository *repository.LogRepository
}

func NewCreditsHandler(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	resolver session.Resolver,
	fetcher credits.Fetcher,
	logRepository *repository.LogRepository,
) *CreditsHandler {
	return &CreditsHandler{
		logger:        logger,
		trace:         trace,
		metric:        metric,
		config:        config,
		resolver:      resolver,
		fetcher:       fetcher,
		logRepository: logRepository,
	}
}

// GetCredits 取得 SunoAPI 剩餘點數
// @Summary 取得剩餘點數
// @Description 需登入；成功時原樣回傳 SunoAPI 的回應內容
// @Tags Credits
// @Security SessionCookie
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 429 {object} response.ErrorEnvelope
// @Failure 500 {object} response.ErrorEnvelope
// @Router /api/credits [get]
func (h *CreditsHandler) GetCredits(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	start := time.Now()

	sess, err := h.resolver.Resolve(ctx, c.Request)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	if sess == nil {
		h.countFetch(core.CreditsOutcomeUnauthorized, http.StatusUnauthorized)
		end(nil)
		response.Envelope(c, http.StatusUnauthorized, response.ErrorEnvelope{
			Error:   "Unauthorized",
			Message: unauthorizedMessage,
		})
		return
	}

	payload, err := h.fetcher.GetCredits(ctx)
	if err != nil {
		status, message := credits.Normalize(err)
		h.countFetch(core.CreditsOutcomeFailed, status)

		traceID := span.SpanContext().TraceID()
		h.logger.Warn("[Credits] fetch failed",
			zap.String("userId", sess.UserID),
			zap.Int("status", status),
			zap.String("message", message),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)
		if logErr := h.logRepository.LogCreditsFetch(ctx, model.CreditsFetchLog{
			RequestID:   fmt.Sprintf("%x", traceID[:]),
			ProjectName: h.config.App.Name,
			UserID:      sess.UserID,
			Outcome:     string(core.CreditsOutcomeFailed),
			StatusCode:  status,
			Message:     message,
			DurationMs:  time.Since(start).Milliseconds(),
			FetchedTS:   start.UTC().Format(repository.LogTimeLayout),
		}); logErr != nil {
			h.logger.Debug("failed to ship credits fetch log", zap.Error(logErr))
		}

		end(err)
		response.Envelope(c, status, response.ErrorEnvelope{
			Error:   credits.FetchFailedLabel,
			Message: message,
			Status:  status,
		})
		return
	}

	h.countFetch(core.CreditsOutcomeSuccess, http.StatusOK)
	end(nil)
	response.Raw(c, http.StatusOK, payload)
}

// GetCosts 取得各操作的點數價目
// @Summary 點數價目表
// @Tags Credits
// @Produce json
// @Success 200 {object} response.Response{data=dto.CreditCosts}
// @Router /api/credits/costs [get]
func (h *CreditsHandler) GetCosts(c *gin.Context) {
	response.Success(c, dto.DefaultCreditCosts)
}

func (h *CreditsHandler) countFetch(outcome core.CreditsOutcome, status int) {
	if h.metric == nil || h.metric.CreditsFetchTotal == nil {
		return
	}
	h.metric.CreditsFetchTotal.WithLabelValues(string(outcome), strconv.Itoa(status)).Inc()
}
