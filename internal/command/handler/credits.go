package command

import (
	"context"
	"time"

	"soundgate/internal/service/credits"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type CreditsHandler struct {
	logger  *zap.Logger
	fetcher credits.Fetcher
}

func NewCreditsHandler(logger *zap.Logger, fetcher credits.Fetcher) *CreditsHandler {
	return &CreditsHandler{
		logger:  logger,
		fetcher: fetcher,
	}
}

// Balance 查詢一次點數並輸出上游原始 JSON
func (handler *CreditsHandler) Balance(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	payload, err := handler.fetcher.GetCredits(ctx)
	if err != nil {
		status, message := credits.Normalize(err)
		handler.logger.Warn("[Command] credits fetch failed", zap.Int("status", status), zap.String("message", message))
		return err
	}
	cmd.Println(string(payload))
	return nil
}
