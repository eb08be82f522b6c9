package command

import (
	"context"
	"time"

	"soundgate/internal/service/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type SessionIssuer interface {
	Issue(ctx context.Context, userID string) (string, *session.Session, error)
	Revoke(ctx context.Context, token string) error
}

type SessionHandler struct {
	logger *zap.Logger
	issuer SessionIssuer
}

func NewSessionHandler(logger *zap.Logger, issuer SessionIssuer) *SessionHandler {
	return &SessionHandler{
		logger: logger,
		issuer: issuer,
	}
}

// Issue 為使用者簽發 session token（開發 / 客服用）
func (handler *SessionHandler) Issue(cmd *cobra.Command, args []string) error {
	token, sess, err := handler.issuer.Issue(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	handler.logger.Info("[Command] session issued",
		zap.String("userId", sess.UserID),
		zap.String("sessionId", sess.ID),
		zap.Time("expiresAt", sess.ExpiresAt),
	)
	cmd.Println(token)
	cmd.Printf("expires at %s\n", sess.ExpiresAt.Format(time.RFC3339))
	return nil
}

func (handler *SessionHandler) Revoke(cmd *cobra.Command, args []string) error {
	if err := handler.issuer.Revoke(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Println("session revoked")
	return nil
}
