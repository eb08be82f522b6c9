package command

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	commandHandler "soundgate/internal/command/handler"
	"soundgate/internal/service/credits"
	"soundgate/internal/service/session"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFetcher struct {
	err error
}

func (s stubFetcher) GetCredits(context.Context) (credits.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return credits.Response(`{"credits":120}`), nil
}

type stubIssuer struct {
	revoked []string
}

func (s *stubIssuer) Issue(_ context.Context, userID string) (string, *session.Session, error) {
	return "signed-token", &session.Session{ID: "jti", UserID: userID, ExpiresAt: time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC)}, nil
}

func (s *stubIssuer) Revoke(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func execute(t *testing.T, fetcher credits.Fetcher, issuer *stubIssuer, args ...string) (string, error) {
	t.Helper()
	logger := zap.NewNop()
	built := 0
	root := &cobra.Command{Use: "app", SilenceUsage: true, SilenceErrors: true}
	Register(root, func() (*Command, func(), error) {
		built++
		return NewCommand(
			commandHandler.NewCreditsHandler(logger, fetcher),
			commandHandler.NewSessionHandler(logger, issuer),
		), func() {}, nil
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	assert.LessOrEqual(t, built, 1)
	return out.String(), err
}

func TestCreditsCommand(t *testing.T) {
	out, err := execute(t, stubFetcher{}, &stubIssuer{}, "credits")
	require.NoError(t, err)
	assert.Equal(t, `{"credits":120}`, strings.TrimSpace(out))

	_, err = execute(t, stubFetcher{err: &credits.Error{Status: 401, Message: "invalid api key"}}, &stubIssuer{}, "credits")
	var fetchErr *credits.Error
	assert.True(t, errors.As(err, &fetchErr))
}

func TestSessionCommands(t *testing.T) {
	issuer := &stubIssuer{}

	out, err := execute(t, stubFetcher{}, issuer, "session", "issue", "64f000000000000000000001")
	require.NoError(t, err)
	assert.Contains(t, out, "signed-token")
	assert.Contains(t, out, "2026-10-24T00:00:00Z")

	_, err = execute(t, stubFetcher{}, issuer, "session", "revoke", "signed-token")
	require.NoError(t, err)
	assert.Equal(t, []string{"signed-token"}, issuer.revoked)

	_, err = execute(t, stubFetcher{}, issuer, "session", "issue")
	assert.Error(t, err)
}
