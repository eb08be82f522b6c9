package repository

import (
	"context"
	"testing"

	"soundgate/internal/core"

	"github.com/stretchr/testify/assert"
)

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "soundgate:session_revoked:0190a1b2", buildKey(core.RedisKeyRevokedSession, "0190a1b2"))
	assert.Equal(t, "soundgate:session_revoked", buildKey(core.RedisKeyRevokedSession))
}

func TestRevokeSkipsExpiredToken(t *testing.T) {
	// client 為 nil，若真的送出指令會 panic
	repository := &SessionRepository{}
	assert.NoError(t, repository.Revoke(context.Background(), "jti", 0))
}
