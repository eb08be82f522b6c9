package repository

import (
	"strings"

	"soundgate/internal/core"

	"github.com/google/wire"
)

// Wire 依賴提供
var ProviderSet = wire.NewSet(NewSessionRepository)

// buildKey 組出 "soundgate:<kind>:<parts...>"
func buildKey(kind core.RedisKey, parts ...string) string {
	return strings.Join(append([]string{string(core.RedisKeyServerName), string(kind)}, parts...), ":")
}
