package middleware

import (
	"strings"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewCors,
	NewLogger,
	NewRecovery,
	NewResponse,
)

// 這些路徑不做 tracing / 記錄 / 回應封裝
var untracedPrefixes = []string{
	"/swagger",
	"/metrics",
	"/version",
	"/health",
	"/debug/pprof",
}

func untraced(endpoint string) bool {
	for _, prefix := range untracedPrefixes {
		if strings.HasPrefix(endpoint, prefix) {
			return true
		}
	}
	return false
}
