package credits

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tcs := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"rate limited", &Error{Status: 429, Message: "rate limited"}, 429, "rate limited"},
		{"service unavailable", &Error{Status: 503, Message: "Service unavailable"}, 503, "Service unavailable"},
		{"no status no message", &Error{}, 500, DefaultFailureMessage},
		{"status only", &Error{Status: 502}, 502, DefaultFailureMessage},
		{"message only", &Error{Message: "malformed credits response"}, 500, "malformed credits response"},
		{"non error status", &Error{Status: 200, Message: "odd"}, 500, "odd"},
		{"wrapped", fmt.Errorf("fetch: %w", &Error{Status: 401, Message: "invalid api key"}), 401, "invalid api key"},
		{"plain error", errors.New("dial tcp: connection refused"), 500, "dial tcp: connection refused"},
		{"context deadline", context.DeadlineExceeded, 500, "context deadline exceeded"},
		{"nil", nil, 500, DefaultFailureMessage},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			status, message := Normalize(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantMessage, message)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "429: rate limited", (&Error{Status: 429, Message: "rate limited"}).Error())
	assert.Equal(t, "credits upstream status 503", (&Error{Status: http.StatusServiceUnavailable}).Error())
	assert.Equal(t, "credits fetch failed", (&Error{}).Error())

	cause := errors.New("eof")
	err := &Error{Err: cause}
	assert.Equal(t, "eof", err.Error())
	assert.ErrorIs(t, err, cause)
}
