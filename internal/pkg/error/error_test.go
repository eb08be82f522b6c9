package error

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	appErr := NotFound("user not found")
	assert.Same(t, appErr, From(appErr))
	assert.Same(t, appErr, From(fmt.Errorf("lookup: %w", appErr)))

	wrapped := From(fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, wrapped.HttpCode())
	assert.Equal(t, INTERNAL_ERROR, wrapped.ErrorCode())
	assert.Equal(t, "boom", wrapped.ErrorDesc())
}

func TestMapHttpStatusToError(t *testing.T) {
	tcs := []struct {
		status   int
		wantCode int
		wantMsg  string
	}{
		{http.StatusBadRequest, BAD_REQUEST_BODY, "bad-request"},
		{http.StatusUnauthorized, UNAUTHORIZED, "unauthorized"},
		{http.StatusTooManyRequests, RATE_LIMIT_EXCEEDED, "rate-limit-exceeded"},
		{http.StatusBadGateway, EXTERNAL_REQUEST_ERROR, "external-request-failed"},
		{http.StatusGatewayTimeout, GATEWAY_TIMEOUT, "gateway-timeout"},
		{http.StatusTeapot, INTERNAL_ERROR, "internal-server-error"},
	}
	for _, tc := range tcs {
		err := MapHttpStatusToError(tc.status, "request error")
		assert.Equal(t, tc.wantCode, err.ErrorCode(), "status %d", tc.status)
		assert.Equal(t, tc.wantMsg, err.Error(), "status %d", tc.status)
		assert.Equal(t, "request error", err.ErrorDesc())
	}
}
