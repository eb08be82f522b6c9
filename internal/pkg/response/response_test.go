package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	cErr "soundgate/internal/pkg/error"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestEnvelopeOmitsZeroStatus(t *testing.T) {
	c, w := newContext()
	Envelope(c, http.StatusUnauthorized, ErrorEnvelope{Error: "Unauthorized", Message: "login"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized","message":"login"}`, w.Body.String())
	assert.True(t, c.IsAborted())
}

func TestRawWritesBodyVerbatim(t *testing.T) {
	c, w := newContext()
	Raw(c, http.StatusOK, []byte(`{"credits":120}`))

	assert.Equal(t, `{"credits":120}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestSuccessSetsDataAndMessage(t *testing.T) {
	c, _ := newContext()
	Success(c, gin.H{"message": "Costs Loaded", "total": 1})

	data, _ := c.Get("data")
	msg, _ := c.Get("message")
	assert.Equal(t, gin.H{"total": 1}, data)
	assert.Equal(t, "Costs Loaded", msg)
}

func TestFailByErr(t *testing.T) {
	c, w := newContext()
	FailByErr(c, "req-1", cErr.NotFound("missing"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"requestID":"req-1","code":40400,"data":null,"message":"not-found","description":"missing"}`, w.Body.String())

	c, w = newContext()
	FailByErr(c, "req-2", errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"requestID":"req-2","code":50000,"data":null,"message":"internal-server-error","description":"boom"}`, w.Body.String())

	c, w = newContext()
	FailByErr(c, "req-3", fmt.Errorf("lookup: %w", cErr.NotFound("missing")))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
