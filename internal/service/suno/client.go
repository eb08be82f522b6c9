package suno

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"soundgate/config"
	"soundgate/internal/core"
	"soundgate/internal/service/credits"
	"soundgate/internal/telemetry"
)

// 回應上限，點數查詢的 body 通常只有幾十 bytes
const maxBodyBytes = 1 << 20

// Client 呼叫 SunoAPI；實作 credits.Fetcher
type Client struct {
	httpClient *http.Client
	trace      *telemetry.Trace
	baseURL    string
	apiKey     string
}

func NewClient(conf *config.Configuration, trace *telemetry.Trace, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		trace:      trace,
		baseURL:    strings.TrimRight(conf.Suno.BaseURL, "/"),
		apiKey:     conf.Suno.APIKey,
	}
}

// GetCredits 查詢帳戶剩餘點數。每次呼叫只發一次 HTTP 請求，不重試。
// 失敗一律回傳 *credits.Error。
func (c *Client) GetCredits(ctx context.Context) (credits.Response, error) {
	url := c.baseURL + string(core.SunoCreditsEndpoint)
	ctx, span, end := c.trace.WithSpan(ctx, string(core.SpanSunoGetCredits))

	meta := core.TraceCreditsFetchMeta{URL: url, Outcome: string(core.CreditsOutcomeFailed)}
	payload, err := c.getCredits(ctx, url, &meta)
	if err == nil {
		meta.Outcome = string(core.CreditsOutcomeSuccess)
	}
	c.trace.ApplyTraceAttributes(span, meta)
	end(err)
	return payload, err
}

func (c *Client) getCredits(ctx context.Context, url string, meta *core.TraceCreditsFetchMeta) (credits.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &credits.Error{Message: "build credits request failed", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, br, zstd")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	meta.StatusCode = resp.StatusCode
	meta.ContentEncoding = resp.Header.Get("Content-Encoding")

	raw, err := readLimited(resp.Body)
	if errors.Is(err, errBodyTooLarge) {
		return nil, tooLargeError()
	}
	if err != nil {
		return nil, transportError(err)
	}
	body, err := decompressOnly(raw, resp.Header)
	if errors.Is(err, errBodyTooLarge) {
		return nil, tooLargeError()
	}
	if err != nil {
		return nil, &credits.Error{Status: http.StatusBadGateway, Message: "undecodable credits response", Err: err}
	}
	meta.BodyBytes = len(body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &credits.Error{
			Status:  resp.StatusCode,
			Message: upstreamMessage(body),
			Err:     fmt.Errorf("suno non-2xx: %s", resp.Status),
		}
	}

	if !json.Valid(body) {
		return nil, &credits.Error{Message: "malformed credits response"}
	}
	// SunoAPI 有時以 HTTP 200 回傳 {"code":401,"msg":"..."}
	if status, msg, ok := envelopeFailure(body); ok {
		return nil, &credits.Error{Status: status, Message: msg}
	}
	return credits.Response(body), nil
}

// body 超過 maxBodyBytes 時整筆視為失敗，不轉送截斷的內容
func tooLargeError() *credits.Error {
	return &credits.Error{Status: http.StatusBadGateway, Message: "credits response too large", Err: errBodyTooLarge}
}

func transportError(err error) *credits.Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &credits.Error{Status: http.StatusGatewayTimeout, Message: "credits request timed out", Err: err}
	}
	return &credits.Error{Message: err.Error(), Err: err}
}

// upstreamMessage 依序取 msg / message / error 欄位
func upstreamMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, key := range []string{"msg", "message", "error"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		// {"error":{"message":"..."}}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return ""
}

func envelopeFailure(body []byte) (int, string, bool) {
	var envelope struct {
		Code *int `json:"code"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Code == nil {
		return 0, "", false
	}
	code := *envelope.Code
	if code < http.StatusBadRequest || code > 599 {
		return 0, "", false
	}
	return code, upstreamMessage(body), true
}
