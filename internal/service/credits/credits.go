package credits

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

const (
	FetchFailedLabel      = "Credits Fetch Failed"
	DefaultFailureMessage = "Unable to fetch credits balance"
)

// Response 上游回傳的原始 JSON，原封不動轉給呼叫端
type Response = json.RawMessage

// Fetcher 取得目前帳戶的點數餘額
type Fetcher interface {
	GetCredits(ctx context.Context) (Response, error)
}

// Error 上游失敗；Status 為 0 或 Message 為空代表上游沒有提供
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return strconv.Itoa(e.Status) + ": " + e.Message
	case e.Message != "":
		return e.Message
	case e.Status != 0:
		return "credits upstream status " + strconv.Itoa(e.Status)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "credits fetch failed"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Normalize 把任意錯誤轉成回應用的 status 與 message。
// 不合法的 status（非 4xx/5xx）一律視為 500。
func Normalize(err error) (status int, message string) {
	status = http.StatusInternalServerError
	message = DefaultFailureMessage
	if err == nil {
		return status, message
	}

	var fetchErr *Error
	if errors.As(err, &fetchErr) {
		if fetchErr.Status >= http.StatusBadRequest && fetchErr.Status <= 599 {
			status = fetchErr.Status
		}
		if fetchErr.Message != "" {
			message = fetchErr.Message
		}
		return status, message
	}
	if msg := err.Error(); msg != "" {
		message = msg
	}
	return status, message
}
