package model

// CreditsFetchLog 每次 /api/credits 呼叫上游的結果；不含任何餘額內容
type CreditsFetchLog struct {
	RequestID   string `json:"request_id"`
	ProjectName string `json:"project_name,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	Outcome     string `json:"outcome"`
	StatusCode  int    `json:"status_code"`
	Message     string `json:"message,omitempty"`
	DurationMs  int64  `json:"duration_ms"`
	Version     string `json:"version,omitempty"`
	FetchedTS   string `json:"fetched_ts"`
	LoggedAt    string `json:"logged_at"`
}
