package dto

import "time"

// 以下型別是點數用量的對外詞彙，目前只有 CreditCosts 會被輸出，其他型別沒有任何計算邏輯。

// CreditCosts 每種操作消耗的點數
type CreditCosts struct {
	GenerateMusic    int `json:"generateMusic"`
	ExtendMusic      int `json:"extendMusic"`
	GenerateLyrics   int `json:"generateLyrics"`
	SeparateVocals   int `json:"separateVocals"`
	ConvertToWav     int `json:"convertToWav"`
	CreateMusicVideo int `json:"createMusicVideo"`
}

type CreditOperation string

const (
	CreditOperationGenerateMusic    CreditOperation = "generateMusic"
	CreditOperationExtendMusic      CreditOperation = "extendMusic"
	CreditOperationGenerateLyrics   CreditOperation = "generateLyrics"
	CreditOperationSeparateVocals   CreditOperation = "separateVocals"
	CreditOperationConvertToWav     CreditOperation = "convertToWav"
	CreditOperationCreateMusicVideo CreditOperation = "createMusicVideo"
)

// CreditUsageRecord 單筆點數使用紀錄
type CreditUsageRecord struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Operation   CreditOperation `json:"operation"`
	CreditsUsed int             `json:"creditsUsed"`
	TaskID      string          `json:"taskId,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type CreditUsageHistory struct {
	Records    []CreditUsageRecord `json:"records"`
	TotalUsed  int                 `json:"totalUsed"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalCount int                 `json:"totalCount"`
}

// CreditAnalytics 欄位由外部系統填入
type CreditAnalytics struct {
	Period          string                  `json:"period"`
	TotalUsed       int                     `json:"totalUsed"`
	AveragePerDay   float64                 `json:"averagePerDay"`
	ByOperation     map[CreditOperation]int `json:"byOperation"`
	MostUsedFeature CreditOperation         `json:"mostUsedFeature,omitempty"`
	ProjectedRunout *time.Time              `json:"projectedRunout,omitempty"`
}

type LowCreditWarning struct {
	CurrentBalance int    `json:"currentBalance"`
	Threshold      int    `json:"threshold"`
	Message        string `json:"message"`
	Severity       string `json:"severity"`
}

// DefaultCreditCosts 目前 SunoAPI 方案的點數價目
var DefaultCreditCosts = CreditCosts{
	GenerateMusic:    12,
	ExtendMusic:      12,
	GenerateLyrics:   2,
	SeparateVocals:   10,
	ConvertToWav:     1,
	CreateMusicVideo: 2,
}
