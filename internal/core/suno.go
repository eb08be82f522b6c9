package core

type SunoEndpoint string

const (
	SunoCreditsEndpoint SunoEndpoint = "/api/v1/generate/credit"
)

// CreditsOutcome 用於 metric label 與 fluentd log
type CreditsOutcome string

const (
	CreditsOutcomeSuccess      CreditsOutcome = "success"
	CreditsOutcomeUnauthorized CreditsOutcome = "unauthorized"
	CreditsOutcomeFailed       CreditsOutcome = "failed"
)
