package core

// ─── Database Types ────────────────────────────────────────────────────────────

type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────

const (
	MongoCollectionUsers MongoCollection = "soundgate_users"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName     RedisKey = "soundgate"       // key 前綴
	RedisKeyRevokedSession RedisKey = "session_revoked" // 已登出 / 被撤銷的 session jti
)

// ─── Fluentd ───────────────────────────────────────────────────────────────────

const (
	FluentdRequest      FluentdSubTag = "request_log"
	FluentdResponse     FluentdSubTag = "response_log"
	FluentdCreditsFetch FluentdSubTag = "credits_fetch_log"
)
