package core

type Role string

const (
	RoleAdmin  Role = "admin"  // 管理員
	RoleUser   Role = "user"   // 一般使用者
	RoleBanned Role = "banned" // 被禁用，無法登入或操作
)

type Status string

const (
	StatusActive    Status = "active"    // 正常可用
	StatusBlocked   Status = "blocked"   // 被封鎖（例如濫用）
	StatusSuspended Status = "suspended" // 暫停（違規調查中）
	StatusPending   Status = "pending"   // 尚未啟用（等待驗證信）
	StatusDeleted   Status = "deleted"   // 已刪除（軟刪除）
)
