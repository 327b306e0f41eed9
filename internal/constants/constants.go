package constants

// Session and gin context keys
const (
	SessionCookieName   = "task_session"
	ContextKeyUserID    = "user_id"
	ContextKeyActor     = "actor"
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

// Validation limits
const (
	MinPasswordLength   = 5
	MaxUsernameLength   = 100
	MaxTeamNameLength   = 255
	MaxAIGeneratedTasks = 20
)
