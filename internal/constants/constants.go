package constants

const (
	// Session
	SessionCookieName = "tracker_session"
	ContextKeyUserID  = "user_id"

	// Context keys set by middleware
	ContextKeyTask      = "task"
	ContextKeyRequestID = "request_id"

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Authentication
	MinPasswordLength = 8
)
