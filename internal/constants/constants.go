package constants

import "time"

// Context and session keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
	SessionCookieName   = "collab_session"
)

// Account rules
const (
	MinPasswordLength = 8
	DefaultSemester   = 1
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Token lifetimes used when configuration does not provide one
const (
	DefaultAccessTokenTTL  = 5 * time.Hour
	DefaultRefreshTokenTTL = 24 * time.Hour
)

// MaxAISuggestedSkills caps how many skill names a generated project draft may carry
const MaxAISuggestedSkills = 10
