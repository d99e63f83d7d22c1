// File: internal/middleware/constants.go
package middleware

// Context keys for middleware communication
type contextKey string

const (
	UserIDKey contextKey = "user_id"
)

// DefaultSessionCookie is the cookie the identity provider's SDK sets.
const DefaultSessionCookie = "appSession"
