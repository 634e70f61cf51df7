package services

import "hospital_app_go/models"

// SessionContext is the authenticated principal of a request. It is built once by
// the auth middleware and handed explicitly to handlers and views.
type SessionContext struct {
	SessionID string
	UserID    string
	UserName  string
	Role      models.Role
}

// IsAuthorized reports whether role is a member of allowed.
// An empty allow-list authorizes nobody.
func IsAuthorized(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Authorized reports whether the session's role is one of allowed
func (s *SessionContext) Authorized(allowed ...models.Role) bool {
	if s == nil {
		return false
	}
	return IsAuthorized(s.Role, allowed)
}

// NewSessionContext builds the request principal from a validated session
func NewSessionContext(session *models.Session) *SessionContext {
	return &SessionContext{
		SessionID: session.ID,
		UserID:    session.User.ID,
		UserName:  session.User.Name,
		Role:      session.User.Role,
	}
}
