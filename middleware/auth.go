package middleware

import (
	"hospital_app_go/config"
	"hospital_app_go/db"
	"hospital_app_go/models"
	"hospital_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "hospital_session"
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeySession is the context key for the stored session
	ContextKeySession = "session"
	// ContextKeySessionContext is the context key for the request principal
	ContextKeySessionContext = "session_context"
)

// RequireAuth is middleware that requires a valid session of an active user.
// It stores the user, the session and a *services.SessionContext on the echo context.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return redirectToLogin(c)
			}

			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil {
				clearSessionCookie(c)
				return redirectToLogin(c)
			}

			if !session.User.IsActive {
				clearSessionCookie(c)
				return redirectToLogin(c)
			}

			c.Set(ContextKeyUser, &session.User)
			c.Set(ContextKeySession, session)
			c.Set(ContextKeySessionContext, services.NewSessionContext(session))

			return next(c)
		}
	}
}

// Protect wraps a page handler with the role gate. Without a session context the
// request is sent to the login page; a role outside allowed gets a 403 and the
// page is never invoked.
func Protect(allowed []models.Role, page echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := GetSessionContext(c)
		if sess == nil {
			return redirectToLogin(c)
		}
		if !sess.Authorized(allowed...) {
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
		return page(c)
	}
}

// RequireRole is middleware that requires one of the given roles
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return Protect(roles, next)
	}
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetSessionContext retrieves the request principal from context
func GetSessionContext(c echo.Context) *services.SessionContext {
	sess, ok := c.Get(ContextKeySessionContext).(*services.SessionContext)
	if !ok {
		return nil
	}
	return sess
}

// SetSessionCookie stores the session token in the browser
func SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.DefaultSessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   isProduction(c),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(c echo.Context) {
	clearSessionCookie(c)
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction(c),
		SameSite: http.SameSiteLaxMode,
	})
}

func isProduction(c echo.Context) bool {
	cfg, ok := c.Get("config").(*config.Config)
	return ok && cfg.IsProduction()
}

// redirectToLogin sends browsers to /login; HTMX requests get HX-Redirect instead
func redirectToLogin(c echo.Context) error {
	if IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", "/login")
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// IsHTMX reports whether the request was issued by htmx
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
