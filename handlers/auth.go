package handlers

import (
	"errors"
	"hospital_app_go/db"
	"hospital_app_go/middleware"
	"hospital_app_go/models"
	"hospital_app_go/services"
	"hospital_app_go/services/dashboard"
	"hospital_app_go/services/i18n"
	"hospital_app_go/templates/pages"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// dummyHash is compared against when the email is unknown so both paths cost one bcrypt check
var dummyHash = "$2a$10$X7.G.t8./.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t"

func init() {
	if hash, err := services.HashPassword("dummy_password_for_timing_mitigation"); err == nil {
		dummyHash = hash
	}
}

// AuthHandler serves login and logout
type AuthHandler struct {
	views *dashboard.Registry
	log   *zap.Logger
}

func NewAuthHandler(views *dashboard.Registry, log *zap.Logger) *AuthHandler {
	return &AuthHandler{views: views, log: log}
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return render(c, pages.Login(middleware.GetCSRFToken(c), "", ""))
}

// Login checks the credentials and starts a session
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")

	if email == "" || password == "" {
		return h.loginFailed(c, http.StatusBadRequest, email, "login.invalid")
	}

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		services.VerifyPassword(dummyHash, password)
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.log.Error("failed to look up user", zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to sign in")
		}
		return h.loginFailed(c, http.StatusUnauthorized, email, "login.invalid")
	}

	if user.IsLockedOut(time.Now()) {
		return h.loginFailed(c, http.StatusLocked, email, "login.locked")
	}

	if !services.VerifyPassword(user.Password, password) {
		if err := services.RecordFailedLogin(db.DB, &user); err != nil {
			h.log.Warn("failed to record failed login", zap.String("user_id", user.ID), zap.Error(err))
		}
		return h.loginFailed(c, http.StatusUnauthorized, email, "login.invalid")
	}

	if !user.IsActive {
		return h.loginFailed(c, http.StatusForbidden, email, "login.inactive")
	}

	// the reception tree is the only area of the app, so other roles cannot start a session
	if !services.IsAuthorized(user.Role, models.ReceptionRoles) {
		return h.loginFailed(c, http.StatusForbidden, email, "login.no_access")
	}

	if err := services.RecordSuccessfulLogin(db.DB, &user); err != nil {
		h.log.Warn("failed to record login", zap.String("user_id", user.ID), zap.Error(err))
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		h.log.Error("failed to create session", zap.String("user_id", user.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}
	middleware.SetSessionCookie(c, session.Token)

	if user.Language != "" && i18n.Supported(user.Language) {
		middleware.SetLanguageCookie(c, user.Language)
	}

	h.log.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", user.Role.String()))
	return redirect(c, "/recepcionista")
}

func (h *AuthHandler) loginFailed(c echo.Context, status int, email, messageKey string) error {
	return renderStatus(c, status, pages.Login(middleware.GetCSRFToken(c), email, messageKey))
}

// Logout ends the session and drops its dashboard view
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess := middleware.GetSessionContext(c); sess != nil {
		h.views.Dismiss(sess.SessionID)
	}

	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := services.DeleteSession(db.DB, cookie.Value); err != nil {
			h.log.Warn("failed to delete session", zap.Error(err))
		}
	}
	middleware.ClearSessionCookie(c)

	return redirect(c, "/login")
}
