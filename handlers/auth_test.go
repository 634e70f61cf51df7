package handlers

import (
	"hospital_app_go/middleware"
	"hospital_app_go/models"
	"hospital_app_go/services"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loginForm(email, password string) *strings.Reader {
	return strings.NewReader(url.Values{"email": {email}, "password": {password}}.Encode())
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginPage(t *testing.T) {
	testDB := setupTestDB(t)
	h := NewAuthHandler(newTestRegistry(t, testDB), zap.NewNop())

	_, c, rec := setupEcho(http.MethodGet, "/login", nil)
	require.NoError(t, h.LoginPage(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="email"`)
	assert.Contains(t, rec.Body.String(), "Acesso ao sistema")
	assert.NotContains(t, rec.Body.String(), "login-error")
}

func TestLogin(t *testing.T) {
	testDB := setupTestDB(t)
	h := NewAuthHandler(newTestRegistry(t, testDB), zap.NewNop())
	user := createUser(t, testDB, "rita@hospital.test", "Senha!123", models.RoleReceptionist)

	t.Run("Success", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/login", loginForm(" Rita@Hospital.test ", "Senha!123"))
		require.NoError(t, h.Login(c))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/recepcionista", rec.Header().Get("Location"))

		cookie := findCookie(rec.Result().Cookies(), middleware.SessionCookieName)
		require.NotNil(t, cookie)
		session, err := services.ValidateSession(testDB, cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, user.ID, session.UserID)

		var stored models.User
		require.NoError(t, testDB.First(&stored, "id = ?", user.ID).Error)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("SuccessHTMX", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("rita@hospital.test", "Senha!123"))
		c.Request().Header.Set("HX-Request", "true")
		require.NoError(t, h.Login(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/recepcionista", rec.Header().Get("HX-Redirect"))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("rita@hospital.test", "errada"))
		require.NoError(t, h.Login(c))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "E-mail ou senha inválidos")
		assert.Contains(t, rec.Body.String(), `value="rita@hospital.test"`)
		assert.Nil(t, findCookie(rec.Result().Cookies(), middleware.SessionCookieName))

		var stored models.User
		require.NoError(t, testDB.First(&stored, "id = ?", user.ID).Error)
		assert.Equal(t, 1, stored.FailedLoginAttempts)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("ninguem@hospital.test", "Senha!123"))
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("", ""))
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("LockedAccount", func(t *testing.T) {
		locked := createUser(t, testDB, "locked@hospital.test", "Senha!123", models.RolePhysician)
		until := time.Now().Add(time.Hour)
		require.NoError(t, testDB.Model(locked).Update("lockout_until", &until).Error)

		_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("locked@hospital.test", "Senha!123"))
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusLocked, rec.Code)
		assert.Contains(t, rec.Body.String(), "Conta bloqueada")
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		inactive := createUser(t, testDB, "inactive@hospital.test", "Senha!123", models.RoleAdmin)
		require.NoError(t, testDB.Model(inactive).Update("is_active", false).Error)

		_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("inactive@hospital.test", "Senha!123"))
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("RoleWithoutReceptionAccess", func(t *testing.T) {
		nurse := createUser(t, testDB, "nurse@hospital.test", "Senha!123", models.RoleNurse)

		_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("nurse@hospital.test", "Senha!123"))
		require.NoError(t, h.Login(c))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Esta conta não tem acesso à área da recepção")
		assert.Nil(t, findCookie(rec.Result().Cookies(), middleware.SessionCookieName))

		var count int64
		testDB.Model(&models.Session{}).Where("user_id = ?", nurse.ID).Count(&count)
		assert.Zero(t, count)
	})
}

func TestLogout(t *testing.T) {
	testDB := setupTestDB(t)
	views := newTestRegistry(t, testDB)
	h := NewAuthHandler(views, zap.NewNop())
	user := createUser(t, testDB, "rita@hospital.test", "Senha!123", models.RoleReceptionist)

	session, err := services.CreateSession(testDB, user.ID, "127.0.0.1", "test")
	require.NoError(t, err)

	_, c, rec := setupEcho(http.MethodPost, "/logout", nil)
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session.Token})
	sess := withSession(c, user, session.ID)
	view := views.Get(sess)

	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.True(t, view.Closed())
	_, ok := views.Lookup(session.ID)
	assert.False(t, ok)

	_, err = services.ValidateSession(testDB, session.Token)
	assert.ErrorIs(t, err, services.ErrSessionNotFound)

	cookie := findCookie(rec.Result().Cookies(), middleware.SessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)
}
