package handlers

import (
	"hospital_app_go/config"
	"hospital_app_go/db"
	"hospital_app_go/middleware"
	"hospital_app_go/models"
	"hospital_app_go/services"
	"hospital_app_go/services/dashboard"
	"hospital_app_go/services/i18n"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// unique shared memory name isolates tests while the background view load sees the same data
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&models.User{}, &models.Session{}, &models.Patient{}))
	require.NoError(t, i18n.Load(nil))

	db.DB = testDB
	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Environment:   "test",
		DefaultLocale: "pt",
	})
	return e, c, rec
}

func createUser(t *testing.T, testDB *gorm.DB, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := services.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Name:     "Rita Recepção",
		Email:    email,
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func newTestRegistry(t *testing.T, testDB *gorm.DB) *dashboard.Registry {
	t.Helper()
	loader := dashboard.NewLoader(services.NewPatientService(testDB), dashboard.NewPlaceholderStats(nil), dashboard.TemplateQueue{}, zap.NewNop())
	reg := dashboard.NewRegistry(func(s *services.SessionContext) *dashboard.View {
		return dashboard.NewView(s, loader, dashboard.WithRefreshDelay(50*time.Millisecond))
	}, time.Minute, zap.NewNop())
	t.Cleanup(reg.CloseAll)
	return reg
}

func withSession(c echo.Context, user *models.User, sessionID string) *services.SessionContext {
	sess := &services.SessionContext{SessionID: sessionID, UserID: user.ID, UserName: user.Name, Role: user.Role}
	c.Set(middleware.ContextKeyUser, user)
	c.Set(middleware.ContextKeySessionContext, sess)
	return sess
}
