package services

import (
	"hospital_app_go/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbName := "mem_" + uuid.New().String()
	db, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}, &models.Patient{}))
	return db
}

func TestPasswordHashing(t *testing.T) {
	password := "SecretPass123!"

	hash, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, VerifyPassword(hash, password))
	assert.False(t, VerifyPassword(hash, "WrongPass"))
}

func TestSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	user := &models.User{Name: "Rita Recepção", Email: "rita@hospital.test", Password: "x", Role: models.RoleReceptionist}
	require.NoError(t, db.Create(user).Error)

	session, err := CreateSession(db, user.ID, "127.0.0.1", "TestAgent")
	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Len(t, session.Token, SessionTokenLength*2)
	assert.WithinDuration(t, time.Now().Add(DefaultSessionDuration), session.ExpiresAt, 10*time.Second)

	valid, err := ValidateSession(db, session.Token)
	assert.NoError(t, err)
	assert.Equal(t, session.ID, valid.ID)
	assert.Equal(t, "Rita Recepção", valid.User.Name)
	assert.Equal(t, models.RoleReceptionist, valid.User.Role)

	invalid, err := ValidateSession(db, "invalid-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Nil(t, invalid)

	assert.NoError(t, DeleteSession(db, session.Token))

	deleted, err := ValidateSession(db, session.Token)
	assert.Error(t, err)
	assert.Nil(t, deleted)
}

func TestSessionExpiry(t *testing.T) {
	db := setupTestDB(t)

	token := "expired-token"
	db.Create(&models.Session{
		ID:        "sess-expired",
		UserID:    "user-exp",
		Token:     token,
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	})

	sess, err := ValidateSession(db, token)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Nil(t, sess)

	var count int64
	db.Model(&models.Session{}).Where("token = ?", token).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Session{ID: "sess-valid", Token: "valid", ExpiresAt: time.Now().Add(time.Hour)})
	db.Create(&models.Session{ID: "sess-expired-1", Token: "exp1", ExpiresAt: time.Now().Add(-time.Hour)})
	db.Create(&models.Session{ID: "sess-expired-2", Token: "exp2", ExpiresAt: time.Now().Add(-2 * time.Hour)})

	removed, err := CleanupExpiredSessions(db)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	var remaining []models.Session
	db.Find(&remaining)
	require.Len(t, remaining, 1)
	assert.Equal(t, "sess-valid", remaining[0].ID)
}

func TestLoginLockout(t *testing.T) {
	db := setupTestDB(t)
	user := &models.User{Name: "Dr. Paulo", Email: "paulo@hospital.test", Password: "x", Role: models.RolePhysician}
	require.NoError(t, db.Create(user).Error)

	for i := 0; i < MaxFailedLogins-1; i++ {
		require.NoError(t, RecordFailedLogin(db, user))
	}
	assert.False(t, user.IsLockedOut(time.Now()))

	require.NoError(t, RecordFailedLogin(db, user))

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.True(t, stored.IsLockedOut(time.Now()))
	assert.Equal(t, 0, stored.FailedLoginAttempts)

	require.NoError(t, RecordSuccessfulLogin(db, user))
	var cleared models.User
	require.NoError(t, db.First(&cleared, "id = ?", user.ID).Error)
	assert.Nil(t, cleared.LockoutUntil)
	assert.False(t, cleared.IsLockedOut(time.Now()))
	assert.NotNil(t, cleared.LastLoginAt)
}
