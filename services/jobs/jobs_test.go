package jobs

import (
	"hospital_app_go/models"
	"hospital_app_go/services"
	"hospital_app_go/services/dashboard"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupJobsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:mem_"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))
	return db
}

func TestCleanupSessions(t *testing.T) {
	db := setupJobsTestDB(t)
	db.Create(&models.Session{ID: "live", Token: "live", ExpiresAt: time.Now().Add(time.Hour)})
	db.Create(&models.Session{ID: "old", Token: "old", ExpiresAt: time.Now().Add(-time.Hour)})

	core, logs := observer.New(zap.InfoLevel)
	CleanupSessions(db, zap.New(core))

	var remaining []models.Session
	db.Find(&remaining)
	require.Len(t, remaining, 1)
	assert.Equal(t, "live", remaining[0].ID)

	entries := logs.FilterMessage("expired sessions removed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["count"])
}

func TestCleanupSessionsLogsFailure(t *testing.T) {
	db := setupJobsTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.Session{}))

	core, logs := observer.New(zap.InfoLevel)
	CleanupSessions(db, zap.New(core))

	assert.Equal(t, 1, logs.FilterMessage("session cleanup failed").Len())
}

func TestSweepViews(t *testing.T) {
	reg := dashboard.NewRegistry(func(s *services.SessionContext) *dashboard.View {
		v := dashboard.NewView(s, nil)
		v.Close()
		return v
	}, time.Minute, zap.NewNop())

	reg.Get(&services.SessionContext{SessionID: "a", UserName: "Rita"})
	reg.Get(&services.SessionContext{SessionID: "b", UserName: "Paulo"})
	require.Equal(t, 2, reg.Len())

	core, logs := observer.New(zap.InfoLevel)
	SweepViews(reg, zap.New(core))

	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 1, logs.FilterMessage("idle dashboard views closed").Len())
}

func TestSchedulerRegistration(t *testing.T) {
	db := setupJobsTestDB(t)
	reg := dashboard.NewRegistry(nil, time.Minute, zap.NewNop())

	s := NewScheduler(nil, zap.NewNop())
	require.NoError(t, RegisterMaintenance(s, db, reg))
	assert.Equal(t, 2, s.Len())

	assert.Error(t, s.Add("broken", "not a spec", func() {}))
	assert.Equal(t, 2, s.Len())

	s.Start()
	s.Stop()
}

func TestSchedulerRecoversPanics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewScheduler(time.UTC, zap.New(core))

	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add("boom", "@every 1s", func() {
		defer func() { ran <- struct{}{} }()
		panic("boom")
	}))
	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("job panicked").Len() == 1
	}, time.Second, 10*time.Millisecond)
}
