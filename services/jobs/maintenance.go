package jobs

import (
	"hospital_app_go/services"
	"hospital_app_go/services/dashboard"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CleanupSessions removes expired login sessions
func CleanupSessions(database *gorm.DB, log *zap.Logger) {
	removed, err := services.CleanupExpiredSessions(database)
	if err != nil {
		log.Error("session cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		log.Info("expired sessions removed", zap.Int64("count", removed))
	}
}

// SweepViews drops dashboard views that have been idle too long
func SweepViews(views *dashboard.Registry, log *zap.Logger) {
	if n := views.Sweep(); n > 0 {
		log.Info("idle dashboard views closed", zap.Int("count", n), zap.Int("remaining", views.Len()))
	}
}

// RegisterMaintenance schedules the session cleanup and the dashboard view sweep
func RegisterMaintenance(s *Scheduler, database *gorm.DB, views *dashboard.Registry) error {
	if err := s.Add("session-cleanup", SessionCleanupSpec, func() { CleanupSessions(database, s.log) }); err != nil {
		return err
	}
	return s.Add("dashboard-view-sweep", ViewSweepSpec, func() { SweepViews(views, s.log) })
}
