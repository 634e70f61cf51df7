package services

import (
	"hospital_app_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthorized(t *testing.T) {
	roleSets := [][]models.Role{
		nil,
		{},
		{models.RoleAdmin},
		models.ReceptionRoles,
		models.AllRoles(),
	}

	for _, allowed := range roleSets {
		for _, role := range append(models.AllRoles(), models.Role("visitor")) {
			want := false
			for _, a := range allowed {
				if a == role {
					want = true
				}
			}
			assert.Equal(t, want, IsAuthorized(role, allowed), "role=%s allowed=%v", role, allowed)
		}
	}
}

func TestSessionContextAuthorized(t *testing.T) {
	var nilSession *SessionContext
	assert.False(t, nilSession.Authorized(models.AllRoles()...))

	s := &SessionContext{UserName: "Rita", Role: models.RoleReceptionist}
	assert.True(t, s.Authorized(models.ReceptionRoles...))
	assert.False(t, s.Authorized(models.RoleAdmin))
	assert.False(t, s.Authorized())
}

func TestNewSessionContext(t *testing.T) {
	session := &models.Session{
		ID:   "sess-1",
		User: models.User{ID: "user-1", Name: "Dra. Ana Oliveira", Role: models.RolePhysician},
	}

	s := NewSessionContext(session)
	assert.Equal(t, "sess-1", s.SessionID)
	assert.Equal(t, "user-1", s.UserID)
	assert.Equal(t, "Dra. Ana Oliveira", s.UserName)
	assert.Equal(t, models.RolePhysician, s.Role)
}
