package db

import (
	"path/filepath"
	"testing"

	"hospital_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	err := Initialize(Options{Path: path, Environment: "test"}, zap.NewNop())
	require.NoError(t, err)
	defer Close()

	assert.NoError(t, Ping())
	assert.NoError(t, AutoMigrate(&models.User{}, &models.Session{}, &models.Patient{}))
	assert.True(t, DB.Migrator().HasTable(&models.Patient{}))
}

func TestDialectorForTurso(t *testing.T) {
	d, err := dialectorFor(Options{TursoURL: "libsql://hospital.turso.io", TursoToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	_, err = dialectorFor(Options{TursoURL: "://bad"})
	assert.Error(t, err)
}

func TestUninitialized(t *testing.T) {
	saved := DB
	DB = nil
	defer func() { DB = saved }()

	assert.Error(t, Ping())
	assert.Error(t, AutoMigrate(&models.User{}))
	assert.NoError(t, Close())
}
