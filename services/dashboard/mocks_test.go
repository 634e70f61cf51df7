package dashboard

import (
	"context"
	"fmt"

	"hospital_app_go/models"

	"github.com/stretchr/testify/mock"
)

// MockPatientSource is a mock of PatientSource
type MockPatientSource struct {
	mock.Mock
}

func (m *MockPatientSource) ListPatients(ctx context.Context) ([]models.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Patient), args.Error(1)
}

// MockStatsSource is a mock of StatsSource
type MockStatsSource struct {
	mock.Mock
}

func (m *MockStatsSource) Stats(patientCount int) Stats {
	args := m.Called(patientCount)
	return args.Get(0).(Stats)
}

// MockQueueSource is a mock of QueueSource
type MockQueueSource struct {
	mock.Mock
}

func (m *MockQueueSource) WaitQueue(names []string) []WaitQueueEntry {
	args := m.Called(names)
	return args.Get(0).([]WaitQueueEntry)
}

func (m *MockQueueSource) UpcomingAppointments(names []string) []UpcomingAppointment {
	args := m.Called(names)
	return args.Get(0).([]UpcomingAppointment)
}

// gatedPatients ignores the context and returns once release is closed
type gatedPatients struct {
	started chan struct{}
	release chan struct{}
	result  []models.Patient
}

func newGatedPatients(result []models.Patient) *gatedPatients {
	return &gatedPatients{started: make(chan struct{}), release: make(chan struct{}), result: result}
}

func (g *gatedPatients) ListPatients(ctx context.Context) ([]models.Patient, error) {
	close(g.started)
	<-g.release
	return g.result, nil
}

func makePatients(n int) []models.Patient {
	patients := make([]models.Patient, n)
	for i := range patients {
		patients[i] = models.Patient{Name: fmt.Sprintf("Paciente %d", i+1)}
	}
	return patients
}
