package dashboard

import (
	"errors"
	"testing"
	"time"

	"hospital_app_go/models"
	"hospital_app_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

func testSession() *services.SessionContext {
	return &services.SessionContext{SessionID: "sess-1", UserID: "user-1", UserName: "Rita", Role: models.RoleReceptionist}
}

func newTestView(source PatientSource, opts ...ViewOption) *View {
	loader := NewLoader(source, NewPlaceholderStats(nil), TemplateQueue{}, zap.NewNop())
	return NewView(testSession(), loader, opts...)
}

func waitLoaded(t *testing.T, v *View) {
	t.Helper()
	require.Eventually(t, func() bool { return !v.Snapshot().Loading }, waitFor, tick)
}

func TestViewMount(t *testing.T) {
	patients := new(MockPatientSource)
	patients.On("ListPatients", mock.Anything).Return(makePatients(9), nil).Once()

	v := newTestView(patients)
	defer v.Close()

	v.Mount()
	v.Mount()
	waitLoaded(t, v)

	snap := v.Snapshot()
	assert.Equal(t, "Rita", snap.UserName)
	require.Len(t, snap.Queue, 6)
	require.Len(t, snap.Upcoming, 3)
	assert.Equal(t, "Paciente 1", snap.Queue[0].Name)
	assert.Equal(t, "Paciente 9", snap.Upcoming[2].PatientName)
	assert.Equal(t, 18, snap.Stats.PatientsToday)
	assert.Equal(t, 27, snap.Stats.AppointmentsToday)
	assert.Equal(t, 4, snap.Stats.PatientsWaiting)
	assert.Equal(t, 9, snap.Stats.UpcomingAppointments)

	patients.AssertNumberOfCalls(t, "ListPatients", 1)
}

func TestViewLoadingUntilFetchCompletes(t *testing.T) {
	source := newGatedPatients(makePatients(2))
	v := newTestView(source)
	defer v.Close()

	v.Mount()
	<-source.started
	assert.True(t, v.Snapshot().Loading)
	assert.Empty(t, v.Snapshot().Queue)

	close(source.release)
	waitLoaded(t, v)
	assert.Equal(t, "Paciente 2", v.Snapshot().Queue[1].Name)
}

func TestViewFetchFailure(t *testing.T) {
	patients := new(MockPatientSource)
	patients.On("ListPatients", mock.Anything).Return(nil, errors.New("no such table: patients"))

	v := newTestView(patients)
	defer v.Close()

	v.Mount()
	waitLoaded(t, v)

	snap := v.Snapshot()
	assert.Len(t, snap.Queue, 6)
	assert.Len(t, snap.Upcoming, 3)
	assert.Equal(t, "José Silva", snap.Queue[0].Name)
	assert.Equal(t, 24, snap.Stats.PatientsToday)
}

func TestViewRefresh(t *testing.T) {
	patients := new(MockPatientSource)
	patients.On("ListPatients", mock.Anything).Return(makePatients(3), nil).Once()

	v := newTestView(patients, WithRefreshDelay(50*time.Millisecond))
	defer v.Close()
	v.Mount()
	waitLoaded(t, v)
	before := v.Snapshot()

	v.Refresh()
	during := v.Snapshot()
	assert.True(t, during.Loading)
	assert.Equal(t, before.Queue, during.Queue)

	waitLoaded(t, v)
	after := v.Snapshot()
	assert.Equal(t, before.Queue, after.Queue)
	assert.Equal(t, before.Stats, after.Stats)

	patients.AssertNumberOfCalls(t, "ListPatients", 1)
}

func TestViewRefreshRestartsDelay(t *testing.T) {
	v := newTestView(newGatedPatients(nil), WithRefreshDelay(80*time.Millisecond))
	defer v.Close()

	v.Refresh()
	time.Sleep(50 * time.Millisecond)
	v.Refresh()
	time.Sleep(50 * time.Millisecond)
	assert.True(t, v.Snapshot().Loading)

	waitLoaded(t, v)
}

func TestViewSearch(t *testing.T) {
	v := newTestView(newGatedPatients(nil))
	defer v.Close()

	t.Run("blank term does nothing", func(t *testing.T) {
		for _, term := range []string{"", "   ", "\t"} {
			notice, ok := v.Search(term)
			assert.False(t, ok)
			assert.Empty(t, notice)
			assert.Equal(t, term, v.Snapshot().SearchTerm)
		}
	})

	t.Run("term is surfaced verbatim and the field cleared", func(t *testing.T) {
		notice, ok := v.Search(" Maria da Silva ")
		assert.True(t, ok)
		assert.Equal(t, " Maria da Silva ", notice)

		assert.Empty(t, v.Snapshot().SearchTerm)
	})

	t.Run("cpf", func(t *testing.T) {
		notice, ok := v.Search("123.456.789-09")
		assert.True(t, ok)
		assert.Equal(t, "123.456.789-09", notice)
	})
}

func TestViewCloseDiscardsLateLoad(t *testing.T) {
	source := newGatedPatients(makePatients(9))
	v := newTestView(source)

	v.Mount()
	<-source.started
	v.Close()
	close(source.release)

	assert.Never(t, func() bool { return len(v.Snapshot().Queue) > 0 }, 100*time.Millisecond, tick)
	assert.True(t, v.Closed())
}

func TestViewCloseCancelsRefresh(t *testing.T) {
	v := newTestView(newGatedPatients(nil), WithRefreshDelay(20*time.Millisecond))

	v.Refresh()
	v.Close()
	assert.False(t, v.Snapshot().Loading)

	v.Refresh()
	assert.False(t, v.Snapshot().Loading)
	time.Sleep(40 * time.Millisecond)
	assert.False(t, v.Snapshot().Loading)
}

func TestViewWithoutSession(t *testing.T) {
	v := NewView(nil, NewLoader(newGatedPatients(nil), NewPlaceholderStats(nil), TemplateQueue{}, nil))
	defer v.Close()
	assert.Empty(t, v.Snapshot().UserName)
}
