package dashboard

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderStatsRanges(t *testing.T) {
	p := NewPlaceholderStats(rand.New(rand.NewPCG(7, 11)))

	for i := 0; i < 500; i++ {
		s := p.Stats(3)
		assert.GreaterOrEqual(t, s.PatientsAdmitted, 5)
		assert.LessOrEqual(t, s.PatientsAdmitted, 19)
		assert.GreaterOrEqual(t, s.PatientsInTriage, 2)
		assert.LessOrEqual(t, s.PatientsInTriage, 9)
		assert.GreaterOrEqual(t, s.MedicationsPending, 10)
		assert.LessOrEqual(t, s.MedicationsPending, 29)
		assert.GreaterOrEqual(t, s.BedsAvailable, 3)
		assert.LessOrEqual(t, s.BedsAvailable, 14)
	}
}

func TestPlaceholderStatsBounds(t *testing.T) {
	low := &PlaceholderStats{intN: func(int) int { return 0 }}
	high := &PlaceholderStats{intN: func(n int) int { return n - 1 }}

	lo := low.Stats(0)
	assert.Equal(t, 5, lo.PatientsAdmitted)
	assert.Equal(t, 2, lo.PatientsInTriage)
	assert.Equal(t, 10, lo.MedicationsPending)
	assert.Equal(t, 3, lo.BedsAvailable)

	hi := high.Stats(0)
	assert.Equal(t, 19, hi.PatientsAdmitted)
	assert.Equal(t, 9, hi.PatientsInTriage)
	assert.Equal(t, 29, hi.MedicationsPending)
	assert.Equal(t, 14, hi.BedsAvailable)
}

func TestPlaceholderStatsDerived(t *testing.T) {
	p := NewPlaceholderStats(nil)

	tests := []struct {
		patients     int
		today        int
		appointments int
		waiting      int
		upcoming     int
	}{
		{patients: 0, today: 24, appointments: 35, waiting: 6, upcoming: 12},
		{patients: 1, today: 2, appointments: 3, waiting: 0, upcoming: 1},
		{patients: 3, today: 6, appointments: 9, waiting: 1, upcoming: 3},
		{patients: 5, today: 10, appointments: 15, waiting: 2, upcoming: 5},
		{patients: 12, today: 24, appointments: 35, waiting: 6, upcoming: 12},
		{patients: 40, today: 24, appointments: 35, waiting: 6, upcoming: 12},
	}

	for _, tt := range tests {
		s := p.Stats(tt.patients)
		assert.Equal(t, tt.today, s.PatientsToday, "today for %d patients", tt.patients)
		assert.Equal(t, tt.appointments, s.AppointmentsToday, "appointments for %d patients", tt.patients)
		assert.Equal(t, tt.waiting, s.PatientsWaiting, "waiting for %d patients", tt.patients)
		assert.Equal(t, tt.upcoming, s.UpcomingAppointments, "upcoming for %d patients", tt.patients)
	}
}

func TestTemplateQueueSizes(t *testing.T) {
	q := TemplateQueue{}
	for _, n := range []int{0, 1, 9, 15} {
		names := PatientNames(makePatients(n))
		assert.Len(t, q.WaitQueue(names), 6, "queue for %d patients", n)
		assert.Len(t, q.UpcomingAppointments(names), 3, "upcoming for %d patients", n)
	}
}

func TestTemplateQueueNames(t *testing.T) {
	q := TemplateQueue{}

	t.Run("no patients uses fallbacks", func(t *testing.T) {
		queue := q.WaitQueue(nil)
		assert.Equal(t, "José Silva", queue[0].Name)
		assert.Equal(t, "Luciana Alves", queue[5].Name)

		upcoming := q.UpcomingAppointments(nil)
		assert.Equal(t, "Antônio Gomes", upcoming[0].PatientName)
		assert.Equal(t, "Juliana Mendes", upcoming[1].PatientName)
		assert.Equal(t, "Roberto Almeida", upcoming[2].PatientName)
	})

	t.Run("nine patients label every row in order", func(t *testing.T) {
		names := PatientNames(makePatients(9))
		queue := q.WaitQueue(names)
		for i, e := range queue {
			assert.Equal(t, names[i], e.Name)
			assert.Equal(t, i+1, e.ID)
		}
		upcoming := q.UpcomingAppointments(names)
		for i, a := range upcoming {
			assert.Equal(t, names[6+i], a.PatientName)
		}
	})

	t.Run("partial list mixes names and fallbacks", func(t *testing.T) {
		names := PatientNames(makePatients(7))
		queue := q.WaitQueue(names)
		assert.Equal(t, "Paciente 1", queue[0].Name)
		assert.Equal(t, "Paciente 6", queue[5].Name)

		upcoming := q.UpcomingAppointments(names)
		assert.Equal(t, "Paciente 7", upcoming[0].PatientName)
		assert.Equal(t, "Juliana Mendes", upcoming[1].PatientName)
	})

	t.Run("blank name falls back", func(t *testing.T) {
		queue := q.WaitQueue([]string{"", "Maria"})
		assert.Equal(t, "José Silva", queue[0].Name)
		assert.Equal(t, "Maria", queue[1].Name)
	})
}

func TestTemplateQueueStaticFields(t *testing.T) {
	queue := TemplateQueue{}.WaitQueue(nil)
	require.Len(t, queue, 6)

	first := queue[0]
	assert.Equal(t, "11:30", first.Time)
	assert.Equal(t, "Consulta", first.VisitType)
	assert.Equal(t, "Dr. Carlos Santos", first.Physician)
	assert.Equal(t, StatusWaiting, first.Status)
	assert.Equal(t, PriorityNormal, first.Priority)
	assert.Equal(t, "11:25", first.ArrivalTime)

	for _, e := range queue[1:] {
		assert.Empty(t, e.ArrivalTime)
	}
	assert.Equal(t, StatusTriage, queue[1].Status)
	assert.Equal(t, PriorityUrgent, queue[3].Priority)
	assert.Equal(t, PriorityLow, queue[4].Priority)

	for _, a := range (TemplateQueue{}).UpcomingAppointments(nil) {
		assert.Equal(t, "29/04/2025", a.Date)
	}
}

func TestTemplateQueueDoesNotShareTemplate(t *testing.T) {
	q := TemplateQueue{}
	queue := q.WaitQueue([]string{"Maria"})
	queue[1].Name = "changed"

	again := q.WaitQueue(nil)
	assert.Equal(t, "José Silva", again[0].Name)
	assert.Equal(t, "Fernanda Lima", again[1].Name)
}

func TestStyleMappings(t *testing.T) {
	assert.Equal(t, "bg-purple-100 text-black", StatusClass(StatusWaiting))
	assert.Equal(t, "bg-purple-200 text-black", StatusClass(StatusTriage))
	assert.Equal(t, "bg-purple-300 text-black", StatusClass(StatusInService))
	assert.Equal(t, StatusClass(StatusWaiting), StatusClass("Finalizado"))

	assert.Equal(t, "bg-red-100 text-red-800", PriorityClass(PriorityUrgent))
	assert.Equal(t, "bg-orange-100 text-orange-800", PriorityClass(PriorityHigh))
	assert.Equal(t, "bg-blue-100 text-blue-800", PriorityClass(PriorityNormal))
	assert.Equal(t, "bg-gray-100 text-gray-800", PriorityClass(PriorityLow))
	assert.Equal(t, "bg-gray-100 text-gray-800", PriorityClass("Crítica"))
	assert.Equal(t, "bg-gray-100 text-gray-800", PriorityClass(""))
}
