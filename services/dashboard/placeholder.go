package dashboard

import (
	"math/rand/v2"
)

// Fallback figures used when no patient is known. They double as the caps for
// the figures derived from the patient count.
const (
	defaultPatientsToday        = 24
	defaultAppointmentsToday    = 35
	defaultPatientsWaiting      = 6
	defaultUpcomingAppointments = 12
)

// upcoming appointment rows are labelled from this patient position onwards,
// after the names already used by the waiting queue
const upcomingNameOffset = 6

// PlaceholderStats fills the operational cards with random figures and derives
// the daily figures from the patient count.
type PlaceholderStats struct {
	intN func(n int) int
}

// NewPlaceholderStats uses r for the random figures, or the global source when r is nil
func NewPlaceholderStats(r *rand.Rand) *PlaceholderStats {
	if r == nil {
		return &PlaceholderStats{intN: rand.IntN}
	}
	return &PlaceholderStats{intN: r.IntN}
}

func (p *PlaceholderStats) Stats(patientCount int) Stats {
	return Stats{
		PatientsAdmitted:     p.between(5, 19),
		PatientsInTriage:     p.between(2, 9),
		MedicationsPending:   p.between(10, 29),
		BedsAvailable:        p.between(3, 14),
		PatientsToday:        derive(patientCount, patientCount*2, defaultPatientsToday),
		AppointmentsToday:    derive(patientCount, patientCount*3, defaultAppointmentsToday),
		PatientsWaiting:      derive(patientCount, patientCount/2, defaultPatientsWaiting),
		UpcomingAppointments: derive(patientCount, patientCount, defaultUpcomingAppointments),
	}
}

// between returns a value in [lo, hi]
func (p *PlaceholderStats) between(lo, hi int) int {
	return lo + p.intN(hi-lo+1)
}

func derive(patientCount, value, limit int) int {
	if patientCount <= 0 {
		return limit
	}
	return min(value, limit)
}

var waitQueueTemplate = [...]WaitQueueEntry{
	{ID: 1, Name: "José Silva", Time: "11:30", VisitType: "Consulta", Physician: "Dr. Carlos Santos", Status: StatusWaiting, Priority: PriorityNormal, ArrivalTime: "11:25"},
	{ID: 2, Name: "Fernanda Lima", Time: "11:45", VisitType: "Retorno", Physician: "Dra. Ana Oliveira", Status: StatusTriage, Priority: PriorityHigh},
	{ID: 3, Name: "Ricardo Souza", Time: "12:00", VisitType: "Exame", Physician: "Dr. Paulo Mendes", Status: StatusWaiting, Priority: PriorityNormal},
	{ID: 4, Name: "Camila Ferreira", Time: "12:15", VisitType: "Consulta", Physician: "Dra. Mariana Costa", Status: StatusWaiting, Priority: PriorityUrgent},
	{ID: 5, Name: "Eduardo Martins", Time: "12:30", VisitType: "Consulta", Physician: "Dr. Carlos Santos", Status: StatusWaiting, Priority: PriorityLow},
	{ID: 6, Name: "Luciana Alves", Time: "12:45", VisitType: "Retorno", Physician: "Dra. Ana Oliveira", Status: StatusWaiting, Priority: PriorityNormal},
}

var upcomingTemplate = [...]UpcomingAppointment{
	{ID: 1, Date: "29/04/2025", Time: "09:00", PatientName: "Antônio Gomes", VisitType: "Consulta", Physician: "Dr. Carlos Santos"},
	{ID: 2, Date: "29/04/2025", Time: "10:30", PatientName: "Juliana Mendes", VisitType: "Retorno", Physician: "Dra. Ana Oliveira"},
	{ID: 3, Date: "29/04/2025", Time: "14:15", PatientName: "Roberto Almeida", VisitType: "Exame", Physician: "Dr. Paulo Mendes"},
}

// TemplateQueue returns the fixed template rows, labelled with real patient
// names where one exists at the matching position.
type TemplateQueue struct{}

func (TemplateQueue) WaitQueue(names []string) []WaitQueueEntry {
	entries := make([]WaitQueueEntry, len(waitQueueTemplate))
	for i, e := range waitQueueTemplate {
		e.Name = nameAt(names, i, e.Name)
		entries[i] = e
	}
	return entries
}

func (TemplateQueue) UpcomingAppointments(names []string) []UpcomingAppointment {
	rows := make([]UpcomingAppointment, len(upcomingTemplate))
	for i, a := range upcomingTemplate {
		a.PatientName = nameAt(names, upcomingNameOffset+i, a.PatientName)
		rows[i] = a
	}
	return rows
}

func nameAt(names []string, i int, fallback string) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fallback
}
