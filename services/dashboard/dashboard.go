// Package dashboard builds the reception dashboard view-models and keeps the
// per-session view state (loading flag, queue, search field) behind a mutex.
//
// Statistics and queue rows come from the StatsSource and QueueSource
// capabilities. The defaults, PlaceholderStats and TemplateQueue, produce
// placeholder figures and fixed template rows blended with real patient names;
// a real aggregation can be swapped in without touching the rendering code.
package dashboard

import (
	"context"

	"hospital_app_go/models"
)

// Stats are the summary figures shown on the dashboard cards
type Stats struct {
	PatientsAdmitted     int
	PatientsInTriage     int
	MedicationsPending   int
	BedsAvailable        int
	PatientsToday        int
	AppointmentsToday    int
	PatientsWaiting      int
	UpcomingAppointments int
}

// QueueStatus is the progress of a patient in the waiting queue
type QueueStatus string

const (
	StatusWaiting   QueueStatus = "Aguardando"
	StatusTriage    QueueStatus = "Triagem"
	StatusInService QueueStatus = "Em Atendimento"
)

// Priority is the triage priority of a queued patient
type Priority string

const (
	PriorityUrgent Priority = "Urgente"
	PriorityHigh   Priority = "Alta"
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Baixa"
)

// WaitQueueEntry is one row of the waiting queue table
type WaitQueueEntry struct {
	ID          int
	Name        string
	Time        string
	VisitType   string
	Physician   string
	Status      QueueStatus
	Priority    Priority
	ArrivalTime string // empty when unknown
}

// UpcomingAppointment is one row of the upcoming appointments table
type UpcomingAppointment struct {
	ID          int
	Date        string
	Time        string
	PatientName string
	VisitType   string
	Physician   string
}

// PatientSource is the patient store the dashboard reads from
type PatientSource interface {
	ListPatients(ctx context.Context) ([]models.Patient, error)
}

// StatsSource produces the summary figures for a given number of known patients
type StatsSource interface {
	Stats(patientCount int) Stats
}

// QueueSource produces the queue and upcoming appointment rows. names holds the
// known patient names in store order; sources may use them to label rows.
type QueueSource interface {
	WaitQueue(names []string) []WaitQueueEntry
	UpcomingAppointments(names []string) []UpcomingAppointment
}

// PatientNames returns the names of patients, keeping their positions
func PatientNames(patients []models.Patient) []string {
	names := make([]string, len(patients))
	for i, p := range patients {
		names[i] = p.Name
	}
	return names
}
