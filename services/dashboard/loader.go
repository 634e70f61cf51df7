package dashboard

import (
	"context"

	"go.uber.org/zap"
)

// Data is one complete dashboard load
type Data struct {
	Stats        Stats
	Queue        []WaitQueueEntry
	Upcoming     []UpcomingAppointment
	PatientCount int
	// FetchFailed is set when the patient store could not be read and the
	// figures were built without patient names
	FetchFailed bool
}

// Loader fetches patients and assembles the dashboard data from the stats and queue sources
type Loader struct {
	patients PatientSource
	stats    StatsSource
	queue    QueueSource
	log      *zap.Logger
}

func NewLoader(patients PatientSource, stats StatsSource, queue QueueSource, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{patients: patients, stats: stats, queue: queue, log: log}
}

// Load reads the patient list once and builds stats, queue and upcoming rows from it.
// A store failure is logged and the data is still built, using no names.
// The only error returned is the context's, when it ends before the data is ready.
func (l *Loader) Load(ctx context.Context) (Data, error) {
	patients, err := l.patients.ListPatients(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Data{}, ctxErr
	}

	fetchFailed := err != nil
	if fetchFailed {
		l.log.Error("failed to load patients for dashboard", zap.Error(err))
		patients = nil
	}

	names := PatientNames(patients)
	return Data{
		Stats:        l.stats.Stats(len(names)),
		Queue:        l.queue.WaitQueue(names),
		Upcoming:     l.queue.UpcomingAppointments(names),
		PatientCount: len(names),
		FetchFailed:  fetchFailed,
	}, nil
}
