package dashboard

import (
	"context"
	"strings"
	"sync"
	"time"

	"hospital_app_go/services"
)

// DefaultRefreshDelay is how long a manual queue refresh stays in the loading state
const DefaultRefreshDelay = time.Second

// Snapshot is a copy of the view state taken for rendering
type Snapshot struct {
	UserName   string
	Loading    bool
	Stats      Stats
	Queue      []WaitQueueEntry
	Upcoming   []UpcomingAppointment
	SearchTerm string
}

// View holds the dashboard state of one login session.
// All methods are safe for concurrent use.
type View struct {
	session      *services.SessionContext
	loader       *Loader
	refreshDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	mounted      bool
	closed       bool
	loadPending  bool
	refreshTimer *time.Timer
	lastSeen     time.Time

	stats      Stats
	queue      []WaitQueueEntry
	upcoming   []UpcomingAppointment
	searchTerm string
}

// ViewOption configures a View
type ViewOption func(*View)

// WithRefreshDelay overrides DefaultRefreshDelay. Non-positive values are ignored.
func WithRefreshDelay(d time.Duration) ViewOption {
	return func(v *View) {
		if d > 0 {
			v.refreshDelay = d
		}
	}
}

// NewView creates an unmounted view for the given session. session may be nil,
// in which case no greeting is rendered.
func NewView(session *services.SessionContext, loader *Loader, opts ...ViewOption) *View {
	ctx, cancel := context.WithCancel(context.Background())
	v := &View{
		session:      session,
		loader:       loader,
		refreshDelay: DefaultRefreshDelay,
		ctx:          ctx,
		cancel:       cancel,
		lastSeen:     time.Now(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount enters the loading state and loads the dashboard data in the background.
// Only the first call has any effect.
func (v *View) Mount() {
	v.mu.Lock()
	if v.mounted || v.closed {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	v.loadPending = true
	v.mu.Unlock()

	go v.load()
}

func (v *View) load() {
	data, err := v.loader.Load(v.ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || err != nil {
		return
	}
	v.stats = data.Stats
	v.queue = data.Queue
	v.upcoming = data.Upcoming
	v.loadPending = false
}

// Refresh shows the loading state for the refresh delay. The queue is not reloaded.
// A second call restarts the delay.
func (v *View) Refresh() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if v.refreshTimer != nil {
		v.refreshTimer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(v.refreshDelay, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.closed || v.refreshTimer != timer {
			return
		}
		v.refreshTimer = nil
	})
	v.refreshTimer = timer
}

// Search records term as the search field value. A non-blank term is surfaced
// verbatim as the notice and the field is cleared; a blank term changes nothing else.
func (v *View) Search(term string) (notice string, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.searchTerm = term
	if strings.TrimSpace(term) == "" {
		return "", false
	}
	v.searchTerm = ""
	return term, true
}

// Close cancels the pending load and refresh. Completions arriving after Close
// never touch the state.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.cancel()
	if v.refreshTimer != nil {
		v.refreshTimer.Stop()
		v.refreshTimer = nil
	}
}

func (v *View) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := Snapshot{
		Loading:    v.loadPending || v.refreshTimer != nil,
		Stats:      v.stats,
		Queue:      append([]WaitQueueEntry(nil), v.queue...),
		Upcoming:   append([]UpcomingAppointment(nil), v.upcoming...),
		SearchTerm: v.searchTerm,
	}
	if v.session != nil {
		s.UserName = v.session.UserName
	}
	return s
}

func (v *View) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *View) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}
