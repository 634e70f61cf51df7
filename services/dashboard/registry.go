package dashboard

import (
	"sync"
	"time"

	"hospital_app_go/services"

	"go.uber.org/zap"
)

// DefaultViewTTL is how long an unused view is kept before Sweep closes it
const DefaultViewTTL = 30 * time.Minute

// Factory builds the view for a session
type Factory func(session *services.SessionContext) *View

// Registry keeps one View per login session
type Registry struct {
	mu      sync.Mutex
	views   map[string]*View
	factory Factory
	ttl     time.Duration
	now     func() time.Time
	log     *zap.Logger
}

// NewRegistry returns a registry that builds views with factory. A non-positive
// ttl falls back to DefaultViewTTL.
func NewRegistry(factory Factory, ttl time.Duration, log *zap.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		views:   make(map[string]*View),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
		log:     log,
	}
}

// Get returns the session's view, creating and mounting it on first access
func (r *Registry) Get(session *services.SessionContext) *View {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if v, ok := r.views[session.SessionID]; ok && !v.Closed() {
		v.touch(now)
		return v
	}

	return r.mountLocked(session, now)
}

// Remount replaces the session's view with a freshly mounted one, so the data is
// loaded again. The previous view is closed and its pending work discarded.
func (r *Registry) Remount(session *services.SessionContext) *View {
	r.mu.Lock()
	old := r.views[session.SessionID]
	v := r.mountLocked(session, r.now())
	r.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return v
}

func (r *Registry) mountLocked(session *services.SessionContext, now time.Time) *View {
	v := r.factory(session)
	v.touch(now)
	r.views[session.SessionID] = v
	v.Mount()
	r.log.Debug("dashboard view mounted", zap.String("session_id", session.SessionID), zap.String("user_id", session.UserID))
	return v
}

// Lookup returns the session's view without creating one
func (r *Registry) Lookup(sessionID string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[sessionID]
	return v, ok
}

// Dismiss closes and forgets the session's view. It reports whether a view existed.
func (r *Registry) Dismiss(sessionID string) bool {
	r.mu.Lock()
	v, ok := r.views[sessionID]
	delete(r.views, sessionID)
	r.mu.Unlock()

	if ok {
		v.Close()
	}
	return ok
}

// Sweep closes views not used within the TTL and returns how many were closed
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var stale []*View
	for id, v := range r.views {
		if v.idleSince().Before(cutoff) || v.Closed() {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range stale {
		v.Close()
	}
	if len(stale) > 0 {
		r.log.Info("swept idle dashboard views", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// Len reports the number of live views
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// CloseAll closes every view, used on shutdown
func (r *Registry) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*View)
	r.mu.Unlock()

	for _, v := range views {
		v.Close()
	}
}
