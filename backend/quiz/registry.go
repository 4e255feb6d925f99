package quiz

import (
	"context"
	"sync"
	"time"

	"oabplanner/backend/models"
)

// ExpiryFunc receives the report of a session ended by its countdown.
type ExpiryFunc func(userID string, report Report)

type RegistryOption func(*Registry)

// WithTickInterval overrides the one-second countdown resolution.
func WithTickInterval(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.tick = d
		}
	}
}

// WithRetention sets how long a completed session stays readable before it
// is dropped.
func WithRetention(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.retention = d
		}
	}
}

const defaultRetention = 30 * time.Minute

type entry struct {
	session  *Session
	cancel   context.CancelFunc
	reported bool
	evict    *time.Timer
}

func (e *entry) stop() {
	e.cancel()
	if e.evict != nil {
		e.evict.Stop()
	}
}

// Registry keeps the active session of every user. A user has at most one
// session and at most one running countdown.
type Registry struct {
	mu        sync.Mutex
	entries   map[string]*entry
	tick      time.Duration
	retention time.Duration
	onExpiry  ExpiryFunc
}

func NewRegistry(onExpiry ExpiryFunc, opts ...RegistryOption) *Registry {
	r := &Registry{
		entries:   make(map[string]*entry),
		tick:      time.Second,
		retention: defaultRetention,
		onExpiry:  onExpiry,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start replaces any session the user already has, cancelling its timer.
func (r *Registry) Start(userID string, questions []models.Question, opts Options) (*Session, error) {
	s := NewSession()
	if err := s.Start(questions, opts); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	r.mu.Lock()
	if prev, ok := r.entries[userID]; ok {
		prev.stop()
	}
	r.entries[userID] = &entry{session: s, cancel: cancel}
	r.mu.Unlock()

	if opts.DurationSeconds > 0 {
		go r.countdown(ctx, userID, s)
	}
	return s, nil
}

func (r *Registry) Get(userID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[userID]
	if !ok {
		return nil, ErrNoSession
	}
	return e.session, nil
}

// Finish claims the report of a completed session. Only the first caller
// for a given session gets ok == true, so completion side effects run once
// even when a request and the countdown race. The session stays readable
// until the user starts another one, dismisses it, or the retention period
// runs out.
func (r *Registry) Finish(userID string, s *Session) (Report, bool) {
	if !s.Finished() {
		return Report{}, false
	}

	r.mu.Lock()
	e, ok := r.entries[userID]
	if !ok || e.session != s || e.reported {
		r.mu.Unlock()
		return Report{}, false
	}
	e.reported = true
	e.evict = time.AfterFunc(r.retention, func() { r.detach(userID, s) })
	r.mu.Unlock()

	e.cancel()
	return s.Report()
}

// Exit abandons the user's session, or dismisses it once it is over.
func (r *Registry) Exit(userID string) error {
	s, err := r.Get(userID)
	if err != nil {
		return err
	}
	if !s.Finished() {
		if err := s.Exit(); err != nil {
			return err
		}
	}
	r.detach(userID, s)
	return nil
}

// Active returns the number of sessions held.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) detach(userID string, s *Session) bool {
	r.mu.Lock()
	e, ok := r.entries[userID]
	if !ok || e.session != s {
		r.mu.Unlock()
		return false
	}
	delete(r.entries, userID)
	r.mu.Unlock()

	e.stop()
	return true
}

func (r *Registry) countdown(ctx context.Context, userID string, s *Session) {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.Tick() {
				if report, ok := r.Finish(userID, s); ok && r.onExpiry != nil {
					r.onExpiry(userID, report)
				}
				return
			}
			if s.Finished() {
				return
			}
		}
	}
}
