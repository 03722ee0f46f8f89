// Package scheduler owns the refresh cadence for aggregated resources.
// Each subscription runs an immediate fetch, then background refreshes
// at an interval keyed by the slate's liveness. Backgrounding the app
// pauses every timer; foregrounding issues exactly one immediate
// refresh per subscription and restarts the cadence.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/XavierBriggs/vantage/pkg/contracts"
	"github.com/XavierBriggs/vantage/pkg/models"
	"github.com/google/uuid"
)

// Liveness keys the refresh interval table
type Liveness string

const (
	LivenessLive     Liveness = "live"
	LivenessUpcoming Liveness = "upcoming"
	LivenessFinal    Liveness = "final"
)

// SlateLiveness classifies a day's games as a whole: any live game makes
// the slate live, an exhausted slate is final, everything else is
// upcoming. An upcoming slate with a tip-off inside the ramp-up window
// polls at the live cadence so lines and lineups are fresh at game start.
func SlateLiveness(games []models.Game, rampup time.Duration, now time.Time) Liveness {
	if len(games) == 0 {
		return LivenessUpcoming
	}

	final := 0
	rampingUp := false
	for i := range games {
		switch games[i].Status {
		case models.StatusLive:
			return LivenessLive
		case models.StatusFinal, models.StatusPostponed:
			final++
		default:
			if rampup > 0 {
				until := games[i].CommenceTime.Sub(now)
				if until >= 0 && until <= rampup {
					rampingUp = true
				}
			}
		}
	}

	if final == len(games) {
		return LivenessFinal
	}
	if rampingUp {
		return LivenessLive
	}
	return LivenessUpcoming
}

// Fetcher produces one fresh value for a subscription
type Fetcher[T any] func(ctx context.Context) (T, error)

// Options configures one subscription's cadence
type Options struct {
	// Name tags log lines, usually "<resource>/<sport>"
	Name string

	Polling contracts.PollingConfig

	// Liveness is re-evaluated after every fetch to pick the next
	// interval; nil pins the upcoming cadence
	Liveness func() Liveness
}

func (o Options) interval() time.Duration {
	liveness := LivenessUpcoming
	if o.Liveness != nil {
		liveness = o.Liveness()
	}

	switch liveness {
	case LivenessLive:
		return o.Polling.LiveInterval
	case LivenessFinal:
		return o.Polling.FinalInterval
	default:
		return o.Polling.UpcomingInterval
	}
}

// handle is the type-erased view the manager keeps of a subscription
type handle interface {
	pause()
	resume()
	dispose()
}

// Manager tracks every live subscription and fans lifecycle transitions
// (background, foreground, shutdown) out to them
type Manager struct {
	mu     sync.Mutex
	subs   map[string]handle
	paused bool
}

func NewManager() *Manager {
	return &Manager{subs: make(map[string]handle)}
}

// Background cancels every pending timer. In-flight fetches finish but
// their results schedule nothing further.
func (m *Manager) Background() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paused = true
	for _, sub := range m.subs {
		sub.pause()
	}
	log.Printf("scheduler: backgrounded %d subscriptions", len(m.subs))
}

// Foreground issues one immediate refresh per subscription and restarts
// the timers
func (m *Manager) Foreground() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paused = false
	for _, sub := range m.subs {
		sub.resume()
	}
	log.Printf("scheduler: foregrounded %d subscriptions", len(m.subs))
}

// Close disposes every subscription
func (m *Manager) Close() {
	m.mu.Lock()
	subs := make([]handle, 0, len(m.subs))
	for _, sub := range m.subs {
		subs = append(subs, sub)
	}
	m.mu.Unlock()

	for _, sub := range subs {
		sub.dispose()
	}
}

func (m *Manager) register(id string, sub handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.subs[id] = sub
	return m.paused
}

func (m *Manager) unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subs, id)
}

// Subscription is one cancellable refresh loop. State advances
// idle → fetching → scheduled → … → disposed; a disposed subscription
// never mutates state or fires its callback again.
type Subscription[T any] struct {
	id       string
	manager  *Manager
	fetch    Fetcher[T]
	onUpdate func(T)
	opts     Options

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	timer    *time.Timer
	paused   bool
	disposed bool
	last     T
	hasLast  bool

	// deliverMu is held for the duration of an onUpdate call so dispose
	// can wait out an in-flight delivery
	deliverMu sync.Mutex
}

// Subscribe runs the initial fetch on the calling goroutine — its error
// is the only one ever surfaced — then registers the subscription and
// starts the background cadence. onUpdate fires for the initial value
// and for every later successful refresh; background failures are
// swallowed and the previous value stands.
func Subscribe[T any](ctx context.Context, m *Manager, opts Options, fetch Fetcher[T], onUpdate func(T)) (*Subscription[T], error) {
	subCtx, cancel := context.WithCancel(ctx)

	s := &Subscription[T]{
		id:       uuid.New().String(),
		manager:  m,
		fetch:    fetch,
		onUpdate: onUpdate,
		opts:     opts,
		ctx:      subCtx,
		cancel:   cancel,
	}

	value, err := fetch(subCtx)
	if err == nil {
		s.mu.Lock()
		s.last = value
		s.hasLast = true
		s.mu.Unlock()

		if onUpdate != nil {
			onUpdate(value)
		}
	}

	paused := m.register(s.id, s)

	s.mu.Lock()
	s.paused = paused
	if !paused {
		s.scheduleLocked()
	}
	s.mu.Unlock()

	return s, err
}

// ID identifies the subscription
func (s *Subscription[T]) ID() string { return s.id }

// Last returns the most recent successful value
func (s *Subscription[T]) Last() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}

// Dispose cancels the subscription. Safe to call more than once; it
// blocks until any in-flight update callback returns, so once it
// returns no callback fires and no state changes. Must not be called
// from inside the update callback.
func (s *Subscription[T]) Dispose() {
	s.dispose()
}

func (s *Subscription[T]) dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.stopTimerLocked()
	s.mu.Unlock()

	s.cancel()

	// Wait out a delivery that was already past the disposed check
	s.deliverMu.Lock()
	s.deliverMu.Unlock()

	s.manager.unregister(s.id)
}

func (s *Subscription[T]) pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.paused = true
	s.stopTimerLocked()
}

func (s *Subscription[T]) resume() {
	s.mu.Lock()
	if s.disposed || !s.paused {
		s.mu.Unlock()
		return
	}
	s.paused = false
	s.mu.Unlock()

	// Exactly one forced refresh on foreground; it reschedules itself
	go s.refresh()
}

func (s *Subscription[T]) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Subscription[T]) scheduleLocked() {
	if s.disposed || s.paused {
		return
	}

	interval := s.opts.interval()
	if interval <= 0 {
		return
	}

	s.stopTimerLocked()
	s.timer = time.AfterFunc(interval, s.refresh)
}

// refresh performs one background cycle: fetch, deliver on success,
// swallow on failure, reschedule either way
func (s *Subscription[T]) refresh() {
	s.mu.Lock()
	if s.disposed || s.paused {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	value, err := s.fetch(s.ctx)

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}

	deliver := false
	if err == nil {
		s.last = value
		s.hasLast = true
		deliver = s.onUpdate != nil
	}
	s.scheduleLocked()
	s.mu.Unlock()

	if err != nil {
		log.Printf("[%s] background refresh failed, keeping last result: %v", s.opts.Name, err)
		return
	}
	if !deliver {
		return
	}

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	// Recheck under the delivery guard: a dispose that raced the unlock
	// above must suppress this callback.
	s.mu.Lock()
	disposed := s.disposed
	s.mu.Unlock()
	if !disposed {
		s.onUpdate(value)
	}
}
