package usecase

import (
	"context"
	"sync"
	"time"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	applogger "StockLens/pkg/logger"
)

// Session is the per-user load state: the active token, the symbol it was
// issued for, the loading indicator and the last committed view.
//
// Only the load holding the current token may commit. Presenters run in
// commit order and outside the state lock: a slow presenter delays later
// deliveries but never readers of the state.
type Session struct {
	id string

	mu       sync.Mutex
	token    uint64
	symbol   models.Symbol
	inflight int
	last     *models.ViewModel
	commits  uint64

	presenters []domrepo.Presenter
	fixed      int

	// delivered is the sequence number of the last commit handed to
	// presenters, guarded by deliverMu.
	deliverMu sync.Mutex
	turn      *sync.Cond
	delivered uint64

	l *applogger.Logger
}

func NewSession(id string, l *applogger.Logger, presenters ...domrepo.Presenter) *Session {
	if l == nil {
		l = applogger.Nop()
	}
	s := &Session{
		id:         id,
		presenters: append([]domrepo.Presenter(nil), presenters...),
		fixed:      len(presenters),
		l:          l.With(applogger.String("session", id)),
	}
	s.turn = sync.NewCond(&s.deliverMu)
	return s
}

func (s *Session) ID() string { return s.id }

// Loading reports whether any load for this session is still in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Symbol returns the symbol of the most recently started load.
func (s *Session) Symbol() models.Symbol {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symbol
}

// Last returns the last committed view, or nil.
func (s *Session) Last() *models.ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Subscribe adds a presenter and returns a function that removes it.
func (s *Session) Subscribe(p domrepo.Presenter) (unsubscribe func()) {
	s.mu.Lock()
	s.presenters = append(s.presenters, p)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, cur := range s.presenters {
			if cur == p {
				s.presenters = append(s.presenters[:i:i], s.presenters[i+1:]...)
				return
			}
		}
	}
}

// idle reports whether nothing is loading and nobody is subscribed.
func (s *Session) idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight == 0 && len(s.presenters) <= s.fixed
}

// begin advances the token, which supersedes every earlier load.
func (s *Session) begin(symbol models.Symbol) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	s.symbol = symbol
	s.inflight++
	return s.token
}

func (s *Session) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
}

func (s *Session) current(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token == token
}

// commit stores vm if token is still current and hands it to presenters.
func (s *Session) commit(ctx context.Context, token uint64, vm *models.ViewModel) bool {
	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		return false
	}
	s.last = vm
	s.commits++
	seq := s.commits
	presenters := append([]domrepo.Presenter(nil), s.presenters...)
	s.mu.Unlock()

	s.deliverMu.Lock()
	for s.delivered+1 != seq {
		s.turn.Wait()
	}
	s.deliverMu.Unlock()
	defer func() {
		s.deliverMu.Lock()
		s.delivered = seq
		s.turn.Broadcast()
		s.deliverMu.Unlock()
	}()

	for _, p := range presenters {
		if err := p.Present(ctx, vm); err != nil {
			s.l.Warn("presenter failed",
				applogger.String("symbol", vm.Symbol.String()),
				applogger.Error(err),
			)
		}
	}
	return true
}

// Sessions hands out one Session per client-supplied id. Sessions that stay
// idle for longer than the idle TTL are dropped on a later Get.
type Sessions struct {
	mu        sync.Mutex
	sessions  map[string]*entry
	shared    []domrepo.Presenter
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	l         *applogger.Logger
}

type entry struct {
	s    *Session
	used time.Time
}

// NewSessions attaches shared presenters to every session it creates. A
// non-positive idleTTL keeps sessions forever.
func NewSessions(l *applogger.Logger, idleTTL time.Duration, shared ...domrepo.Presenter) *Sessions {
	if l == nil {
		l = applogger.Nop()
	}
	return &Sessions{
		sessions: make(map[string]*entry),
		shared:   shared,
		idleTTL:  idleTTL,
		now:      time.Now,
		l:        l,
	}
}

func (ss *Sessions) Get(id string) *Session {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	now := ss.now()
	ss.sweep(now)
	if e, ok := ss.sessions[id]; ok {
		e.used = now
		return e.s
	}
	s := NewSession(id, ss.l, ss.shared...)
	ss.sessions[id] = &entry{s: s, used: now}
	return s
}

// Lookup returns an existing session without creating one.
func (ss *Sessions) Lookup(id string) (*Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	e, ok := ss.sessions[id]
	if !ok {
		return nil, false
	}
	e.used = ss.now()
	return e.s, true
}

// Len returns the number of live sessions.
func (ss *Sessions) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.sessions)
}

// sweep runs at most once per half TTL. Callers hold ss.mu.
func (ss *Sessions) sweep(now time.Time) {
	if ss.idleTTL <= 0 || now.Sub(ss.lastSweep) < ss.idleTTL/2 {
		return
	}
	ss.lastSweep = now
	for id, e := range ss.sessions {
		if now.Sub(e.used) >= ss.idleTTL && e.s.idle() {
			delete(ss.sessions, id)
			ss.l.Debug("session evicted", applogger.String("session", id))
		}
	}
}
