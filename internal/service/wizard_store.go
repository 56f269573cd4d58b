package service

import (
	"sync"
	"time"
)

// ReservationSession is the reservation state owned by one login session.
type ReservationSession struct {
	Wizard *ReservationWizard
	Loader *AvailabilityLoader

	lastUsed time.Time
}

func (rs *ReservationSession) close() {
	rs.Wizard.Close()
	rs.Loader.Close()
}

// WizardStore keeps one ReservationSession per session id.
type WizardStore struct {
	newSession func() *ReservationSession
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*ReservationSession
}

func NewWizardStore(factory func() *ReservationSession) *WizardStore {
	return &WizardStore{
		newSession: factory,
		now:        time.Now,
		sessions:   make(map[string]*ReservationSession),
	}
}

// Get returns the session's state, creating it on first use.
func (s *WizardStore) Get(sessionID string) *ReservationSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs, ok := s.sessions[sessionID]
	if !ok {
		rs = s.newSession()
		s.sessions[sessionID] = rs
	}
	rs.lastUsed = s.now()
	return rs
}

// Drop closes and forgets the session's state.
func (s *WizardStore) Drop(sessionID string) {
	s.mu.Lock()
	rs, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if ok {
		rs.close()
	}
}

// Sweep drops sessions idle for longer than maxIdle and returns how many.
func (s *WizardStore) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)
	var stale []*ReservationSession

	s.mu.Lock()
	for id, rs := range s.sessions {
		if rs.lastUsed.Before(cutoff) {
			stale = append(stale, rs)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, rs := range stale {
		rs.close()
	}
	return len(stale)
}

func (s *WizardStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
