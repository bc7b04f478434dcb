package planner

import (
	"context"
	"sync"
	"time"

	"fitmeal/internal/calorie"
	"fitmeal/internal/domain"
)

// Session is one user's profile together with the most recent plan generated
// for it. Sessions live in process memory only.
type Session struct {
	ID          string
	Profile     domain.Profile
	Estimate    calorie.Estimate
	Locale      string
	Plan        *domain.DailyPlan
	Warnings    []domain.Warning
	LastError   string
	Generations int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Store keeps sessions in memory with an idle TTL and a size cap. Sessions
// with a generation in flight are never evicted or swept.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	inFlight map[string]int
	ttl      time.Duration
	max      int
	now      func() time.Time
}

func NewStore(ttl time.Duration, max int) *Store {
	if max <= 0 {
		max = 1000
	}
	return &Store{
		sessions: make(map[string]*Session),
		inFlight: make(map[string]int),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
	}
}

// Put inserts sess, evicting the least recently updated idle session when
// full. It returns domain.ErrCapacity when every session is busy.
func (s *Store) Put(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putLocked(sess)
}

// Claim inserts sess like Put and marks one generation in flight for it.
// The caller must call Release when the generation finishes.
func (s *Store) Claim(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.putLocked(sess); err != nil {
		return err
	}
	s.inFlight[sess.ID]++
	return nil
}

// Acquire marks one more generation in flight for an existing session.
func (s *Store) Acquire(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.expiredLocked(sess, s.now()) {
		return Session{}, domain.ErrNotFound
	}
	s.inFlight[id]++
	return *sess, nil
}

// Release ends a generation started by Claim or Acquire.
func (s *Store) Release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := s.inFlight[id]; n > 1 {
		s.inFlight[id] = n - 1
		return
	}
	delete(s.inFlight, id)
}

func (s *Store) putLocked(sess Session) error {
	if _, exists := s.sessions[sess.ID]; !exists && len(s.sessions) >= s.max {
		if !s.evictOldestLocked() {
			return domain.ErrCapacity
		}
	}
	cp := sess
	s.sessions[sess.ID] = &cp
	return nil
}

// Get returns a copy of the session, or ErrNotFound when it is missing or expired.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.expiredLocked(sess, s.now()) {
		return Session{}, domain.ErrNotFound
	}
	return *sess, nil
}

// Update applies fn to the stored session under the lock and returns the result.
func (s *Store) Update(id string, fn func(*Session)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.expiredLocked(sess, s.now()) {
		return Session{}, domain.ErrNotFound
	}
	fn(sess)
	sess.UpdatedAt = s.now()
	return *sess, nil
}

// Delete removes the session; it reports whether one was present.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.inFlight[id] == 0 && s.expiredLocked(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) expiredLocked(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.UpdatedAt) > s.ttl
}

func (s *Store) evictOldestLocked() bool {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		if s.inFlight[id] > 0 {
			continue
		}
		if oldestID == "" || sess.UpdatedAt.Before(oldest) {
			oldestID, oldest = id, sess.UpdatedAt
		}
	}
	if oldestID == "" {
		return false
	}
	delete(s.sessions, oldestID)
	return true
}
