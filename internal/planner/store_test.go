package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitmeal/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newClockedStore(ttl time.Duration, max int) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)}
	s := NewStore(ttl, max)
	s.now = clock.now
	return s, clock
}

func TestStoreExpiresIdleSessions(t *testing.T) {
	s, clock := newClockedStore(30*time.Minute, 10)
	s.Put(Session{ID: "a", UpdatedAt: clock.t})

	clock.t = clock.t.Add(20 * time.Minute)
	if _, err := s.Update("a", func(*Session) {}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	clock.t = clock.t.Add(20 * time.Minute)
	if _, err := s.Get("a"); err != nil {
		t.Fatalf("session should still be live after touch: %v", err)
	}

	clock.t = clock.t.Add(31 * time.Minute)
	if _, err := s.Get("a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound", err)
	}
	if removed := s.Sweep(); removed != 1 {
		t.Fatalf("Sweep removed %d, want 1", removed)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}

func TestStoreEvictsOldestWhenFull(t *testing.T) {
	s, clock := newClockedStore(time.Hour, 2)
	s.Put(Session{ID: "old", UpdatedAt: clock.t})
	s.Put(Session{ID: "mid", UpdatedAt: clock.t.Add(time.Minute)})
	s.Put(Session{ID: "new", UpdatedAt: clock.t.Add(2 * time.Minute)})

	if _, err := s.Get("old"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("oldest session should be evicted, got %v", err)
	}
	for _, id := range []string{"mid", "new"} {
		if _, err := s.Get(id); err != nil {
			t.Fatalf("Get(%q) returned error: %v", id, err)
		}
	}

	s.Put(Session{ID: "new", UpdatedAt: clock.t.Add(3 * time.Minute)})
	if s.Len() != 2 {
		t.Fatalf("replacing an existing session must not evict, Len = %d", s.Len())
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s, clock := newClockedStore(time.Hour, 2)
	s.Put(Session{ID: "a", LastError: "x", UpdatedAt: clock.t})
	got, _ := s.Get("a")
	got.LastError = "changed"
	again, _ := s.Get("a")
	if again.LastError != "x" {
		t.Fatalf("stored session mutated through copy: %q", again.LastError)
	}
}

func TestStoreRunStopsOnCancel(t *testing.T) {
	s := NewStore(time.Minute, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, 5*time.Millisecond) }()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestStoreNeverEvictsBusySessions(t *testing.T) {
	s, clock := newClockedStore(time.Hour, 2)
	if err := s.Claim(Session{ID: "busy", UpdatedAt: clock.t}); err != nil {
		t.Fatalf("Claim returned error: %v", err)
	}
	if err := s.Put(Session{ID: "idle", UpdatedAt: clock.t.Add(time.Minute)}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	// The busy session is older but must survive; the idle one goes.
	if err := s.Put(Session{ID: "next", UpdatedAt: clock.t.Add(2 * time.Minute)}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if _, err := s.Get("busy"); err != nil {
		t.Fatalf("busy session was evicted: %v", err)
	}
	if _, err := s.Get("idle"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("idle session should be evicted, got %v", err)
	}

	if _, err := s.Acquire("next"); err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if err := s.Put(Session{ID: "overflow", UpdatedAt: clock.t}); !errors.Is(err, domain.ErrCapacity) {
		t.Fatalf("Put with every session busy = %v, want ErrCapacity", err)
	}

	s.Release("busy")
	if err := s.Put(Session{ID: "overflow", UpdatedAt: clock.t}); err != nil {
		t.Fatalf("Put after Release returned error: %v", err)
	}
	if _, err := s.Get("busy"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("released session should be evictable, got %v", err)
	}
}

func TestStoreSweepSkipsBusySessions(t *testing.T) {
	s, clock := newClockedStore(time.Minute, 10)
	if err := s.Claim(Session{ID: "a", UpdatedAt: clock.t}); err != nil {
		t.Fatalf("Claim returned error: %v", err)
	}
	clock.t = clock.t.Add(5 * time.Minute)
	if removed := s.Sweep(); removed != 0 {
		t.Fatalf("Sweep removed %d busy sessions", removed)
	}
	s.Release("a")
	if removed := s.Sweep(); removed != 1 {
		t.Fatalf("Sweep removed %d, want 1", removed)
	}
}

func TestStoreAcquireMissing(t *testing.T) {
	s, _ := newClockedStore(time.Hour, 2)
	if _, err := s.Acquire("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Acquire error = %v, want ErrNotFound", err)
	}
	s.Release("nope")
}
