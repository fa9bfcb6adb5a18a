package rating

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrBusy is returned when a mutation is attempted while another one for the
// same vote is still in flight.
var ErrBusy = errors.New("rating: mutation already in flight")

// Remote is the store that acknowledges vote changes.
type Remote interface {
	Submit(ctx context.Context, contentID string, stars int) error
	Retract(ctx context.Context, contentID string) error
}

// Session owns the aggregate of one piece of content for one user. At most one
// mutation is in flight at a time; the local aggregate only advances after the
// remote acknowledges.
type Session struct {
	contentID string
	remote    Remote
	busy      atomic.Bool

	mu  sync.RWMutex
	agg Aggregate
	err error
}

// NewSession creates a Session starting from a server snapshot.
func NewSession(contentID string, remote Remote, snapshot Aggregate) *Session {
	return &Session{
		contentID: contentID,
		remote:    remote,
		agg:       FromSnapshot(snapshot.Histogram, snapshot.UserVote),
	}
}

// Aggregate returns the current aggregate.
func (s *Session) Aggregate() Aggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agg
}

// Err returns the error of the last failed mutation, cleared on the next success.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Busy reports whether a mutation is in flight.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Submit records the user's vote. Out-of-range stars are ignored without
// contacting the remote.
func (s *Session) Submit(ctx context.Context, stars int) error {
	if !Valid(stars) {
		return nil
	}
	return s.mutate(ctx, func(a Aggregate) (Aggregate, bool) { return a.Submit(stars) },
		func() error { return s.remote.Submit(ctx, s.contentID, stars) })
}

// Retract withdraws the user's vote. It is a no-op when there is no vote.
func (s *Session) Retract(ctx context.Context) error {
	if !s.Aggregate().HasVote() {
		return nil
	}
	return s.mutate(ctx, Aggregate.Retract,
		func() error { return s.remote.Retract(ctx, s.contentID) })
}

func (s *Session) mutate(ctx context.Context, apply func(Aggregate) (Aggregate, bool), call func() error) error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)

	if err := ctx.Err(); err != nil {
		s.setErr(err)
		return err
	}
	if err := call(); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	if next, ok := apply(s.agg); ok {
		s.agg = next
	}
	s.err = nil
	s.mu.Unlock()
	return nil
}

func (s *Session) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Guard tracks in-flight mutations by key so concurrent requests for the same
// vote can be rejected instead of racing.
type Guard struct {
	inflight sync.Map
}

// Acquire marks key busy. It returns a release func, or ErrBusy when the key
// already has a mutation in flight.
func (g *Guard) Acquire(key string) (release func(), err error) {
	if _, loaded := g.inflight.LoadOrStore(key, struct{}{}); loaded {
		return nil, ErrBusy
	}
	return func() { g.inflight.Delete(key) }, nil
}
