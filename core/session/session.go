// Package session tracks the identity the study data belongs to.
//
// Every identity change bumps a generation counter. Work started under one generation
// must not be applied once the generation has moved on: stores capture it with Current
// and check it with Guard right before touching their collections.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrNoIdentity = errors.New("no signed in identity")
	ErrStale      = errors.New("identity changed while the request was in flight")
)

type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Change describes an identity transition. Present is false on sign out.
type Change struct {
	Identity   Identity
	Present    bool
	Generation uint64
}

type Hook func(ctx context.Context, c Change)

type Session struct {
	mu       sync.RWMutex
	identity Identity
	present  bool
	gen      uint64
	hooks    []Hook
}

func New() *Session {
	return &Session{}
}

// OnIdentityChange registers h to run after every identity change, in registration order.
func (s *Session) OnIdentityChange(h Hook) {
	s.mu.Lock()
	s.hooks = append(s.hooks, h)
	s.mu.Unlock()
}

// SetIdentity signs id in. Setting the identity already signed in does nothing.
func (s *Session) SetIdentity(ctx context.Context, id Identity) {
	s.mu.Lock()
	if s.present && s.identity.ID == id.ID {
		s.identity.Email = id.Email
		s.mu.Unlock()
		return
	}
	s.identity = id
	s.present = true
	s.gen++
	c := Change{Identity: id, Present: true, Generation: s.gen}
	hooks := s.hooks
	s.mu.Unlock()

	notify(ctx, hooks, c)
}

// SignOut revokes the current identity, if any.
func (s *Session) SignOut(ctx context.Context) {
	s.mu.Lock()
	if !s.present {
		s.mu.Unlock()
		return
	}
	prev := s.identity
	s.identity = Identity{}
	s.present = false
	s.gen++
	c := Change{Identity: prev, Present: false, Generation: s.gen}
	hooks := s.hooks
	s.mu.Unlock()

	notify(ctx, hooks, c)
}

func notify(ctx context.Context, hooks []Hook, c Change) {
	for _, h := range hooks {
		h(ctx, c)
	}
}

func (s *Session) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.present
}

// Current returns the identity together with the generation it belongs to.
func (s *Session) Current() (Identity, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.gen, s.present
}

func (s *Session) IsCurrent(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen == gen
}

// Guard returns a check failing with ErrStale once gen is no longer current.
func (s *Session) Guard(gen uint64) func() error {
	return func() error {
		if !s.IsCurrent(gen) {
			return ErrStale
		}
		return nil
	}
}
