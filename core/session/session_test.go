package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_lifecycle(t *testing.T) {
	s := New()
	var changes []Change
	s.OnIdentityChange(func(_ context.Context, c Change) { changes = append(changes, c) })

	_, ok := s.Identity()
	assert.False(t, ok)

	alice := Identity{ID: "alice", Email: "alice@example.com"}
	s.SetIdentity(context.Background(), alice)
	id, gen, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, alice, id)
	assert.Equal(t, uint64(1), gen)

	// same identity again: no change
	s.SetIdentity(context.Background(), alice)
	assert.Len(t, changes, 1)

	bob := Identity{ID: "bob"}
	s.SetIdentity(context.Background(), bob)
	assert.False(t, s.IsCurrent(gen))

	s.SignOut(context.Background())
	s.SignOut(context.Background())
	_, ok = s.Identity()
	assert.False(t, ok)

	assert.Equal(t, []Change{
		{Identity: alice, Present: true, Generation: 1},
		{Identity: bob, Present: true, Generation: 2},
		{Identity: bob, Present: false, Generation: 3},
	}, changes)
}

func TestSession_hookMayReadSession(t *testing.T) {
	s := New()
	var seen Identity
	s.OnIdentityChange(func(_ context.Context, c Change) {
		// hooks run without the session lock held
		seen, _ = s.Identity()
	})
	s.SetIdentity(context.Background(), Identity{ID: "carol"})
	assert.Equal(t, "carol", seen.ID)
}

func TestSession_Guard(t *testing.T) {
	s := New()
	s.SetIdentity(context.Background(), Identity{ID: "alice"})
	_, gen, _ := s.Current()
	guard := s.Guard(gen)

	assert.NoError(t, guard())
	s.SignOut(context.Background())
	assert.Equal(t, ErrStale, guard())
}

func TestSession_concurrent(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetIdentity(context.Background(), Identity{ID: "alice"})
		}()
		go func() {
			defer wg.Done()
			s.SignOut(context.Background())
		}()
	}
	wg.Wait()

	_, gen, ok := s.Current()
	if ok {
		assert.Equal(t, uint64(1), gen%2)
	} else {
		assert.Equal(t, uint64(0), gen%2)
	}
}
