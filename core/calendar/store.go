// Package calendar keeps the signed in student's events in step with the calendar_events table.
package calendar

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/collection"
	"github.com/trezcool/phoebuz/core/session"
)

var ErrNotFound = errors.New("event not found")

// Repository is the calendar_events table. Every call is scoped to userID.
type Repository interface {
	QueryEvents(ctx context.Context, userID string, ord core.DBOrdering) ([]Event, error)
	CreateEvent(ctx context.Context, userID string, e Event) (Event, error)
	// UpdateEvent returns ErrNotFound when no row matched (id, userID).
	UpdateEvent(ctx context.Context, id, userID string, ue UpdateEvent) error
	// DeleteEvent returns ErrNotFound when no row matched (id, userID).
	DeleteEvent(ctx context.Context, id, userID string) error
}

type Store struct {
	repo   Repository
	mirror *collection.Mirror[Event]
}

func NewStore(repo Repository, sess *session.Session, logger core.Logger) *Store {
	query := func(ctx context.Context, userID string) ([]Event, error) {
		return repo.QueryEvents(ctx, userID, Ordering)
	}
	key := func(e Event) string { return e.ID }
	return &Store{
		repo:   repo,
		mirror: collection.NewMirror("calendar.Store", sess, logger, key, query, ErrNotFound),
	}
}

func (s *Store) Items() []Event { return s.mirror.Items() }

func (s *Store) Get(id string) (Event, error) {
	id = core.NormalizeID(id)
	if e, ok := s.mirror.Find(id); ok {
		return e, nil
	}
	return Event{}, ErrNotFound
}

func (s *Store) Load(ctx context.Context) error { return s.mirror.Load(ctx) }

func (s *Store) Loaded() bool { return s.mirror.Loaded() }

func (s *Store) Add(ctx context.Context, ne NewEvent) (Event, error) {
	return s.mirror.Add(ctx, func(ctx context.Context, userID string) (Event, error) {
		return s.repo.CreateEvent(ctx, userID, ne.Event())
	})
}

func (s *Store) Update(ctx context.Context, id string, ue UpdateEvent) (Event, error) {
	id = core.NormalizeID(id)
	if ue.IsEmpty() {
		return s.Get(id)
	}
	if ue.PreparationChecklist != nil {
		cleaned := CleanChecklist(*ue.PreparationChecklist)
		ue.PreparationChecklist = &cleaned
	}
	return s.mirror.Update(ctx, id,
		func(ctx context.Context, userID string) error {
			return s.repo.UpdateEvent(ctx, id, userID, ue)
		},
		ue.Apply,
	)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	id = core.NormalizeID(id)
	return s.mirror.Delete(ctx, id, func(ctx context.Context, userID string) error {
		return s.repo.DeleteEvent(ctx, id, userID)
	})
}
