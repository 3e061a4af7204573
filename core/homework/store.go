// Package homework keeps the signed in student's homework in step with the homework table.
package homework

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/collection"
	"github.com/trezcool/phoebuz/core/session"
)

var ErrNotFound = errors.New("homework not found")

// Repository is the homework table. Every call is scoped to userID;
// rows of other users are never matched.
type Repository interface {
	QueryHomework(ctx context.Context, userID string, ord core.DBOrdering) ([]Homework, error)
	// CreateHomework inserts hw and returns the stored row with its new ID.
	CreateHomework(ctx context.Context, userID string, hw Homework) (Homework, error)
	// UpdateHomework returns ErrNotFound when no row matched (id, userID).
	UpdateHomework(ctx context.Context, id, userID string, uh UpdateHomework) error
	// DeleteHomework returns ErrNotFound when no row matched (id, userID).
	DeleteHomework(ctx context.Context, id, userID string) error
}

type Store struct {
	repo   Repository
	mirror *collection.Mirror[Homework]
}

// NewStore returns a Store following sess: loaded on sign in, emptied on sign out.
func NewStore(repo Repository, sess *session.Session, logger core.Logger) *Store {
	query := func(ctx context.Context, userID string) ([]Homework, error) {
		return repo.QueryHomework(ctx, userID, Ordering)
	}
	key := func(hw Homework) string { return hw.ID }
	return &Store{
		repo:   repo,
		mirror: collection.NewMirror("homework.Store", sess, logger, key, query, ErrNotFound),
	}
}

// Items returns the homework in due date order (insertion order for added items).
func (s *Store) Items() []Homework { return s.mirror.Items() }

func (s *Store) Get(id string) (Homework, error) {
	id = core.NormalizeID(id)
	if hw, ok := s.mirror.Find(id); ok {
		return hw, nil
	}
	return Homework{}, ErrNotFound
}

func (s *Store) Load(ctx context.Context) error { return s.mirror.Load(ctx) }

func (s *Store) Loaded() bool { return s.mirror.Loaded() }

// Add stores a validated NewHomework and returns it with its ID.
func (s *Store) Add(ctx context.Context, nh NewHomework) (Homework, error) {
	return s.mirror.Add(ctx, func(ctx context.Context, userID string) (Homework, error) {
		return s.repo.CreateHomework(ctx, userID, nh.Homework())
	})
}

// Update applies a validated UpdateHomework and returns the updated homework.
func (s *Store) Update(ctx context.Context, id string, uh UpdateHomework) (Homework, error) {
	id = core.NormalizeID(id)
	if uh.IsEmpty() {
		return s.Get(id)
	}
	return s.mirror.Update(ctx, id,
		func(ctx context.Context, userID string) error {
			return s.repo.UpdateHomework(ctx, id, userID, uh)
		},
		uh.Apply,
	)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	id = core.NormalizeID(id)
	return s.mirror.Delete(ctx, id, func(ctx context.Context, userID string) error {
		return s.repo.DeleteHomework(ctx, id, userID)
	})
}
