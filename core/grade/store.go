// Package grade keeps the signed in student's grades in step with the grades table.
package grade

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/collection"
	"github.com/trezcool/phoebuz/core/grading"
	"github.com/trezcool/phoebuz/core/session"
)

var ErrNotFound = errors.New("grade not found")

// Repository is the grades table. Every call is scoped to userID.
type Repository interface {
	QueryGrades(ctx context.Context, userID string, ord core.DBOrdering) ([]Grade, error)
	CreateGrade(ctx context.Context, userID string, g Grade) (Grade, error)
	// UpdateGrade returns ErrNotFound when no row matched (id, userID).
	UpdateGrade(ctx context.Context, id, userID string, ug UpdateGrade) error
	// DeleteGrade returns ErrNotFound when no row matched (id, userID).
	DeleteGrade(ctx context.Context, id, userID string) error
}

type Store struct {
	repo   Repository
	mirror *collection.Mirror[Grade]
}

func NewStore(repo Repository, sess *session.Session, logger core.Logger) *Store {
	query := func(ctx context.Context, userID string) ([]Grade, error) {
		return repo.QueryGrades(ctx, userID, Ordering)
	}
	key := func(g Grade) string { return g.ID }
	return &Store{
		repo:   repo,
		mirror: collection.NewMirror("grade.Store", sess, logger, key, query, ErrNotFound),
	}
}

// Items returns the grades, most recently graded first.
func (s *Store) Items() []Grade { return s.mirror.Items() }

func (s *Store) Get(id string) (Grade, error) {
	id = core.NormalizeID(id)
	if g, ok := s.mirror.Find(id); ok {
		return g, nil
	}
	return Grade{}, ErrNotFound
}

func (s *Store) Load(ctx context.Context) error { return s.mirror.Load(ctx) }

func (s *Store) Loaded() bool { return s.mirror.Loaded() }

// Add records a validated NewGrade, deriving its letter from the marks.
func (s *Store) Add(ctx context.Context, ng NewGrade) (Grade, error) {
	g, err := ng.Grade()
	if err != nil {
		return Grade{}, invalidMarks(err)
	}
	return s.mirror.Add(ctx, func(ctx context.Context, userID string) (Grade, error) {
		return s.repo.CreateGrade(ctx, userID, g)
	})
}

// Update applies a validated UpdateGrade. The letter is recomputed whenever the marks change.
func (s *Store) Update(ctx context.Context, id string, ug UpdateGrade) (Grade, error) {
	id = core.NormalizeID(id)
	if ug.IsEmpty() {
		return s.Get(id)
	}
	ug.Letter = nil
	update := func(ctx context.Context, userID string) error {
		return s.repo.UpdateGrade(ctx, id, userID, ug)
	}
	if !ug.changesMarks() {
		return s.mirror.Update(ctx, id, update, ug.Apply)
	}

	return s.mirror.UpdateCurrent(ctx, id, func(cur Grade) (func(context.Context, string) error, func(*Grade), error) {
		obtained, max := cur.Marks()
		if ug.MarksObtained != nil {
			obtained = *ug.MarksObtained
		}
		if ug.MaxMarks != nil {
			max = *ug.MaxMarks
		}
		letter, err := grading.LetterFor(obtained, max)
		if err != nil {
			return nil, nil, invalidMarks(err)
		}
		ug.Letter = &letter
		return update, ug.Apply, nil
	})
}

func (s *Store) Delete(ctx context.Context, id string) error {
	id = core.NormalizeID(id)
	return s.mirror.Delete(ctx, id, func(ctx context.Context, userID string) error {
		return s.repo.DeleteGrade(ctx, id, userID)
	})
}

// Average is the weighted average of every grade.
func (s *Store) Average() int {
	return grading.WeightedAverage(s.Items())
}

// SubjectAverages returns the average of each subject with at least one grade.
func (s *Store) SubjectAverages() []grading.SubjectResult {
	return grading.SubjectAverages(s.Items())
}

func invalidMarks(err error) error {
	return core.NewValidationError(err, core.FieldError{Field: "max_marks", Error: err.Error()})
}
