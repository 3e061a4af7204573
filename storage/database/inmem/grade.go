package inmemdb

import (
	"context"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/grade"
)

type gradeRepository struct {
	db *table[grade.Grade]
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

var gradeColumns = map[string]lessFunc[grade.Grade]{
	"date_graded": func(a, b grade.Grade) bool { return a.DateGraded.Before(b.DateGraded) },
}

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grades}
}

func (repo *gradeRepository) QueryGrades(_ context.Context, userID string, ord core.DBOrdering) ([]grade.Grade, error) {
	less, err := ordering(ord, gradeColumns)
	if err != nil {
		return nil, err
	}

	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.query(userID, less), nil
}

func (repo *gradeRepository) CreateGrade(_ context.Context, userID string, g grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	g.ID = ""
	id := repo.db.insert(userID, g)
	r, _ := repo.db.get(id, userID)
	r.item.ID = id
	return r.item, nil
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, id, userID string, ug grade.UpdateGrade) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	r, ok := repo.db.get(id, userID)
	if !ok {
		return grade.ErrNotFound
	}
	ug.Apply(&r.item)
	return nil
}

func (repo *gradeRepository) DeleteGrade(_ context.Context, id, userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if !repo.db.remove(id, userID) {
		return grade.ErrNotFound
	}
	return nil
}
