package inmemdb

import (
	"context"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/homework"
)

type homeworkRepository struct {
	db *table[homework.Homework]
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

var homeworkColumns = map[string]lessFunc[homework.Homework]{
	"due_date":      func(a, b homework.Homework) bool { return a.DueDate.Before(b.DueDate) },
	"assigned_date": func(a, b homework.Homework) bool { return a.AssignedDate.Before(b.AssignedDate) },
}

func NewHomeworkRepository(db *DB) homework.Repository {
	return &homeworkRepository{db: db.homework}
}

func (repo *homeworkRepository) QueryHomework(_ context.Context, userID string, ord core.DBOrdering) ([]homework.Homework, error) {
	less, err := ordering(ord, homeworkColumns)
	if err != nil {
		return nil, err
	}

	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.query(userID, less), nil
}

func (repo *homeworkRepository) CreateHomework(_ context.Context, userID string, hw homework.Homework) (homework.Homework, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	hw.ID = ""
	id := repo.db.insert(userID, hw)
	r, _ := repo.db.get(id, userID)
	r.item.ID = id
	return r.item, nil
}

func (repo *homeworkRepository) UpdateHomework(_ context.Context, id, userID string, uh homework.UpdateHomework) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	r, ok := repo.db.get(id, userID)
	if !ok {
		return homework.ErrNotFound
	}
	uh.Apply(&r.item)
	return nil
}

func (repo *homeworkRepository) DeleteHomework(_ context.Context, id, userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if !repo.db.remove(id, userID) {
		return homework.ErrNotFound
	}
	return nil
}
