package inmemdb

import (
	"context"

	"github.com/trezcool/phoebuz/core/timetable"
)

// timetableRepository has no transactions: it does not implement timetable.Replacer.
type timetableRepository struct {
	db *table[timetable.Slot]
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *DB) timetable.Repository {
	return &timetableRepository{db: db.timetable}
}

func (repo *timetableRepository) QuerySlots(_ context.Context, userID string) ([]timetable.Slot, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.query(userID, nil), nil
}

func (repo *timetableRepository) DeleteSlots(_ context.Context, userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.removeAll(userID)
	return nil
}

// InsertSlots inserts every slot or none; a taken (day, time) fails the whole batch
// like the unique index of the timetable table.
func (repo *timetableRepository) InsertSlots(_ context.Context, userID string, slots []timetable.Slot) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	existing := repo.db.query(userID, nil)
	if err := timetable.CheckUnique(append(existing, slots...)); err != nil {
		return err
	}
	for _, slot := range slots {
		repo.db.insert(userID, slot)
	}
	return nil
}
