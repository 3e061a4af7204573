package inmemdb

import (
	"context"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/calendar"
)

type eventRepository struct {
	db *table[calendar.Event]
}

var _ calendar.Repository = (*eventRepository)(nil) // interface compliance check

var eventColumns = map[string]lessFunc[calendar.Event]{
	"date": func(a, b calendar.Event) bool { return a.Date.Before(b.Date) },
}

func NewEventRepository(db *DB) calendar.Repository {
	return &eventRepository{db: db.events}
}

// the checklist is the only reference field: never share it with callers
func cloneEvent(e calendar.Event) calendar.Event {
	e.PreparationChecklist = append(make([]string, 0, len(e.PreparationChecklist)), e.PreparationChecklist...)
	return e
}

func (repo *eventRepository) QueryEvents(_ context.Context, userID string, ord core.DBOrdering) ([]calendar.Event, error) {
	less, err := ordering(ord, eventColumns)
	if err != nil {
		return nil, err
	}

	repo.db.RLock()
	defer repo.db.RUnlock()

	events := repo.db.query(userID, less)
	for i := range events {
		events[i] = cloneEvent(events[i])
	}
	return events, nil
}

func (repo *eventRepository) CreateEvent(_ context.Context, userID string, e calendar.Event) (calendar.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	e = cloneEvent(e)
	e.ID = ""
	id := repo.db.insert(userID, e)
	r, _ := repo.db.get(id, userID)
	r.item.ID = id
	return cloneEvent(r.item), nil
}

func (repo *eventRepository) UpdateEvent(_ context.Context, id, userID string, ue calendar.UpdateEvent) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	r, ok := repo.db.get(id, userID)
	if !ok {
		return calendar.ErrNotFound
	}
	ue.Apply(&r.item)
	return nil
}

func (repo *eventRepository) DeleteEvent(_ context.Context, id, userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if !repo.db.remove(id, userID) {
		return calendar.ErrNotFound
	}
	return nil
}
