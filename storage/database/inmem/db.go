// Package inmemdb is an in-memory row store with the same per-user scoping as the
// PostgreSQL one. It backs tests and local runs.
package inmemdb

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/calendar"
	"github.com/trezcool/phoebuz/core/grade"
	"github.com/trezcool/phoebuz/core/homework"
	"github.com/trezcool/phoebuz/core/study"
	"github.com/trezcool/phoebuz/core/timetable"
)

type (
	DB struct {
		homework  *table[homework.Homework]
		events    *table[calendar.Event]
		grades    *table[grade.Grade]
		timetable *table[timetable.Slot]
	}

	row[T any] struct {
		seq    int
		userID string
		item   T
	}

	table[T any] struct {
		sync.RWMutex
		rows map[string]*row[T] // {id: row}
		seq  int
	}

	// lessFunc reports whether a sorts before b in ascending order.
	lessFunc[T any] func(a, b T) bool
)

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*row[T])}
}

func Open() *DB {
	return &DB{
		homework:  newTable[homework.Homework](),
		events:    newTable[calendar.Event](),
		grades:    newTable[grade.Grade](),
		timetable: newTable[timetable.Slot](),
	}
}

// NewRepositories returns every table of db.
func NewRepositories(db *DB) study.Repositories {
	return study.Repositories{
		Homework:  NewHomeworkRepository(db),
		Calendar:  NewEventRepository(db),
		Grades:    NewGradeRepository(db),
		Timetable: NewTimetableRepository(db),
	}
}

// query returns the rows of userID in insertion order, then sorted by less if given.
// The caller must hold the lock.
func (t *table[T]) query(userID string, less lessFunc[T]) []T {
	rows := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if r.userID == userID {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	items := make([]T, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.item)
	}
	if less != nil {
		sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	}
	return items
}

// insert stores item for userID under a new id. The caller must hold the lock.
func (t *table[T]) insert(userID string, item T) string {
	t.seq++
	id := uuid.NewString()
	t.rows[id] = &row[T]{seq: t.seq, userID: userID, item: item}
	return id
}

// get returns the row (id, userID). The caller must hold the lock.
func (t *table[T]) get(id, userID string) (*row[T], bool) {
	r, ok := t.rows[id]
	if !ok || r.userID != userID {
		return nil, false
	}
	return r, true
}

// remove deletes the row (id, userID) and reports whether it existed. The caller must hold the lock.
func (t *table[T]) remove(id, userID string) bool {
	if _, ok := t.get(id, userID); !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// removeAll deletes every row of userID. The caller must hold the lock.
func (t *table[T]) removeAll(userID string) {
	for id, r := range t.rows {
		if r.userID == userID {
			delete(t.rows, id)
		}
	}
}

// ordering resolves ord against the sortable columns of a table.
func ordering[T any](ord core.DBOrdering, columns map[string]lessFunc[T]) (lessFunc[T], error) {
	less, ok := columns[ord.Field]
	if !ok {
		return nil, fmt.Errorf("unsupported ordering field %q", ord.Field)
	}
	if ord.Ascending {
		return less, nil
	}
	return func(a, b T) bool { return less(b, a) }, nil
}
