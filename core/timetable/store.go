// Package timetable keeps the signed in student's weekly timetable in step with the
// timetable table. The timetable is only ever replaced as a whole.
package timetable

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/collection"
	"github.com/trezcool/phoebuz/core/countdown"
	"github.com/trezcool/phoebuz/core/session"
)

type (
	// Repository is the timetable table. Every call is scoped to userID.
	Repository interface {
		QuerySlots(ctx context.Context, userID string) ([]Slot, error)
		DeleteSlots(ctx context.Context, userID string) error
		InsertSlots(ctx context.Context, userID string, slots []Slot) error
	}

	// Replacer is implemented by repositories able to replace every slot of a user atomically.
	Replacer interface {
		ReplaceSlots(ctx context.Context, userID string, slots []Slot) error
	}

	Store struct {
		repo   Repository
		logger core.Logger
		mirror *collection.Mirror[Slot]
	}
)

func slotKey(s Slot) string { return s.Day + " " + s.Time }

func NewStore(repo Repository, sess *session.Session, logger core.Logger) *Store {
	query := func(ctx context.Context, userID string) ([]Slot, error) {
		slots, err := repo.QuerySlots(ctx, userID)
		if err != nil {
			return nil, err
		}
		Sort(slots)
		return slots, nil
	}
	return &Store{
		repo:   repo,
		logger: logger,
		mirror: collection.NewMirror("timetable.Store", sess, logger, slotKey, query, nil),
	}
}

// Items returns the slots ordered by day then time.
func (s *Store) Items() []Slot { return s.mirror.Items() }

func (s *Store) Load(ctx context.Context) error { return s.mirror.Load(ctx) }

func (s *Store) Loaded() bool { return s.mirror.Loaded() }

func (s *Store) SlotAt(day, timeSlot string) (Slot, bool) {
	return s.mirror.Find(slotKey(Slot{Day: day, Time: timeSlot}))
}

func (s *Store) ForDay(day string) []Slot {
	return ForDay(s.Items(), day)
}

// Today returns today's lessons; none on weekends.
func (s *Store) Today() []Slot {
	day := DayOf(countdown.Today())
	if day == "" {
		return []Slot{}
	}
	return s.ForDay(day)
}

// Replace makes slots the whole timetable. Slots must be valid and unique per (Day, Time).
// The local timetable only changes once the remote one was fully replaced.
func (s *Store) Replace(ctx context.Context, slots []Slot) error {
	if err := CheckUnique(slots); err != nil {
		return err
	}
	replaced := make([]Slot, len(slots))
	copy(replaced, slots)
	Sort(replaced)

	return s.mirror.Swap(ctx, func(ctx context.Context, userID string) error {
		return s.replace(ctx, userID, replaced)
	}, replaced)
}

func (s *Store) replace(ctx context.Context, userID string, slots []Slot) error {
	if r, ok := s.repo.(Replacer); ok {
		return r.ReplaceSlots(ctx, userID, slots)
	}

	// no transaction available: delete then insert, restoring the previous slots if the
	// insert fails
	previous, err := s.repo.QuerySlots(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "querying previous slots")
	}
	if err := s.repo.DeleteSlots(ctx, userID); err != nil {
		return errors.Wrap(err, "deleting slots")
	}
	if len(slots) == 0 {
		return nil
	}
	if err := s.repo.InsertSlots(ctx, userID, slots); err != nil {
		if len(previous) > 0 {
			if rerr := s.repo.InsertSlots(ctx, userID, previous); rerr != nil {
				s.logger.Error(fmt.Sprintf("timetable.Store.Replace: restoring %d slots: %v", len(previous), rerr), rerr)
				return errors.Wrapf(err, "inserting slots (previous slots lost: %v)", rerr)
			}
		}
		return errors.Wrap(err, "inserting slots")
	}
	return nil
}
