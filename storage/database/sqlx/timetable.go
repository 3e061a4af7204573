package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/phoebuz/core/timetable"
)

type slotRow struct {
	Day     string      `db:"day"`
	Time    string      `db:"time"`
	Subject string      `db:"subject"`
	Notes   null.String `db:"notes"`
}

// timetableRepository replaces slots in a transaction: it implements timetable.Replacer.
type timetableRepository struct {
	conn
}

var (
	_ timetable.Repository = (*timetableRepository)(nil) // interface compliance check
	_ timetable.Replacer   = (*timetableRepository)(nil)
)

func (repo *timetableRepository) QuerySlots(ctx context.Context, userID string) ([]timetable.Slot, error) {
	var rows []slotRow
	b := psql.Select("day", `"time"`, "subject", "notes").From("timetable").Where(sq.Eq{"user_id": userID}).OrderBy("created_at")
	if err := repo.selectRows(ctx, &rows, b); err != nil {
		return nil, errors.Wrap(err, "selecting timetable")
	}

	slots := make([]timetable.Slot, 0, len(rows))
	for _, r := range rows {
		slots = append(slots, timetable.Slot{Day: r.Day, Time: r.Time, Subject: r.Subject, Notes: r.Notes.String})
	}
	return slots, nil
}

func deleteSlots(ctx context.Context, exec sqlx.ExecerContext, userID string) error {
	q, args, err := psql.Delete("timetable").Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = exec.ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "deleting timetable")
	}
	return nil
}

func insertSlotsQuery(userID string, slots []timetable.Slot) sq.InsertBuilder {
	b := psql.Insert("timetable").Columns("id", "user_id", "day", `"time"`, "subject", "notes")
	for _, s := range slots {
		b = b.Values(uuid.NewString(), userID, s.Day, s.Time, s.Subject, nullString(s.Notes))
	}
	return b
}

// insertSlots writes every slot in one statement: all of them or none.
func insertSlots(ctx context.Context, exec sqlx.ExecerContext, userID string, slots []timetable.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	q, args, err := insertSlotsQuery(userID, slots).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = exec.ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "inserting timetable")
	}
	return nil
}

func (repo *timetableRepository) DeleteSlots(ctx context.Context, userID string) error {
	ctx, cancel := repo.context(ctx)
	defer cancel()
	return deleteSlots(ctx, repo.db, userID)
}

func (repo *timetableRepository) InsertSlots(ctx context.Context, userID string, slots []timetable.Slot) error {
	ctx, cancel := repo.context(ctx)
	defer cancel()
	return insertSlots(ctx, repo.db, userID, slots)
}

// ReplaceSlots deletes and inserts the slots of userID in a single transaction.
func (repo *timetableRepository) ReplaceSlots(ctx context.Context, userID string, slots []timetable.Slot) (err error) {
	ctx, cancel := repo.context(ctx)
	defer cancel()

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = deleteSlots(ctx, tx, userID); err != nil {
		return err
	}
	if err = insertSlots(ctx, tx, userID, slots); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing timetable")
	}
	return nil
}
