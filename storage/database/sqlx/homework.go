package sqlxrepos

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/homework"
)

var homeworkColumns = []string{
	"id", "subject", "assignment", "due_date", "assigned_date", "status", "priority", "notes", "submission_link",
}

type homeworkRow struct {
	ID             string      `db:"id"`
	Subject        string      `db:"subject"`
	Assignment     string      `db:"assignment"`
	DueDate        core.Date   `db:"due_date"`
	AssignedDate   core.Date   `db:"assigned_date"`
	Status         string      `db:"status"`
	Priority       string      `db:"priority"`
	Notes          null.String `db:"notes"`
	SubmissionLink null.String `db:"submission_link"`
}

func (r homeworkRow) homework() homework.Homework {
	return homework.Homework{
		ID:             r.ID,
		Subject:        r.Subject,
		Assignment:     r.Assignment,
		DueDate:        r.DueDate,
		AssignedDate:   r.AssignedDate,
		Status:         r.Status,
		Priority:       r.Priority,
		Notes:          r.Notes.String,
		SubmissionLink: r.SubmissionLink.String,
	}
}

type homeworkRepository struct {
	conn
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

func (repo *homeworkRepository) QueryHomework(ctx context.Context, userID string, ord core.DBOrdering) ([]homework.Homework, error) {
	order, err := orderBy(ord, "due_date", "assigned_date")
	if err != nil {
		return nil, err
	}
	var rows []homeworkRow
	b := psql.Select(homeworkColumns...).From("homework").Where(sq.Eq{"user_id": userID}).OrderBy(order, "created_at")
	if err := repo.selectRows(ctx, &rows, b); err != nil {
		return nil, errors.Wrap(err, "selecting homework")
	}

	hws := make([]homework.Homework, 0, len(rows))
	for _, r := range rows {
		hws = append(hws, r.homework())
	}
	return hws, nil
}

func (repo *homeworkRepository) CreateHomework(ctx context.Context, userID string, hw homework.Homework) (homework.Homework, error) {
	b := psql.Insert("homework").
		Columns("id", "user_id", "subject", "assignment", "due_date", "assigned_date", "status", "priority", "notes", "submission_link").
		Values(uuid.NewString(), userID, hw.Subject, hw.Assignment, hw.DueDate, hw.AssignedDate, hw.Status, hw.Priority,
			nullString(hw.Notes), nullString(hw.SubmissionLink)).
		Suffix("RETURNING " + strings.Join(homeworkColumns, ", "))

	var r homeworkRow
	if err := repo.getRow(ctx, &r, b); err != nil {
		return homework.Homework{}, errors.Wrap(err, "inserting homework")
	}
	return r.homework(), nil
}

func updateHomeworkQuery(id, userID string, uh homework.UpdateHomework) sq.UpdateBuilder {
	set := map[string]interface{}{"updated_at": sq.Expr("now()")}
	if uh.Subject != nil {
		set["subject"] = *uh.Subject
	}
	if uh.Assignment != nil {
		set["assignment"] = *uh.Assignment
	}
	if uh.DueDate != nil {
		set["due_date"] = *uh.DueDate
	}
	if uh.AssignedDate != nil {
		set["assigned_date"] = *uh.AssignedDate
	}
	if uh.Status != nil {
		set["status"] = *uh.Status
	}
	if uh.Priority != nil {
		set["priority"] = *uh.Priority
	}
	if uh.Notes != nil {
		set["notes"] = nullString(*uh.Notes)
	}
	if uh.SubmissionLink != nil {
		set["submission_link"] = nullString(*uh.SubmissionLink)
	}
	return psql.Update("homework").SetMap(set).Where(sq.Eq{"id": id, "user_id": userID})
}

func (repo *homeworkRepository) UpdateHomework(ctx context.Context, id, userID string, uh homework.UpdateHomework) error {
	uid, ok := rowID(id)
	if !ok {
		return homework.ErrNotFound
	}
	if err := repo.exec(ctx, updateHomeworkQuery(uid, userID, uh), homework.ErrNotFound); err != nil {
		return errors.Wrap(err, "updating homework")
	}
	return nil
}

func (repo *homeworkRepository) DeleteHomework(ctx context.Context, id, userID string) error {
	uid, ok := rowID(id)
	if !ok {
		return homework.ErrNotFound
	}
	b := psql.Delete("homework").Where(sq.Eq{"id": uid, "user_id": userID})
	if err := repo.exec(ctx, b, homework.ErrNotFound); err != nil {
		return errors.Wrap(err, "deleting homework")
	}
	return nil
}
