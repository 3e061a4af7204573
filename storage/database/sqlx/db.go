// Package sqlxrepos implements the study tables on PostgreSQL with sqlx and squirrel.
package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/study"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// conn is shared by the repositories: the database and the per query timeout.
type conn struct {
	db      *sqlx.DB
	timeout time.Duration
}

func (c conn) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// NewRepositories returns every study table of db. Queries taking longer than timeout
// are cancelled; 0 disables the timeout.
func NewRepositories(db *sqlx.DB, timeout time.Duration) study.Repositories {
	c := conn{db: db, timeout: timeout}
	return study.Repositories{
		Homework:  &homeworkRepository{conn: c},
		Calendar:  &eventRepository{conn: c},
		Grades:    &gradeRepository{conn: c},
		Timetable: &timetableRepository{conn: c},
	}
}

// rowID normalizes a row id. Ids that are not UUIDs cannot match any row.
func rowID(id string) (string, bool) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return uid.String(), true
}

// orderBy renders ord as an ORDER BY term once it is known to target an allowed column.
func orderBy(ord core.DBOrdering, allowed ...string) (string, error) {
	if err := core.CheckOrdering(ord, allowed...); err != nil {
		return "", err
	}
	return pq.QuoteIdentifier(ord.Field) + strings.TrimPrefix(ord.String(), ord.Field), nil
}

func nullString(s string) null.String {
	return null.NewString(s, s != "")
}

// exec runs a statement built by b and maps "no row affected" to notFound.
func (c conn) exec(ctx context.Context, b sq.Sqlizer, notFound error) error {
	q, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	ctx, cancel := c.context(ctx)
	defer cancel()

	res, err := c.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	return checkAffected(res, notFound)
}

func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "counting affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func (c conn) selectRows(ctx context.Context, dest interface{}, b sq.Sqlizer) error {
	q, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	ctx, cancel := c.context(ctx)
	defer cancel()
	return sqlx.SelectContext(ctx, c.db, dest, q, args...)
}

func (c conn) getRow(ctx context.Context, dest interface{}, b sq.Sqlizer) error {
	q, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	ctx, cancel := c.context(ctx)
	defer cancel()
	return sqlx.GetContext(ctx, c.db, dest, q, args...)
}
