package sqlxrepos

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/calendar"
)

var eventColumns = []string{
	"id", `"date"`, `"time"`, "event_type", "subject", "description", "location", "reminder_set", "preparation_checklist",
}

type eventRow struct {
	ID          string         `db:"id"`
	Date        core.Date      `db:"date"`
	Time        string         `db:"time"`
	EventType   string         `db:"event_type"`
	Subject     string         `db:"subject"`
	Description string         `db:"description"`
	Location    null.String    `db:"location"`
	ReminderSet bool           `db:"reminder_set"`
	Checklist   pq.StringArray `db:"preparation_checklist"`
}

func (r eventRow) event() calendar.Event {
	return calendar.Event{
		ID:                   r.ID,
		Date:                 r.Date,
		Time:                 r.Time,
		EventType:            r.EventType,
		Subject:              r.Subject,
		Description:          r.Description,
		Location:             r.Location.String,
		ReminderSet:          r.ReminderSet,
		PreparationChecklist: calendar.CleanChecklist(r.Checklist),
	}
}

type eventRepository struct {
	conn
}

var _ calendar.Repository = (*eventRepository)(nil) // interface compliance check

func (repo *eventRepository) QueryEvents(ctx context.Context, userID string, ord core.DBOrdering) ([]calendar.Event, error) {
	order, err := orderBy(ord, "date")
	if err != nil {
		return nil, err
	}
	var rows []eventRow
	b := psql.Select(eventColumns...).From("calendar_events").Where(sq.Eq{"user_id": userID}).
		OrderBy(order, "created_at")
	if err := repo.selectRows(ctx, &rows, b); err != nil {
		return nil, errors.Wrap(err, "selecting calendar events")
	}

	events := make([]calendar.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.event())
	}
	return events, nil
}

func (repo *eventRepository) CreateEvent(ctx context.Context, userID string, e calendar.Event) (calendar.Event, error) {
	b := psql.Insert("calendar_events").
		Columns("id", "user_id", `"date"`, `"time"`, "event_type", "subject", "description", "location", "reminder_set", "preparation_checklist").
		Values(uuid.NewString(), userID, e.Date, e.Time, e.EventType, e.Subject, e.Description, nullString(e.Location), e.ReminderSet,
			pq.StringArray(calendar.CleanChecklist(e.PreparationChecklist))).
		Suffix("RETURNING " + strings.Join(eventColumns, ", "))

	var r eventRow
	if err := repo.getRow(ctx, &r, b); err != nil {
		return calendar.Event{}, errors.Wrap(err, "inserting calendar event")
	}
	return r.event(), nil
}

func updateEventQuery(id, userID string, ue calendar.UpdateEvent) sq.UpdateBuilder {
	set := map[string]interface{}{"updated_at": sq.Expr("now()")}
	if ue.Date != nil {
		set[`"date"`] = *ue.Date
	}
	if ue.Time != nil {
		set[`"time"`] = *ue.Time
	}
	if ue.EventType != nil {
		set["event_type"] = *ue.EventType
	}
	if ue.Subject != nil {
		set["subject"] = *ue.Subject
	}
	if ue.Description != nil {
		set["description"] = *ue.Description
	}
	if ue.Location != nil {
		set["location"] = nullString(*ue.Location)
	}
	if ue.ReminderSet != nil {
		set["reminder_set"] = *ue.ReminderSet
	}
	if ue.PreparationChecklist != nil {
		set["preparation_checklist"] = pq.StringArray(calendar.CleanChecklist(*ue.PreparationChecklist))
	}
	return psql.Update("calendar_events").SetMap(set).Where(sq.Eq{"id": id, "user_id": userID})
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, id, userID string, ue calendar.UpdateEvent) error {
	uid, ok := rowID(id)
	if !ok {
		return calendar.ErrNotFound
	}
	if err := repo.exec(ctx, updateEventQuery(uid, userID, ue), calendar.ErrNotFound); err != nil {
		return errors.Wrap(err, "updating calendar event")
	}
	return nil
}

func (repo *eventRepository) DeleteEvent(ctx context.Context, id, userID string) error {
	uid, ok := rowID(id)
	if !ok {
		return calendar.ErrNotFound
	}
	b := psql.Delete("calendar_events").Where(sq.Eq{"id": uid, "user_id": userID})
	if err := repo.exec(ctx, b, calendar.ErrNotFound); err != nil {
		return errors.Wrap(err, "deleting calendar event")
	}
	return nil
}
