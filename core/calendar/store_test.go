package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/calendar"
	"github.com/trezcool/phoebuz/core/session"
	inmemdb "github.com/trezcool/phoebuz/storage/database/inmem"
	testutil "github.com/trezcool/phoebuz/tests"
)

var (
	ctx = context.Background()
	day = core.NewDate(2024, time.May, 20)
)

func setup(t *testing.T) (calendar.Repository, *session.Session, *calendar.Store) {
	t.Helper()
	repo := inmemdb.NewEventRepository(inmemdb.Open())
	sess := session.New()
	return repo, sess, calendar.NewStore(repo, sess, testutil.NewLogger())
}

func TestCleanChecklist(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  []string
	}{
		{name: "nil", items: nil, want: []string{}},
		{name: "only blanks", items: []string{"", "  ", "\t"}, want: []string{}},
		{name: "keeps order", items: []string{"b", "", " a ", "c"}, want: []string{"b", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.CleanChecklist(tt.items))
		})
	}
}

func TestStore_AddFiltersBlankChecklistItems(t *testing.T) {
	_, sess, store := setup(t)
	testutil.SignIn(t, sess, "alice")

	ev, err := store.Add(ctx, calendar.NewEvent{
		Date:                 day,
		Time:                 "9:00 AM",
		EventType:            calendar.TypeExam,
		Subject:              "Science",
		Description:          "Chemistry final",
		ReminderSet:          true,
		PreparationChecklist: []string{"Read ch. 1", "", "  ", "Flashcards"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, []string{"Read ch. 1", "Flashcards"}, ev.PreparationChecklist)

	got, err := store.Get(ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}

func TestStore_Update(t *testing.T) {
	repo, sess, store := setup(t)
	testutil.SignIn(t, sess, "alice")

	ev, err := store.Add(ctx, calendar.NewEvent{Date: day, EventType: calendar.TypeQuiz, Subject: "Math", Description: "Quiz 3"})
	require.NoError(t, err)

	checklist := []string{"", "Practice set", " "}
	updated, err := store.Update(ctx, ev.ID, calendar.UpdateEvent{
		Date:                 testutil.DatePtr(day.AddDays(2)),
		Location:             testutil.StringPtr("Room 12"),
		PreparationChecklist: &checklist,
	})
	require.NoError(t, err)
	assert.Equal(t, day.AddDays(2), updated.Date)
	assert.Equal(t, "Room 12", updated.Location)
	assert.Equal(t, "Quiz 3", updated.Description)
	assert.Equal(t, []string{"Practice set"}, updated.PreparationChecklist)

	rows, err := repo.QueryEvents(ctx, "alice", calendar.Ordering)
	require.NoError(t, err)
	assert.Equal(t, []calendar.Event{updated}, rows)
}

func TestStore_isolation(t *testing.T) {
	repo, sess, store := setup(t)
	bobs, err := repo.CreateEvent(ctx, "bob", calendar.Event{Date: day, EventType: calendar.TypeExam, Subject: "Art", Description: "Portfolio"})
	require.NoError(t, err)

	testutil.SignIn(t, sess, "alice")
	_, err = store.Update(ctx, bobs.ID, calendar.UpdateEvent{Description: testutil.StringPtr("mine now")})
	assert.Equal(t, calendar.ErrNotFound, errors.Cause(err))
	assert.Equal(t, calendar.ErrNotFound, errors.Cause(store.Delete(ctx, bobs.ID)))

	rows, err := repo.QueryEvents(ctx, "bob", calendar.Ordering)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", rows[0].Description)
}

func TestStore_ordersByDate(t *testing.T) {
	repo, sess, store := setup(t)
	for _, d := range []core.Date{day.AddDays(3), day, day.AddDays(1)} {
		_, err := repo.CreateEvent(ctx, "alice", calendar.Event{Date: d, EventType: calendar.TypeExam, Subject: "Math", Description: d.String()})
		require.NoError(t, err)
	}
	testutil.SignIn(t, sess, "alice")

	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, day, items[0].Date)
	assert.Equal(t, day.AddDays(1), items[1].Date)
	assert.Equal(t, day.AddDays(3), items[2].Date)
}

func TestNewEvent_Validate(t *testing.T) {
	validate := testutil.NewValidator()

	ne := calendar.NewEvent{Date: day, Subject: "History", Description: "Essay", EventType: calendar.TypeHomeworkDue}
	require.NoError(t, ne.Validate(validate))

	ne = calendar.NewEvent{Date: day, Subject: "History", Description: "Essay"}
	require.NoError(t, ne.Validate(validate))
	assert.Equal(t, calendar.TypeExam, ne.EventType)

	ne = calendar.NewEvent{Subject: "History", Description: "Essay", EventType: "Party"}
	assert.Error(t, ne.Validate(validate))
}
