package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/calendar"
	"github.com/trezcool/phoebuz/core/countdown"
	"github.com/trezcool/phoebuz/core/grade"
	"github.com/trezcool/phoebuz/core/grading"
	"github.com/trezcool/phoebuz/core/homework"
)

var today = core.NewDate(2024, time.April, 10)

func TestMain(m *testing.M) {
	countdown.NowFunc = func() time.Time { return time.Date(2024, time.April, 10, 15, 0, 0, 0, time.UTC) }
	m.Run()
}

func hw(id string, due int, status string) homework.Homework {
	return homework.Homework{ID: id, Subject: "Math", Assignment: id, DueDate: today.AddDays(due), Status: status}
}

func ev(id string, in int, typ string) calendar.Event {
	return calendar.Event{ID: id, Subject: "Science", Description: id, EventType: typ, Date: today.AddDays(in)}
}

func ids[T interface{ homework.Homework | calendar.Event }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := any(item).(type) {
		case homework.Homework:
			out = append(out, v.ID)
		case calendar.Event:
			out = append(out, v.ID)
		}
	}
	return out
}

func TestPartitionHomework(t *testing.T) {
	items := []homework.Homework{
		hw("late", -2, homework.StatusInProgress),
		hw("late-done", -1, homework.StatusCompleted),
		hw("today", 0, homework.StatusNotStarted),
		hw("next-week", 7, homework.StatusNeedsRevision),
		hw("submitted", 3, homework.StatusSubmitted),
	}

	got := PartitionHomework(items)
	assert.Equal(t, []string{"late", "late-done"}, ids(got.Overdue))
	assert.Equal(t, []string{"today", "next-week"}, ids(got.Upcoming))
	assert.Equal(t, []string{"late-done", "submitted"}, ids(got.Completed))
}

func TestPartitionHomework_empty(t *testing.T) {
	got := PartitionHomework(nil)
	assert.NotNil(t, got.Overdue)
	assert.NotNil(t, got.Upcoming)
	assert.NotNil(t, got.Completed)
}

func TestUpcomingDeadlines(t *testing.T) {
	upcoming := []homework.Homework{
		hw("hw-3", 3, homework.StatusNotStarted),
		hw("hw-8", 8, homework.StatusNotStarted),
		hw("hw-0", 0, homework.StatusInProgress),
	}
	events := []calendar.Event{
		ev("exam-7", 7, calendar.TypeExam),
		ev("quiz-past", -4, calendar.TypeQuiz),
		ev("project-3", 3, calendar.TypeProject),
	}

	got := UpcomingDeadlines(upcoming, events)
	require.Len(t, got, MaxDeadlines)

	titles := make([]string, 0, len(got))
	for _, d := range got {
		titles = append(titles, d.Title)
	}
	// past events stay in the window; ties keep homework before events
	assert.Equal(t, []string{"quiz-past", "hw-0", "hw-3", "project-3", "exam-7"}, titles)

	assert.Equal(t, KindEvent, got[0].Kind)
	assert.Equal(t, -4, got[0].DaysLeft)
	assert.Equal(t, countdown.UrgencyOverdue, got[0].Urgency)
	assert.Equal(t, KindHomework, got[1].Kind)
	assert.Equal(t, countdown.UrgencyCritical, got[1].Urgency)
	assert.Equal(t, calendar.TypeExam, got[4].EventType)
}

func TestUpcomingDeadlines_truncates(t *testing.T) {
	events := make([]calendar.Event, 0, 8)
	for i := 0; i < 8; i++ {
		events = append(events, ev(string(rune('a'+i)), 7-i, calendar.TypeQuiz))
	}
	got := UpcomingDeadlines(nil, events)
	require.Len(t, got, 5)
	assert.Equal(t, "h", got[0].Title)
	assert.Equal(t, "d", got[4].Title)
}

func TestSummarize(t *testing.T) {
	homeworks := []homework.Homework{
		hw("late", -1, homework.StatusNotStarted),
		hw("in-5", 5, homework.StatusNotStarted),
		hw("tomorrow", 1, homework.StatusInProgress),
		hw("done", 2, homework.StatusCompleted),
	}
	events := []calendar.Event{
		ev("past-exam", -1, calendar.TypeExam),
		ev("quiz", 1, calendar.TypeQuiz),
		ev("exam-6", 6, calendar.TypeExam),
		ev("exam-2", 2, calendar.TypeExam),
	}
	grades := []grade.Grade{
		{Subject: "Math", MarksObtained: 80, MaxMarks: 100, Weight: 1},
		{Subject: "English", MarksObtained: 60, MaxMarks: 100, Weight: 1},
	}

	s := Summarize(homeworks, events, grades)
	assert.Equal(t, 1, s.OverdueCount)
	assert.Equal(t, 2, s.PendingCount)
	assert.Equal(t, 1, s.CompletedCount)
	require.NotNil(t, s.NextHomework)
	assert.Equal(t, "tomorrow", s.NextHomework.ID)
	require.NotNil(t, s.NextExam)
	assert.Equal(t, "exam-2", s.NextExam.ID)
	assert.Equal(t, 70, s.OverallAverage)
	assert.Equal(t, grading.LetterB, s.OverallLetter)
	assert.Len(t, s.SubjectAverages, 2)
	assert.Len(t, s.UpcomingDeadlines, 5)
}

func TestSummarize_empty(t *testing.T) {
	s := Summarize(nil, nil, nil)
	assert.Nil(t, s.NextHomework)
	assert.Nil(t, s.NextExam)
	assert.Equal(t, 0, s.OverallAverage)
	assert.Equal(t, grading.LetterF, s.OverallLetter)
	assert.Empty(t, s.UpcomingDeadlines)
}

func TestSortHomework(t *testing.T) {
	items := []homework.Homework{
		hw("in-4", 4, homework.StatusNotStarted),
		hw("late-1", -1, homework.StatusNotStarted),
		hw("today", 0, homework.StatusNotStarted),
		hw("late-5", -5, homework.StatusCompleted),
	}
	assert.Equal(t, []string{"late-5", "late-1", "today", "in-4"}, ids(SortHomework(items)))
	assert.Equal(t, "in-4", items[0].ID, "input left untouched")
}

func TestSplitEvents(t *testing.T) {
	split := SplitEvents([]calendar.Event{
		ev("in-3", 3, calendar.TypeQuiz),
		ev("yesterday", -1, calendar.TypeExam),
		ev("today", 0, calendar.TypeProject),
		ev("last-week", -7, calendar.TypeAssignment),
	})
	assert.Equal(t, []string{"today", "in-3"}, ids(split.Upcoming))
	assert.Equal(t, []string{"last-week", "yesterday"}, ids(split.Past))
}
