// Package dashboard derives the overview figures shown on the study dashboard.
package dashboard

import (
	"sort"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/calendar"
	"github.com/trezcool/phoebuz/core/countdown"
	"github.com/trezcool/phoebuz/core/grade"
	"github.com/trezcool/phoebuz/core/grading"
	"github.com/trezcool/phoebuz/core/homework"
)

const (
	// DeadlineWindow is how many days ahead UpcomingDeadlines looks.
	DeadlineWindow = 7
	MaxDeadlines   = 5
)

// Deadline kinds
const (
	KindHomework = "homework"
	KindEvent    = "event"
)

// Triage splits homework into the dashboard buckets.
//
// The buckets may overlap: homework completed after its due date is both Overdue and
// Completed. Status wins over date for Upcoming, so done homework is never Upcoming.
type Triage struct {
	Overdue   []homework.Homework `json:"overdue"`
	Upcoming  []homework.Homework `json:"upcoming"`
	Completed []homework.Homework `json:"completed"`
}

func PartitionHomework(hw []homework.Homework) Triage {
	t := Triage{
		Overdue:   []homework.Homework{},
		Upcoming:  []homework.Homework{},
		Completed: []homework.Homework{},
	}
	for _, h := range hw {
		overdue := countdown.IsOverdue(h.DueDate)
		if overdue {
			t.Overdue = append(t.Overdue, h)
		}
		if !overdue && !h.IsDone() {
			t.Upcoming = append(t.Upcoming, h)
		}
		if h.IsDone() {
			t.Completed = append(t.Completed, h)
		}
	}
	return t
}

// Deadline is a homework or an event reduced to its effective date.
type Deadline struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Title     string    `json:"title"`
	EventType string    `json:"event_type,omitempty"`
	Date      core.Date `json:"date"`
	DaysLeft  int       `json:"days_left"`
	Urgency   string    `json:"urgency"`
}

func (d Deadline) EffectiveDate() core.Date { return d.Date }

func homeworkDeadline(h homework.Homework) Deadline {
	return Deadline{Kind: KindHomework, ID: h.ID, Subject: h.Subject, Title: h.Assignment, Date: h.DueDate}
}

func eventDeadline(e calendar.Event) Deadline {
	return Deadline{Kind: KindEvent, ID: e.ID, Subject: e.Subject, Title: e.Description, EventType: e.EventType, Date: e.Date}
}

// UpcomingDeadlines merges upcoming homework and events due within DeadlineWindow days,
// soonest first, and keeps the first MaxDeadlines.
//
// Past events are kept: only homework is filtered on being overdue, by the caller.
func UpcomingDeadlines(upcoming []homework.Homework, events []calendar.Event) []Deadline {
	all := make([]Deadline, 0, len(upcoming)+len(events))
	for _, h := range upcoming {
		all = append(all, homeworkDeadline(h))
	}
	for _, e := range events {
		all = append(all, eventDeadline(e))
	}

	deadlines := make([]Deadline, 0, len(all))
	for _, d := range all {
		d.DaysLeft = countdown.DaysLeft(d.Date)
		if d.DaysLeft <= DeadlineWindow {
			d.Urgency = countdown.Urgency(d.DaysLeft)
			deadlines = append(deadlines, d)
		}
	}
	countdown.SortByDaysLeft(deadlines)
	if len(deadlines) > MaxDeadlines {
		deadlines = deadlines[:MaxDeadlines]
	}
	return deadlines
}

// Summary is everything the dashboard shows.
type Summary struct {
	OverdueCount      int                     `json:"overdue_count"`
	PendingCount      int                     `json:"pending_count"`
	CompletedCount    int                     `json:"completed_count"`
	NextHomework      *homework.Homework      `json:"next_homework"`
	NextExam          *calendar.Event         `json:"next_exam"`
	OverallAverage    int                     `json:"overall_average"`
	OverallLetter     string                  `json:"overall_letter"`
	SubjectAverages   []grading.SubjectResult `json:"subject_averages"`
	UpcomingDeadlines []Deadline              `json:"upcoming_deadlines"`
}

func Summarize(hw []homework.Homework, events []calendar.Event, grades []grade.Grade) Summary {
	triage := PartitionHomework(hw)
	avg := grading.WeightedAverage(grades)
	s := Summary{
		OverdueCount:      len(triage.Overdue),
		PendingCount:      len(triage.Upcoming),
		CompletedCount:    len(triage.Completed),
		OverallAverage:    avg,
		OverallLetter:     grading.LetterGrade(avg),
		SubjectAverages:   grading.SubjectAverages(grades),
		UpcomingDeadlines: UpcomingDeadlines(triage.Upcoming, events),
	}

	if next, ok := countdown.NextUpcoming(triage.Upcoming); ok {
		s.NextHomework = &next
	}
	exams := make([]calendar.Event, 0, len(events))
	for _, e := range events {
		if e.IsExam() {
			exams = append(exams, e)
		}
	}
	if next, ok := countdown.NextUpcoming(exams); ok {
		s.NextExam = &next
	}
	return s
}

// SortHomework returns hw for the tracker: overdue first, then by days left.
func SortHomework(hw []homework.Homework) []homework.Homework {
	sorted := make([]homework.Homework, len(hw))
	copy(sorted, hw)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, oj := countdown.IsOverdue(sorted[i].DueDate), countdown.IsOverdue(sorted[j].DueDate)
		if oi != oj {
			return oi
		}
		return countdown.DaysLeft(sorted[i].DueDate) < countdown.DaysLeft(sorted[j].DueDate)
	})
	return sorted
}

// EventSplit separates the events still to come from the past ones, each by date.
type EventSplit struct {
	Upcoming []calendar.Event `json:"upcoming"`
	Past     []calendar.Event `json:"past"`
}

func SplitEvents(events []calendar.Event) EventSplit {
	sorted := make([]calendar.Event, len(events))
	copy(sorted, events)
	countdown.SortByDaysLeft(sorted)

	split := EventSplit{Upcoming: []calendar.Event{}, Past: []calendar.Event{}}
	for _, e := range sorted {
		if countdown.IsOverdue(e.Date) {
			split.Past = append(split.Past, e)
		} else {
			split.Upcoming = append(split.Upcoming, e)
		}
	}
	return split
}
