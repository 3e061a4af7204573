package calendar

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/phoebuz/core"
)

// Event types
const (
	TypeExam        = "Exam"
	TypeQuiz        = "Quiz"
	TypeHomeworkDue = "Homework Due"
	TypeProject     = "Project"
	TypeAssignment  = "Assignment"
)

var (
	EventTypes = []string{TypeExam, TypeQuiz, TypeHomeworkDue, TypeProject, TypeAssignment}

	// Ordering is the order events are listed in.
	Ordering = core.DBOrdering{Field: "date", Ascending: true}
)

type Event struct {
	ID          string    `json:"id"`
	Date        core.Date `json:"date"`
	Time        string    `json:"time"` // free text, eg. "9:00 AM - 11:00 AM"
	EventType   string    `json:"event_type"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	ReminderSet bool      `json:"reminder_set"`
	// PreparationChecklist keeps insertion order and never holds blank entries.
	PreparationChecklist []string `json:"preparation_checklist"`
}

func (e Event) EffectiveDate() core.Date { return e.Date }

func (e Event) IsExam() bool { return e.EventType == TypeExam }

// CleanChecklist trims the entries of items and drops the blank ones, keeping their order.
func CleanChecklist(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}

// NewEvent contains information needed to create a new Event.
type NewEvent struct {
	Date                 core.Date `json:"date" validate:"required"`
	Time                 string    `json:"time"`
	EventType            string    `json:"event_type" validate:"required,eventtype"`
	Subject              string    `json:"subject" validate:"required,subject"`
	Description          string    `json:"description" validate:"required"`
	Location             string    `json:"location"`
	ReminderSet          bool      `json:"reminder_set"`
	PreparationChecklist []string  `json:"preparation_checklist"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Time = core.CleanString(ne.Time)
	ne.Subject = core.CleanString(ne.Subject)
	ne.Description = core.CleanString(ne.Description)
	ne.Location = core.CleanString(ne.Location)
	ne.PreparationChecklist = CleanChecklist(ne.PreparationChecklist)
	if ne.EventType == "" {
		ne.EventType = TypeExam
	}
	return validate.Struct(ne)
}

func (ne NewEvent) Event() Event {
	return Event{
		Date:                 ne.Date,
		Time:                 ne.Time,
		EventType:            ne.EventType,
		Subject:              ne.Subject,
		Description:          ne.Description,
		Location:             ne.Location,
		ReminderSet:          ne.ReminderSet,
		PreparationChecklist: CleanChecklist(ne.PreparationChecklist),
	}
}

// UpdateEvent defines what information may be provided to modify an existing Event.
// Nil fields are left unchanged; a non-nil checklist replaces the whole list.
type UpdateEvent struct {
	Date                 *core.Date `json:"date"`
	Time                 *string    `json:"time"`
	EventType            *string    `json:"event_type" validate:"omitempty,eventtype"`
	Subject              *string    `json:"subject" validate:"omitempty,subject"`
	Description          *string    `json:"description" validate:"omitempty,notblank"`
	Location             *string    `json:"location"`
	ReminderSet          *bool      `json:"reminder_set"`
	PreparationChecklist *[]string  `json:"preparation_checklist"`
}

func (ue *UpdateEvent) Validate(validate *validator.Validate) error {
	ue.Time = core.CleanStringPtr(ue.Time)
	ue.Subject = core.CleanStringPtr(ue.Subject)
	ue.Description = core.CleanStringPtr(ue.Description)
	ue.Location = core.CleanStringPtr(ue.Location)
	if ue.PreparationChecklist != nil {
		cleaned := CleanChecklist(*ue.PreparationChecklist)
		ue.PreparationChecklist = &cleaned
	}
	if ue.Date != nil && ue.Date.IsZero() {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "this field cannot be blank"})
	}
	return validate.Struct(ue)
}

func (ue UpdateEvent) IsEmpty() bool {
	return ue.Date == nil && ue.Time == nil && ue.EventType == nil && ue.Subject == nil &&
		ue.Description == nil && ue.Location == nil && ue.ReminderSet == nil && ue.PreparationChecklist == nil
}

// Apply merges the provided fields into e.
func (ue UpdateEvent) Apply(e *Event) {
	if ue.Date != nil {
		e.Date = *ue.Date
	}
	if ue.Time != nil {
		e.Time = *ue.Time
	}
	if ue.EventType != nil {
		e.EventType = *ue.EventType
	}
	if ue.Subject != nil {
		e.Subject = *ue.Subject
	}
	if ue.Description != nil {
		e.Description = *ue.Description
	}
	if ue.Location != nil {
		e.Location = *ue.Location
	}
	if ue.ReminderSet != nil {
		e.ReminderSet = *ue.ReminderSet
	}
	if ue.PreparationChecklist != nil {
		e.PreparationChecklist = CleanChecklist(*ue.PreparationChecklist)
	}
}
