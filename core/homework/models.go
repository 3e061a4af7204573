package homework

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/countdown"
)

// Statuses
const (
	StatusNotStarted    = "Not Started"
	StatusInProgress    = "In Progress"
	StatusNeedsRevision = "Needs Revision"
	StatusCompleted     = "Completed"
	StatusSubmitted     = "Submitted"
)

// Priorities
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

var (
	Statuses   = []string{StatusNotStarted, StatusInProgress, StatusNeedsRevision, StatusCompleted, StatusSubmitted}
	Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

	// Ordering is the order homework is listed in.
	Ordering = core.DBOrdering{Field: "due_date", Ascending: true}
)

type Homework struct {
	ID             string    `json:"id"`
	Subject        string    `json:"subject"`
	Assignment     string    `json:"assignment"`
	DueDate        core.Date `json:"due_date"`
	AssignedDate   core.Date `json:"assigned_date"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	Notes          string    `json:"notes"`
	SubmissionLink string    `json:"submission_link,omitempty"`
}

func (hw Homework) EffectiveDate() core.Date { return hw.DueDate }

// IsDone reports whether the homework was completed or handed in.
func (hw Homework) IsDone() bool {
	return hw.Status == StatusCompleted || hw.Status == StatusSubmitted
}

// NewHomework contains information needed to create a new Homework.
type NewHomework struct {
	Subject        string    `json:"subject" validate:"required,subject"`
	Assignment     string    `json:"assignment" validate:"required"`
	DueDate        core.Date `json:"due_date" validate:"required"`
	AssignedDate   core.Date `json:"assigned_date"`
	Status         string    `json:"status" validate:"required,hwstatus"`
	Priority       string    `json:"priority" validate:"required,priority"`
	Notes          string    `json:"notes"`
	SubmissionLink string    `json:"submission_link"`
}

// Validate cleans nh, fills in the form defaults and validates it.
func (nh *NewHomework) Validate(validate *validator.Validate) error {
	nh.Subject = core.CleanString(nh.Subject)
	nh.Assignment = core.CleanString(nh.Assignment)
	nh.Notes = core.CleanString(nh.Notes)
	nh.SubmissionLink = core.CleanString(nh.SubmissionLink)
	if nh.Status == "" {
		nh.Status = StatusNotStarted
	}
	if nh.Priority == "" {
		nh.Priority = PriorityMedium
	}
	if nh.AssignedDate.IsZero() {
		nh.AssignedDate = countdown.Today()
	}
	return validate.Struct(nh)
}

func (nh NewHomework) Homework() Homework {
	return Homework{
		Subject:        nh.Subject,
		Assignment:     nh.Assignment,
		DueDate:        nh.DueDate,
		AssignedDate:   nh.AssignedDate,
		Status:         nh.Status,
		Priority:       nh.Priority,
		Notes:          nh.Notes,
		SubmissionLink: nh.SubmissionLink,
	}
}

// UpdateHomework defines what information may be provided to modify an existing Homework.
// Nil fields are left unchanged.
type UpdateHomework struct {
	Subject        *string    `json:"subject" validate:"omitempty,subject"`
	Assignment     *string    `json:"assignment" validate:"omitempty,notblank"`
	DueDate        *core.Date `json:"due_date"`
	AssignedDate   *core.Date `json:"assigned_date"`
	Status         *string    `json:"status" validate:"omitempty,hwstatus"`
	Priority       *string    `json:"priority" validate:"omitempty,priority"`
	Notes          *string    `json:"notes"`
	SubmissionLink *string    `json:"submission_link"`
}

func (uh *UpdateHomework) Validate(validate *validator.Validate) error {
	uh.Subject = core.CleanStringPtr(uh.Subject)
	uh.Assignment = core.CleanStringPtr(uh.Assignment)
	uh.Notes = core.CleanStringPtr(uh.Notes)
	uh.SubmissionLink = core.CleanStringPtr(uh.SubmissionLink)
	if uh.DueDate != nil && uh.DueDate.IsZero() {
		return core.NewValidationError(nil, core.FieldError{Field: "due_date", Error: "this field cannot be blank"})
	}
	return validate.Struct(uh)
}

func (uh UpdateHomework) IsEmpty() bool {
	return uh.Subject == nil && uh.Assignment == nil && uh.DueDate == nil && uh.AssignedDate == nil &&
		uh.Status == nil && uh.Priority == nil && uh.Notes == nil && uh.SubmissionLink == nil
}

// Apply merges the provided fields into hw.
func (uh UpdateHomework) Apply(hw *Homework) {
	if uh.Subject != nil {
		hw.Subject = *uh.Subject
	}
	if uh.Assignment != nil {
		hw.Assignment = *uh.Assignment
	}
	if uh.DueDate != nil {
		hw.DueDate = *uh.DueDate
	}
	if uh.AssignedDate != nil {
		hw.AssignedDate = *uh.AssignedDate
	}
	if uh.Status != nil {
		hw.Status = *uh.Status
	}
	if uh.Priority != nil {
		hw.Priority = *uh.Priority
	}
	if uh.Notes != nil {
		hw.Notes = *uh.Notes
	}
	if uh.SubmissionLink != nil {
		hw.SubmissionLink = *uh.SubmissionLink
	}
}
