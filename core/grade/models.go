package grade

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/grading"
)

// Assessment types
const (
	TypeExam       = "Exam"
	TypeAssignment = "Assignment"
	TypeQuiz       = "Quiz"
	TypeProject    = "Project"
)

var (
	Types = []string{TypeExam, TypeAssignment, TypeQuiz, TypeProject}

	// Ordering is the order grades are listed in: most recent first.
	Ordering = core.DBOrdering{Field: "date_graded", Ascending: false}
)

type Grade struct {
	ID             string    `json:"id"`
	Subject        string    `json:"subject"`
	AssessmentName string    `json:"assessment_name"`
	Type           string    `json:"type"`
	MaxMarks       int       `json:"max_marks"`
	MarksObtained  int       `json:"marks_obtained"`
	Letter         string    `json:"grade"` // derived from the marks when written
	DateGraded     core.Date `json:"date_graded"`
	Feedback       string    `json:"feedback,omitempty"`
	Weight         float64   `json:"weight"`
}

var _ grading.Assessment = Grade{} // interface compliance check

func (g Grade) SubjectName() string        { return g.Subject }
func (g Grade) Marks() (obtained, max int) { return g.MarksObtained, g.MaxMarks }
func (g Grade) AssessmentWeight() float64  { return g.Weight }
func (g Grade) Percentage() (int, error)   { return grading.Percentage(g.MarksObtained, g.MaxMarks) }

// NewGrade contains information needed to record a new Grade.
// Marks obtained may exceed the max (bonus marks).
type NewGrade struct {
	Subject        string    `json:"subject" validate:"required,subject"`
	AssessmentName string    `json:"assessment_name" validate:"required"`
	Type           string    `json:"type" validate:"required,gradetype"`
	MaxMarks       int       `json:"max_marks" validate:"gt=0"`
	MarksObtained  int       `json:"marks_obtained" validate:"gte=0"`
	DateGraded     core.Date `json:"date_graded" validate:"required"`
	Feedback       string    `json:"feedback"`
	Weight         float64   `json:"weight" validate:"gt=0"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.Subject = core.CleanString(ng.Subject)
	ng.AssessmentName = core.CleanString(ng.AssessmentName)
	ng.Feedback = core.CleanString(ng.Feedback)
	if ng.Type == "" {
		ng.Type = TypeAssignment
	}
	return validate.Struct(ng)
}

// Grade returns the grade to store, with its letter derived from the marks.
func (ng NewGrade) Grade() (Grade, error) {
	letter, err := grading.LetterFor(ng.MarksObtained, ng.MaxMarks)
	if err != nil {
		return Grade{}, err
	}
	return Grade{
		Subject:        ng.Subject,
		AssessmentName: ng.AssessmentName,
		Type:           ng.Type,
		MaxMarks:       ng.MaxMarks,
		MarksObtained:  ng.MarksObtained,
		Letter:         letter,
		DateGraded:     ng.DateGraded,
		Feedback:       ng.Feedback,
		Weight:         ng.Weight,
	}, nil
}

// UpdateGrade defines what information may be provided to modify an existing Grade.
// Nil fields are left unchanged. Letter is set by the store when the marks change.
type UpdateGrade struct {
	Subject        *string    `json:"subject" validate:"omitempty,subject"`
	AssessmentName *string    `json:"assessment_name" validate:"omitempty,notblank"`
	Type           *string    `json:"type" validate:"omitempty,gradetype"`
	MaxMarks       *int       `json:"max_marks" validate:"omitempty,gt=0"`
	MarksObtained  *int       `json:"marks_obtained" validate:"omitempty,gte=0"`
	DateGraded     *core.Date `json:"date_graded"`
	Feedback       *string    `json:"feedback"`
	Weight         *float64   `json:"weight" validate:"omitempty,gt=0"`
	Letter         *string    `json:"-"`
}

func (ug *UpdateGrade) Validate(validate *validator.Validate) error {
	ug.Subject = core.CleanStringPtr(ug.Subject)
	ug.AssessmentName = core.CleanStringPtr(ug.AssessmentName)
	ug.Feedback = core.CleanStringPtr(ug.Feedback)
	if ug.DateGraded != nil && ug.DateGraded.IsZero() {
		return core.NewValidationError(nil, core.FieldError{Field: "date_graded", Error: "this field cannot be blank"})
	}
	return validate.Struct(ug)
}

func (ug UpdateGrade) IsEmpty() bool {
	return ug.Subject == nil && ug.AssessmentName == nil && ug.Type == nil && ug.MaxMarks == nil &&
		ug.MarksObtained == nil && ug.DateGraded == nil && ug.Feedback == nil && ug.Weight == nil
}

func (ug UpdateGrade) changesMarks() bool {
	return ug.MaxMarks != nil || ug.MarksObtained != nil
}

// Apply merges the provided fields into g.
func (ug UpdateGrade) Apply(g *Grade) {
	if ug.Subject != nil {
		g.Subject = *ug.Subject
	}
	if ug.AssessmentName != nil {
		g.AssessmentName = *ug.AssessmentName
	}
	if ug.Type != nil {
		g.Type = *ug.Type
	}
	if ug.MaxMarks != nil {
		g.MaxMarks = *ug.MaxMarks
	}
	if ug.MarksObtained != nil {
		g.MarksObtained = *ug.MarksObtained
	}
	if ug.DateGraded != nil {
		g.DateGraded = *ug.DateGraded
	}
	if ug.Feedback != nil {
		g.Feedback = *ug.Feedback
	}
	if ug.Weight != nil {
		g.Weight = *ug.Weight
	}
	if ug.Letter != nil {
		g.Letter = *ug.Letter
	}
}
