package sqlxrepos

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/grade"
)

var gradeColumns = []string{
	"id", "subject", "assessment_name", "type", "max_marks", "marks_obtained", "grade", "date_graded", "feedback", "weight",
}

type gradeRow struct {
	ID             string      `db:"id"`
	Subject        string      `db:"subject"`
	AssessmentName string      `db:"assessment_name"`
	Type           string      `db:"type"`
	MaxMarks       int         `db:"max_marks"`
	MarksObtained  int         `db:"marks_obtained"`
	Grade          string      `db:"grade"`
	DateGraded     core.Date   `db:"date_graded"`
	Feedback       null.String `db:"feedback"`
	Weight         float64     `db:"weight"`
}

func (r gradeRow) grade() grade.Grade {
	return grade.Grade{
		ID:             r.ID,
		Subject:        r.Subject,
		AssessmentName: r.AssessmentName,
		Type:           r.Type,
		MaxMarks:       r.MaxMarks,
		MarksObtained:  r.MarksObtained,
		Letter:         r.Grade,
		DateGraded:     r.DateGraded,
		Feedback:       r.Feedback.String,
		Weight:         r.Weight,
	}
}

type gradeRepository struct {
	conn
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func (repo *gradeRepository) QueryGrades(ctx context.Context, userID string, ord core.DBOrdering) ([]grade.Grade, error) {
	order, err := orderBy(ord, "date_graded")
	if err != nil {
		return nil, err
	}
	var rows []gradeRow
	b := psql.Select(gradeColumns...).From("grades").Where(sq.Eq{"user_id": userID}).OrderBy(order, "created_at")
	if err := repo.selectRows(ctx, &rows, b); err != nil {
		return nil, errors.Wrap(err, "selecting grades")
	}

	grades := make([]grade.Grade, 0, len(rows))
	for _, r := range rows {
		grades = append(grades, r.grade())
	}
	return grades, nil
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, userID string, g grade.Grade) (grade.Grade, error) {
	b := psql.Insert("grades").
		Columns("id", "user_id", "subject", "assessment_name", "type", "max_marks", "marks_obtained", "grade", "date_graded", "feedback", "weight").
		Values(uuid.NewString(), userID, g.Subject, g.AssessmentName, g.Type, g.MaxMarks, g.MarksObtained, g.Letter, g.DateGraded,
			nullString(g.Feedback), g.Weight).
		Suffix("RETURNING " + strings.Join(gradeColumns, ", "))

	var r gradeRow
	if err := repo.getRow(ctx, &r, b); err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return r.grade(), nil
}

func updateGradeQuery(id, userID string, ug grade.UpdateGrade) sq.UpdateBuilder {
	set := map[string]interface{}{"updated_at": sq.Expr("now()")}
	if ug.Subject != nil {
		set["subject"] = *ug.Subject
	}
	if ug.AssessmentName != nil {
		set["assessment_name"] = *ug.AssessmentName
	}
	if ug.Type != nil {
		set["type"] = *ug.Type
	}
	if ug.MaxMarks != nil {
		set["max_marks"] = *ug.MaxMarks
	}
	if ug.MarksObtained != nil {
		set["marks_obtained"] = *ug.MarksObtained
	}
	if ug.Letter != nil {
		set["grade"] = *ug.Letter
	}
	if ug.DateGraded != nil {
		set["date_graded"] = *ug.DateGraded
	}
	if ug.Feedback != nil {
		set["feedback"] = nullString(*ug.Feedback)
	}
	if ug.Weight != nil {
		set["weight"] = *ug.Weight
	}
	return psql.Update("grades").SetMap(set).Where(sq.Eq{"id": id, "user_id": userID})
}

func (repo *gradeRepository) UpdateGrade(ctx context.Context, id, userID string, ug grade.UpdateGrade) error {
	uid, ok := rowID(id)
	if !ok {
		return grade.ErrNotFound
	}
	if err := repo.exec(ctx, updateGradeQuery(uid, userID, ug), grade.ErrNotFound); err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return nil
}

func (repo *gradeRepository) DeleteGrade(ctx context.Context, id, userID string) error {
	uid, ok := rowID(id)
	if !ok {
		return grade.ErrNotFound
	}
	b := psql.Delete("grades").Where(sq.Eq{"id": uid, "user_id": userID})
	if err := repo.exec(ctx, b, grade.ErrNotFound); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return nil
}
