package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/phoebuz/apps/api/echo"
	"github.com/trezcool/phoebuz/core/grade"
	"github.com/trezcool/phoebuz/core/grading"
)

func seedGrades(t *testing.T, app *testApp, userID string, grades ...grade.Grade) []grade.Grade {
	t.Helper()
	created := make([]grade.Grade, 0, len(grades))
	for _, g := range grades {
		letter, err := grading.LetterFor(g.MarksObtained, g.MaxMarks)
		require.NoError(t, err)
		g.Letter = letter
		g, err = app.repos.Grades.CreateGrade(ctx, userID, g)
		require.NoError(t, err)
		created = append(created, g)
	}
	return created
}

func Test_gradeApi_create(t *testing.T) {
	app := setup(t)
	token := app.token(t, alice)

	rec := app.do(http.MethodPost, "/v1/grades", token, []byte(`{
		"subject": "Science", "assessment_name": "Lab", "max_marks": 20, "marks_obtained": 19,
		"date_graded": "2024-04-09", "weight": 15
	}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var g grade.Grade
	unmarshall(t, rec, &g)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, grade.TypeAssignment, g.Type)
	assert.Equal(t, grading.LetterA, g.Letter)
	assert.Equal(t, today.AddDays(-1), g.DateGraded)

	app.run(t, []httpTest{
		{
			name: "zero max marks", method: http.MethodPost, path: "/v1/grades", token: token,
			body:     []byte(`{"subject": "Math", "assessment_name": "Quiz", "max_marks": 0, "marks_obtained": 0, "date_graded": "2024-04-09", "weight": 5}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "invalid type", method: http.MethodPost, path: "/v1/grades", token: token,
			body:     []byte(`{"subject": "Math", "assessment_name": "Quiz", "type": "Oral", "max_marks": 10, "marks_obtained": 5, "date_graded": "2024-04-09", "weight": 5}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"type": "invalid assessment type"}),
		},
		{
			name: "retrieve unknown", path: "/v1/grades/nope", token: token,
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "grade not found"}),
		},
	})
}

func Test_gradeApi_queryAndAverages(t *testing.T) {
	app := setup(t)
	grades := seedGrades(t, app, alice.ID,
		grade.Grade{Subject: "Math", AssessmentName: "Quiz", Type: grade.TypeQuiz, MaxMarks: 10, MarksObtained: 9, DateGraded: today.AddDays(-10), Weight: 10},
		grade.Grade{Subject: "Math", AssessmentName: "Exam", Type: grade.TypeExam, MaxMarks: 50, MarksObtained: 30, DateGraded: today.AddDays(-2), Weight: 30},
		grade.Grade{Subject: "English", AssessmentName: "Essay", Type: grade.TypeAssignment, MaxMarks: 20, MarksObtained: 17, DateGraded: today.AddDays(-5), Weight: 20},
	)
	quiz, exam, essay := grades[0], grades[1], grades[2]
	token := app.token(t, alice)

	overall := 73 // (90*10 + 60*30 + 85*20) / 60
	app.run(t, []httpTest{
		{
			name: "most recent first (default)", path: "/v1/grades", token: token,
			wantCode: http.StatusOK, wantData: marshallObj(t, []grade.Grade{exam, essay, quiz}),
		},
		{
			name: "weight", path: "/v1/grades?ordering=weight", token: token,
			wantCode: http.StatusOK, wantData: marshallObj(t, []grade.Grade{quiz, essay, exam}),
		},
		{
			name: "averages", path: "/v1/grades/averages", token: token, wantCode: http.StatusOK,
			wantData: marshallObj(t, echoapi.GradeAverages{
				Overall:  overall,
				Letter:   grading.LetterB,
				Standing: grading.Standing(overall),
				Subjects: grading.SubjectAverages(grades),
			}),
		},
	})

	rec := app.do(http.MethodGet, "/v1/grades/averages", token, nil)
	var avgs echoapi.GradeAverages
	unmarshall(t, rec, &avgs)
	require.Len(t, avgs.Subjects, 2)
	assert.Equal(t, "Math", avgs.Subjects[0].Subject.Name)
	assert.Equal(t, 68, avgs.Subjects[0].Average) // 67.5 rounds up
	assert.Equal(t, "English", avgs.Subjects[1].Subject.Name)
	assert.Equal(t, 85, avgs.Subjects[1].Average)
}

func Test_gradeApi_updateAndDestroy(t *testing.T) {
	app := setup(t)
	g := seedGrades(t, app, alice.ID,
		grade.Grade{Subject: "Math", AssessmentName: "Exam", Type: grade.TypeExam, MaxMarks: 50, MarksObtained: 30, DateGraded: today, Weight: 30},
	)[0]
	token := app.token(t, alice)
	path := "/v1/grades/" + g.ID

	rec := app.do(http.MethodPut, path, token, []byte(`{"marks_obtained": 45, "feedback": "Much better"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated grade.Grade
	unmarshall(t, rec, &updated)
	assert.Equal(t, 45, updated.MarksObtained)
	assert.Equal(t, grading.LetterA, updated.Letter)
	assert.Equal(t, "Much better", updated.Feedback)

	rows, err := app.repos.Grades.QueryGrades(ctx, alice.ID, grade.Ordering)
	require.NoError(t, err)
	assert.Equal(t, []grade.Grade{updated}, rows)

	app.run(t, []httpTest{
		{
			name: "zero max marks", method: http.MethodPut, path: path, token: token,
			body: []byte(`{"max_marks": 0}`), wantCode: http.StatusBadRequest,
		},
		{name: "destroy", method: http.MethodDelete, path: path, token: token, wantCode: http.StatusNoContent},
		{name: "destroy again", method: http.MethodDelete, path: path, token: token, wantCode: http.StatusNotFound},
	})
}
