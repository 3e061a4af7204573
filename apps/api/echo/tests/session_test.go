package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/phoebuz/apps/api/echo"
	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/calendar"
	"github.com/trezcool/phoebuz/core/dashboard"
	"github.com/trezcool/phoebuz/core/grade"
	"github.com/trezcool/phoebuz/core/homework"
	"github.com/trezcool/phoebuz/core/session"
	testutil "github.com/trezcool/phoebuz/tests"
)

func Test_auth(t *testing.T) {
	app := setup(t)

	expired := echoapi.NewClaims(app.conf, alice)
	expired.ExpiresAt = time.Now().Add(-time.Minute).Unix()
	expiredToken, err := echoapi.GenerateToken(app.conf, expired)
	require.NoError(t, err)

	otherConf := testutil.NewConfig()
	otherConf.SecretKey = "not-the-secret"
	forgedToken, err := echoapi.GenerateToken(otherConf, echoapi.NewClaims(otherConf, alice))
	require.NoError(t, err)

	invalidJWT := httpErr{Error: "invalid or expired jwt"}
	app.run(t, []httpTest{
		{name: "subjects are public", path: "/v1/subjects", wantCode: http.StatusOK, wantData: marshallObj(t, core.Subjects)},
		{name: "missing token", path: "/v1/dashboard", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{name: "expired token", path: "/v1/dashboard", token: expiredToken, wantCode: http.StatusUnauthorized, wantData: marshallObj(t, invalidJWT)},
		{name: "forged token", path: "/v1/dashboard", token: forgedToken, wantCode: http.StatusUnauthorized, wantData: marshallObj(t, invalidJWT)},
		{
			name: "no subject", path: "/v1/dashboard", token: app.token(t, session.Identity{}),
			wantCode: http.StatusUnauthorized, wantData: marshallObj(t, httpErr{Error: session.ErrNoIdentity.Error()}),
		},
	})
	assert.Equal(t, 0, app.registry.Len())

	rec := app.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Phoebuz API!", rec.Body.String())
}

func Test_dashboardApi(t *testing.T) {
	app := setup(t)
	seedHomework(t, app, alice.ID,
		homework.Homework{Subject: "Math", Assignment: "Late", DueDate: today.AddDays(-1), AssignedDate: today.AddDays(-5), Status: homework.StatusNotStarted, Priority: homework.PriorityHigh},
		homework.Homework{Subject: "Art", Assignment: "Sketch", DueDate: today.AddDays(2), AssignedDate: today, Status: homework.StatusInProgress, Priority: homework.PriorityLow},
		homework.Homework{Subject: "PE", Assignment: "Log", DueDate: today.AddDays(9), AssignedDate: today, Status: homework.StatusNotStarted, Priority: homework.PriorityLow},
		homework.Homework{Subject: "English", Assignment: "Essay", DueDate: today.AddDays(1), AssignedDate: today, Status: homework.StatusCompleted, Priority: homework.PriorityMedium},
	)
	seedEvents(t, app, alice.ID,
		calendar.Event{Date: today.AddDays(3), EventType: calendar.TypeExam, Subject: "Science", Description: "Final", PreparationChecklist: []string{}},
		calendar.Event{Date: today.AddDays(1), EventType: calendar.TypeQuiz, Subject: "Math", Description: "Quiz", PreparationChecklist: []string{}},
	)
	seedGrades(t, app, alice.ID,
		grade.Grade{Subject: "Math", AssessmentName: "Quiz", Type: grade.TypeQuiz, MaxMarks: 10, MarksObtained: 8, DateGraded: today, Weight: 1},
	)
	token := app.token(t, alice)

	rec := app.do(http.MethodGet, "/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got dashboard.Summary
	unmarshall(t, rec, &got)

	assert.Equal(t, 1, got.OverdueCount)
	assert.Equal(t, 2, got.PendingCount)
	assert.Equal(t, 1, got.CompletedCount)
	require.NotNil(t, got.NextHomework)
	assert.Equal(t, "Sketch", got.NextHomework.Assignment)
	require.NotNil(t, got.NextExam)
	assert.Equal(t, "Final", got.NextExam.Description)
	assert.Equal(t, 80, got.OverallAverage)
	assert.Equal(t, "B+", got.OverallLetter)

	// the 9 day homework is out of the window
	kinds := make([]string, 0, len(got.UpcomingDeadlines))
	for _, d := range got.UpcomingDeadlines {
		kinds = append(kinds, d.Kind+":"+d.Subject)
	}
	assert.Equal(t, []string{"event:Math", "homework:Art", "event:Science"}, kinds)
}

func Test_sessionApi_reloadAndSignOut(t *testing.T) {
	app := setup(t)
	token := app.token(t, alice)

	rec := app.do(http.MethodGet, "/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, app.registry.Len())

	// written by another client: not seen until reloaded
	seedHomework(t, app, alice.ID,
		homework.Homework{Subject: "Math", Assignment: "New", DueDate: today.AddDays(2), AssignedDate: today, Status: homework.StatusNotStarted, Priority: homework.PriorityLow},
	)
	var summary dashboard.Summary
	unmarshall(t, app.do(http.MethodGet, "/v1/dashboard", token, nil), &summary)
	assert.Equal(t, 0, summary.PendingCount)

	rec = app.do(http.MethodPost, "/v1/session/reload", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	unmarshall(t, rec, &summary)
	assert.Equal(t, 1, summary.PendingCount)

	rec = app.do(http.MethodPost, "/v1/session/signout", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, app.registry.Len())

	// the token still opens a fresh workspace
	unmarshall(t, app.do(http.MethodGet, "/v1/dashboard", token, nil), &summary)
	assert.Equal(t, 1, summary.PendingCount)
	assert.Equal(t, 1, app.registry.Len())
}

func Test_remindersApi(t *testing.T) {
	app := setup(t)
	exam := seedEvents(t, app, alice.ID,
		calendar.Event{Date: today.AddDays(1), Time: "9:00 AM", EventType: calendar.TypeExam, Subject: "Science", Description: "Final", ReminderSet: true, PreparationChecklist: []string{"Revise"}},
		calendar.Event{Date: today.AddDays(1), EventType: calendar.TypeQuiz, Subject: "Math", Description: "Quiz", PreparationChecklist: []string{}},
		calendar.Event{Date: today.AddDays(2), EventType: calendar.TypeExam, Subject: "History", Description: "Midterm", ReminderSet: true, PreparationChecklist: []string{}},
	)[0]
	carol := session.Identity{ID: "carol"}
	seedEvents(t, app, carol.ID,
		calendar.Event{Date: today.AddDays(1), EventType: calendar.TypeExam, Subject: "Art", Description: "Portfolio", ReminderSet: true, PreparationChecklist: []string{}},
	)

	app.run(t, []httpTest{
		{
			name: "tomorrow's flagged events", method: http.MethodPost, path: "/v1/reminders", token: app.token(t, alice),
			wantCode: http.StatusOK, wantData: marshallObj(t, echoapi.RemindersResponse{Sent: []calendar.Event{exam}}),
		},
		{
			name: "nothing due", method: http.MethodPost, path: "/v1/reminders", token: app.token(t, bob),
			wantCode: http.StatusOK, wantData: []byte(`{"sent": []}`),
		},
		{
			name: "no email", method: http.MethodPost, path: "/v1/reminders", token: app.token(t, carol),
			wantCode: http.StatusBadRequest, wantData: marshallObj(t, map[string]string{"email": "identity has no email address"}),
		},
	})

	sent := app.mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, alice.Email, sent[0].To[0].Address)
	assert.Equal(t, "Exam tomorrow: Science", sent[0].Subject)
	assert.Contains(t, sent[0].TextContent, "Revise")
}

func Test_metrics(t *testing.T) {
	app := setup(t)
	token := app.token(t, alice)

	app.do(http.MethodGet, "/v1/dashboard", token, nil)
	app.do(http.MethodGet, "/v1/dashboard", token, nil)
	app.do(http.MethodGet, "/v1/homework/nope", token, nil)
	app.do(http.MethodGet, "/v1/dashboard", "", nil)

	families, err := app.metrics.Gather()
	require.NoError(t, err)

	counts := make(map[string]float64)
	var workspaces float64
	for _, mf := range families {
		switch mf.GetName() {
		case "phoebuz_api_requests_total":
			for _, m := range mf.GetMetric() {
				labels := make(map[string]string)
				for _, lp := range m.GetLabel() {
					labels[lp.GetName()] = lp.GetValue()
				}
				counts[labels["route"]+" "+labels["code"]] += m.GetCounter().GetValue()
			}
		case "phoebuz_open_workspaces":
			workspaces = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{
		"/v1/dashboard 200":    2,
		"/v1/homework/:id 404": 1,
		"/v1/dashboard 401":    1,
	}, counts)
	assert.Equal(t, float64(1), workspaces)
}
