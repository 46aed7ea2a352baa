package tests

import (
	"context"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/due"
	"github.com/trezcool/agendai/core/homework"
	"github.com/trezcool/agendai/services/email"
)

const (
	labReportID = "3f1d1f0e-1a2b-4c3d-8e9f-000000000001"
	quizPrepID  = "3f1d1f0e-1a2b-4c3d-8e9f-000000000002"
	exercisesID = "3f1d1f0e-1a2b-4c3d-8e9f-000000000003"
	essayID     = "3f1d1f0e-1a2b-4c3d-8e9f-000000000004"
)

func homeworkPath(suffix string) string {
	return "/v1/users/" + uid + "/homework" + suffix
}

func titles(views []homework.TaskView) []string {
	res := make([]string, len(views))
	for i, v := range views {
		res[i] = v.Title
	}
	return res
}

func Test_homeworkApi_query(t *testing.T) {
	server, _ := setup(t)

	tests := []struct {
		name       string
		query      string
		wantTitles []string
		wantTiers  []due.Tier
	}{
		{
			name:       "pending by default",
			query:      "?" + nowParam,
			wantTitles: []string{"Lab report", "Quiz prep", "Exercises p.42"},
			wantTiers:  []due.Tier{due.Overdue, due.DueToday, due.Normal},
		},
		{
			name:       "all",
			query:      "?status=all&" + nowParam,
			wantTitles: []string{"Essay", "Lab report", "Quiz prep", "Exercises p.42"},
			wantTiers:  []due.Tier{"", due.Overdue, due.DueToday, due.Normal},
		},
		{
			name:       "completed",
			query:      "?status=completed&" + nowParam,
			wantTitles: []string{"Essay"},
			wantTiers:  []due.Tier{""},
		},
		{
			name:       "by tier",
			query:      "?tier=overdue&tier=dueToday&" + nowParam,
			wantTitles: []string{"Lab report", "Quiz prep"},
			wantTiers:  []due.Tier{due.Overdue, due.DueToday},
		},
		{
			name:       "by subject",
			query:      "?subject=Maths&" + nowParam,
			wantTitles: []string{"Quiz prep", "Exercises p.42"},
			wantTiers:  []due.Tier{due.DueToday, due.Normal},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, server, httpTest{method: http.MethodGet, path: homeworkPath(tt.query)})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var got []homework.TaskView
			decode(t, rec, &got)
			assert.Equal(t, tt.wantTitles, titles(got))

			tiers := make([]due.Tier, len(got))
			for i, v := range got {
				if v.Status != nil {
					tiers[i] = v.Status.Tier
				}
			}
			assert.Equal(t, tt.wantTiers, tiers)
		})
	}
}

func Test_homeworkApi_errors(t *testing.T) {
	server, _ := setup(t)
	notFound := marchallObj(t, httpErr{Error: "not found"})

	tests := []httpTest{
		{
			name:     "bad status",
			method:   http.MethodGet,
			path:     homeworkPath("?status=late"),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"status": "must be one of pending, completed, all"}`),
		},
		{
			name:     "bad tier",
			method:   http.MethodGet,
			path:     homeworkPath("?tier=soon"),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"tier": "invalid tier \"soon\""}`),
		},
		{
			name:     "bad now",
			method:   http.MethodGet,
			path:     homeworkPath("?now=noon"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "user id is not a uuid",
			method:   http.MethodGet,
			path:     "/v1/users/42/homework",
			wantCode: http.StatusNotFound,
			wantData: notFound,
		},
		{
			name:     "unknown task",
			method:   http.MethodGet,
			path:     homeworkPath("/3f1d1f0e-1a2b-4c3d-8e9f-0000000000ff"),
			wantCode: http.StatusNotFound,
			wantData: notFound,
		},
		{
			name:     "complete twice",
			method:   http.MethodPost,
			path:     homeworkPath("/" + essayID + "/complete?" + nowParam),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "task already completed"}),
		},
		{
			name:     "reschedule completed",
			method:   http.MethodPut,
			path:     homeworkPath("/" + essayID + "/due?" + nowParam),
			body:     []byte(`{"due_at": "2026-10-20"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "cannot reschedule a completed task"}),
		},
		{
			name:     "reschedule without due_at",
			method:   http.MethodPut,
			path:     homeworkPath("/" + exercisesID + "/due"),
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"due_at": "this field is required"}`),
		},
		{
			name:     "create blank",
			method:   http.MethodPost,
			path:     homeworkPath(""),
			body:     []byte(`{"subject": "  ", "title": "Portfolio", "due_at": "next week"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"subject": "this field cannot be blank", "due_at": "invalid timestamp, expected ISO-8601 (e.g. 2006-01-02T15:04:05Z)"}`),
		},
		{
			name:     "reminders bad email",
			method:   http.MethodPost,
			path:     homeworkPath("/reminders"),
			body:     []byte(`{"email": "ada"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email": "email must be a valid email address"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, serve(t, server, tt))
		})
	}
}

func Test_homeworkApi_lifecycle(t *testing.T) {
	server, _ := setup(t)

	// create
	rec := serve(t, server, httpTest{
		method: http.MethodPost,
		path:   homeworkPath("?" + nowParam),
		body:   []byte(`{"subject": "Art", "title": " Portfolio ", "due_at": "2026-10-17T12:00:00Z"}`),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created homework.Task
	decode(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Portfolio", created.Title)
	assert.False(t, created.Completed)

	// retrieve
	rec = serve(t, server, httpTest{method: http.MethodGet, path: homeworkPath("/" + created.ID + "?" + nowParam)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view homework.TaskView
	decode(t, rec, &view)
	require.NotNil(t, view.Status)
	assert.Equal(t, due.Status{DaysUntil: 2, Tier: due.Warning, Label: "Due in 2 days"}, *view.Status)

	// reschedule
	rec = serve(t, server, httpTest{
		method: http.MethodPut,
		path:   homeworkPath("/" + created.ID + "/due?" + nowParam),
		body:   []byte(`{"due_at": "2026-10-16T08:00:00Z"}`),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = serve(t, server, httpTest{method: http.MethodGet, path: homeworkPath("/" + created.ID + "?" + nowParam)})
	decode(t, rec, &view)
	require.NotNil(t, view.Status)
	assert.Equal(t, due.DueTomorrow, view.Status.Tier)

	// complete
	rec = serve(t, server, httpTest{method: http.MethodPost, path: homeworkPath("/" + created.ID + "/complete?" + nowParam)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var completed homework.Task
	decode(t, rec, &completed)
	assert.True(t, completed.Completed)
	require.NotNil(t, completed.CompletedAt)

	rec = serve(t, server, httpTest{method: http.MethodGet, path: homeworkPath("/" + created.ID + "?" + nowParam)})
	view = homework.TaskView{}
	decode(t, rec, &view)
	assert.Nil(t, view.Status)
}

func Test_homeworkApi_sendReminders(t *testing.T) {
	server, _ := setup(t)

	rec := serve(t, server, httpTest{
		method: http.MethodPost,
		path:   homeworkPath("/reminders?" + nowParam),
		body:   []byte(`{"email": "ada@example.com", "name": "Ada"}`),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"sent": 2}`, rec.Body.String())

	require.Len(t, emailsvc.SentMessages, 1)
	msg := emailsvc.SentMessages[0]
	assert.Equal(t, "ada@example.com", msg.To[0].Address)
	assert.Contains(t, msg.TextContent, "Lab report")
	assert.Contains(t, msg.TextContent, "Quiz prep")
	assert.NotContains(t, msg.TextContent, "Exercises")

	// no urgent task, no email
	rec = serve(t, server, httpTest{
		method: http.MethodPost,
		path:   "/v1/users/0b4a2a8e-6f7e-4a4e-9b1c-000000000000/homework/reminders?" + nowParam,
		body:   []byte(`{"email": "ada@example.com"}`),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"sent": 0}`, rec.Body.String())
	assert.Len(t, emailsvc.SentMessages, 1)
}

// closedTaskRepo fails every call the way the postgres repository does once its pool is closed.
type closedTaskRepo struct{}

var errPoolClosed = core.NewShutdownError("database connection is closed")

func (closedTaskRepo) QueryTasks(context.Context, string, homework.QueryFilter) ([]homework.Task, error) {
	return nil, errPoolClosed
}
func (closedTaskRepo) GetTask(context.Context, string, string) (homework.Task, error) {
	return homework.Task{}, errPoolClosed
}
func (closedTaskRepo) CreateTask(context.Context, homework.Task) (homework.Task, error) {
	return homework.Task{}, errPoolClosed
}
func (closedTaskRepo) CompleteTask(context.Context, string, string, time.Time) (homework.Task, error) {
	return homework.Task{}, errPoolClosed
}
func (closedTaskRepo) RescheduleTask(context.Context, string, string, time.Time, time.Time) (homework.Task, error) {
	return homework.Task{}, errPoolClosed
}

func Test_homeworkApi_shutsDownOnClosedDatabase(t *testing.T) {
	server, _ := setupWithTaskRepo(t, closedTaskRepo{})

	rec := serve(t, server, httpTest{method: http.MethodGet, path: homeworkPath("?" + nowParam)})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	select {
	case sig := <-server.ShutdownSignal():
		assert.Equal(t, syscall.SIGTERM, sig)
	default:
		t.Fatal("server was not signaled to shut down")
	}
}
