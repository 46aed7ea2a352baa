package sqlxrepos

import (
	"database/sql"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/homework"
	"github.com/trezcool/agendai/core/schedule"
	"github.com/trezcool/agendai/core/trend"
	"github.com/trezcool/agendai/core/week"
)

func TestWhereClause(t *testing.T) {
	where := new(whereClause)
	assert.Equal(t, "", where.String())

	where.add("user_id = ?", "u1")
	where.add("NOT completed")
	where.add("subject = ?", "Maths")
	assert.Equal(t, " WHERE user_id = ? AND NOT completed AND subject = ?", where.String())
	assert.Equal(t, []interface{}{"u1", "Maths"}, where.args)

	assert.Equal(t, " ORDER BY due_at ASC, title ASC", orderBy(taskOrdering))
}

func TestTrapNoRowsErr(t *testing.T) {
	assert.Equal(t, homework.ErrNotFound, trapNoRowsErr(sql.ErrNoRows, homework.ErrNotFound, "getting task"))

	err := trapNoRowsErr(sql.ErrConnDone, homework.ErrNotFound, "getting task")
	assert.True(t, core.IsShutdown(err))
	assert.EqualError(t, err, "getting task: database connection is closed")

	other := errors.New("syntax error")
	err = trapNoRowsErr(other, homework.ErrNotFound, "getting task")
	assert.False(t, core.IsShutdown(err))
	assert.EqualError(t, err, "getting task: syntax error")

	assert.True(t, core.IsShutdown(wrapDBErr(sql.ErrConnDone, "selecting grades")))
}

func TestTaskRow(t *testing.T) {
	at := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	task := homework.Task{
		ID:          "id",
		UserID:      "uid",
		Subject:     "Maths",
		Title:       "Quiz",
		DueAt:       at.In(time.FixedZone("WAT", 3600)),
		Completed:   true,
		CompletedAt: &at,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	row := newTaskRow(task)
	assert.False(t, row.Description.Valid)
	assert.True(t, row.CompletedAt.Valid)

	got := row.task()
	assert.Equal(t, at, got.DueAt)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, at, *got.CompletedAt)
	assert.Nil(t, taskRow{}.task().CompletedAt)
}

func TestScheduleRow(t *testing.T) {
	tests := []struct {
		name    string
		row     scheduleRow
		wantDay week.DayIndex
		wantErr bool
	}{
		{name: "sunday", row: scheduleRow{DayOfWeek: 0, StartTime: 480, EndTime: 540}, wantDay: week.Sunday},
		{name: "monday", row: scheduleRow{DayOfWeek: 1, StartTime: 480, EndTime: 540, Room: null.StringFrom("B12")}, wantDay: week.Monday},
		{name: "bad day", row: scheduleRow{DayOfWeek: 7, StartTime: 480, EndTime: 540}, wantErr: true},
		{name: "bad window", row: scheduleRow{DayOfWeek: 2, StartTime: 540, EndTime: 480}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.row.entry()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDay, e.Day)
			assert.Equal(t, schedule.Window{Start: 480, End: 540}, e.Window)
			assert.Equal(t, tt.row.Room.String, e.Room)
		})
	}
}

func TestTrendRow(t *testing.T) {
	st, ok := trendRow{Subject: "Maths", Direction: "UP", Previous: null.Float64From(12), SampleCount: null.IntFrom(3)}.subjectTrend()
	require.True(t, ok)
	assert.Equal(t, trend.Up, st.Direction)
	assert.Equal(t, 3, st.SampleCount)

	st, ok = trendRow{Subject: "Art", Direction: "stable"}.subjectTrend()
	require.True(t, ok)
	assert.Equal(t, 1, st.SampleCount)

	_, ok = trendRow{Direction: "sideways"}.subjectTrend()
	assert.False(t, ok)
}
