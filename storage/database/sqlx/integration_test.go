package sqlxrepos_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/homework"
	"github.com/trezcool/agendai/core/schedule"
	"github.com/trezcool/agendai/core/week"
	logsvc "github.com/trezcool/agendai/services/logger"
	"github.com/trezcool/agendai/storage/database/sqlx"
	"github.com/trezcool/agendai/tests"
)

func TestTaskRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := sqlxrepos.NewTaskRepository(db)
	ctx := context.Background()
	now := testutil.Now

	late := testutil.CreateTask(t, repo, testutil.UserID, "Physics", "Lab report", now.AddDate(0, 0, -1))
	soon := testutil.CreateTask(t, repo, testutil.UserID, "Maths", "Quiz prep", now.AddDate(0, 0, 1))
	done := testutil.CreateTask(t, repo, testutil.UserID, "Maths", "Essay", now.AddDate(0, 0, -4), true)

	pending, err := repo.QueryTasks(ctx, testutil.UserID, homework.QueryFilter{Status: homework.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, late.ID, pending[0].ID)
	assert.Equal(t, soon.ID, pending[1].ID)

	maths, err := repo.QueryTasks(ctx, testutil.UserID, homework.QueryFilter{Status: homework.StatusAll, Subject: "Maths"})
	require.NoError(t, err)
	assert.Len(t, maths, 2)

	got, err := repo.GetTask(ctx, testutil.UserID, done.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)

	moved, err := repo.RescheduleTask(ctx, testutil.UserID, soon.ID, now.AddDate(0, 0, 9), now)
	require.NoError(t, err)
	assert.True(t, now.AddDate(0, 0, 9).Equal(moved.DueAt))

	_, err = repo.CompleteTask(ctx, testutil.UserID, done.ID, now.Add(time.Hour))
	assert.Equal(t, homework.ErrAlreadyCompleted, err)
	again, err := repo.GetTask(ctx, testutil.UserID, done.ID)
	require.NoError(t, err)
	assert.True(t, got.CompletedAt.Equal(*again.CompletedAt))

	_, err = repo.CompleteTask(ctx, testutil.UserID, "0b4a2a8e-6f7e-4a4e-9b1c-000000000000", now)
	assert.Equal(t, homework.ErrNotFound, err)

	_, err = repo.GetTask(ctx, testutil.UserID, "not-a-uuid")
	assert.Equal(t, homework.ErrNotFound, err)
	_, err = repo.GetTask(ctx, "0b4a2a8e-6f7e-4a4e-9b1c-000000000000", late.ID)
	assert.Equal(t, homework.ErrNotFound, err)
}

func TestScheduleRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, db.Rebind(
		`INSERT INTO schedule_entries (user_id, subject, day_of_week, start_time, end_time) VALUES
		(?, 'Maths', 4, '08:00', '09:30'),
		(?, 'Sport', 0, '10:00', '11:00'),
		(?, 'Broken', 2, '10:00', '09:00')`),
		testutil.UserID, testutil.UserID, testutil.UserID,
	)
	require.NoError(t, err)

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), core.NewConfig())
	logger.Enable(false)
	entries, err := sqlxrepos.NewScheduleRepository(db, logger).QueryEntries(ctx, testutil.UserID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byDay := map[week.DayIndex]schedule.Entry{}
	for _, e := range entries {
		byDay[e.Day] = e
	}
	assert.Equal(t, "Maths", byDay[week.Thursday].Subject)
	assert.Equal(t, schedule.Window{Start: 480, End: 570}, byDay[week.Thursday].Window)
	assert.Equal(t, "Sport", byDay[week.Sunday].Subject)
}
