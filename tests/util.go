package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/grade"
	"github.com/trezcool/agendai/core/homework"
	"github.com/trezcool/agendai/core/schedule"
	"github.com/trezcool/agendai/core/trend"
	"github.com/trezcool/agendai/core/week"
	"github.com/trezcool/agendai/storage/database"
	"github.com/trezcool/agendai/storage/database/dummy"
)

var (
	// Now is a Thursday mid-morning, used as the reference clock across tests.
	Now = time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC)

	UserID = "0b4a2a8e-6f7e-4a4e-9b1c-3d2f1a0e5c77"
)

// PrepareDB opens the configured postgres test database with empty tables.
// The test is skipped when the in-memory store is configured.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conf := core.NewConfig()
	if conf.Database.InMemory {
		t.Skip("postgres not configured (set TEST_DATABASE_INMEMORY=false)")
	}

	ctx := context.Background()
	db, err := database.Open(ctx, conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	if err = database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() migrating: %v", err)
	}
	if _, err = db.ExecContext(ctx, "TRUNCATE tasks, grades, grade_trends, schedule_entries"); err != nil {
		t.Fatalf("PrepareDB() truncating tables: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("db.Close(): %v", err)
		}
	})
	return db
}

func CreateTask(t *testing.T, repo homework.Repository, userID, subject, title string, dueAt time.Time, completed ...bool) homework.Task {
	t.Helper()

	task, err := repo.CreateTask(context.Background(), homework.Task{
		UserID:    userID,
		Subject:   subject,
		Title:     title,
		DueAt:     dueAt.UTC(),
		CreatedAt: Now,
		UpdatedAt: Now,
	})
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}
	if len(completed) > 0 && completed[0] {
		if task, err = repo.CompleteTask(context.Background(), userID, task.ID, Now); err != nil {
			t.Fatalf("CreateTask() completing: %v", err)
		}
	}
	return task
}

// SeedDummy fills db with a small student week relative to Now.
func SeedDummy(db *dummydb.DB, userID string) {
	db.SeedTasks(
		homework.Task{ID: "3f1d1f0e-1a2b-4c3d-8e9f-000000000001", UserID: userID, Subject: "Physics", Title: "Lab report", DueAt: Now.AddDate(0, 0, -1)},
		homework.Task{ID: "3f1d1f0e-1a2b-4c3d-8e9f-000000000002", UserID: userID, Subject: "Maths", Title: "Quiz prep", DueAt: time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)},
		homework.Task{ID: "3f1d1f0e-1a2b-4c3d-8e9f-000000000003", UserID: userID, Subject: "Maths", Title: "Exercises p.42", DueAt: Now.AddDate(0, 0, 5)},
		homework.Task{ID: "3f1d1f0e-1a2b-4c3d-8e9f-000000000004", UserID: userID, Subject: "History", Title: "Essay", DueAt: Now.AddDate(0, 0, -3), Completed: true},
	)
	db.SeedEntries(
		schedule.Entry{ID: "e1", UserID: userID, Subject: "Maths", Room: "B12", Day: week.Thursday, Window: schedule.Window{Start: 480, End: 570}},
		schedule.Entry{ID: "e2", UserID: userID, Subject: "Physics", Room: "Lab 1", Day: week.Thursday, Window: schedule.Window{Start: 600, End: 660}},
		schedule.Entry{ID: "e3", UserID: userID, Subject: "History", Room: "A03", Day: week.Friday, Window: schedule.Window{Start: 480, End: 540}},
	)
	db.SeedGrades(
		grade.Grade{ID: "g1", UserID: userID, Subject: "Maths", Title: "Test 1", Value: 14, GradedAt: Now.AddDate(0, 0, -14)},
		grade.Grade{ID: "g2", UserID: userID, Subject: "Maths", Title: "Test 2", Value: 16, GradedAt: Now.AddDate(0, 0, -7)},
		grade.Grade{ID: "g3", UserID: userID, Subject: "Physics", Title: "Quiz", Value: 11, GradedAt: Now.AddDate(0, 0, -5)},
	)
	db.SeedTrends(userID,
		grade.SubjectTrend{Subject: "Maths", Direction: trend.Up, Previous: 14.5, SampleCount: 2},
		grade.SubjectTrend{Subject: "Physics", Direction: trend.Stable, Previous: 11, SampleCount: 1},
	)
}
