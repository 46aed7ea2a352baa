package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/homework"
)

const taskColumns = "id, user_id, subject, title, description, due_at, completed, completed_at, created_at, updated_at"

var taskOrdering = []core.DBOrdering{
	{Field: "due_at", Ascending: true},
	{Field: "title", Ascending: true},
}

type taskRow struct {
	ID          string      `db:"id"`
	UserID      string      `db:"user_id"`
	Subject     string      `db:"subject"`
	Title       string      `db:"title"`
	Description null.String `db:"description"`
	DueAt       time.Time   `db:"due_at"`
	Completed   bool        `db:"completed"`
	CompletedAt null.Time   `db:"completed_at"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func newTaskRow(t homework.Task) taskRow {
	return taskRow{
		ID:          t.ID,
		UserID:      t.UserID,
		Subject:     t.Subject,
		Title:       t.Title,
		Description: null.NewString(t.Description, t.Description != ""),
		DueAt:       t.DueAt.UTC(),
		Completed:   t.Completed,
		CompletedAt: null.TimeFromPtr(t.CompletedAt),
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func (r taskRow) task() homework.Task {
	t := homework.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		Subject:     r.Subject,
		Title:       r.Title,
		Description: r.Description.String,
		DueAt:       r.DueAt.UTC(),
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
	if r.CompletedAt.Valid {
		at := r.CompletedAt.Time.UTC()
		t.CompletedAt = &at
	}
	return t
}

type taskRepository struct {
	exec core.DBExecutor
}

var _ homework.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(exec core.DBExecutor) homework.Repository {
	return &taskRepository{exec: exec}
}

func (repo *taskRepository) QueryTasks(ctx context.Context, userID string, filter homework.QueryFilter) ([]homework.Task, error) {
	if !validID(userID) {
		return []homework.Task{}, nil
	}

	where := new(whereClause)
	where.add("user_id = ?", userID)
	switch filter.Status {
	case homework.StatusPending:
		where.add("NOT completed")
	case homework.StatusCompleted:
		where.add("completed")
	}
	if filter.Subject != "" {
		where.add("subject = ?", filter.Subject)
	}

	q := "SELECT " + taskColumns + " FROM tasks" + where.String() + orderBy(taskOrdering)
	var rows []taskRow
	if err := repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(q), where.args...); err != nil {
		return nil, wrapDBErr(err, "selecting tasks")
	}

	tasks := make([]homework.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.task())
	}
	return tasks, nil
}

func (repo *taskRepository) GetTask(ctx context.Context, userID, id string) (homework.Task, error) {
	if !validID(userID) || !validID(id) {
		return homework.Task{}, homework.ErrNotFound
	}

	q := "SELECT " + taskColumns + " FROM tasks WHERE id = ? AND user_id = ?"
	var row taskRow
	if err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(q), id, userID); err != nil {
		return homework.Task{}, trapNoRowsErr(err, homework.ErrNotFound, "selecting task")
	}
	return row.task(), nil
}

func (repo *taskRepository) CreateTask(ctx context.Context, task homework.Task) (homework.Task, error) {
	task.ID = uuid.New().String()
	r := newTaskRow(task)

	q := "INSERT INTO tasks (" + taskColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(q),
		r.ID, r.UserID, r.Subject, r.Title, r.Description, r.DueAt, r.Completed, r.CompletedAt, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return homework.Task{}, wrapDBErr(err, "inserting task")
	}
	return r.task(), nil
}

func (repo *taskRepository) CompleteTask(ctx context.Context, userID, id string, at time.Time) (homework.Task, error) {
	if !validID(userID) || !validID(id) {
		return homework.Task{}, homework.ErrNotFound
	}

	q := "UPDATE tasks SET completed = true, completed_at = ?, updated_at = ? WHERE id = ? AND user_id = ? AND NOT completed RETURNING " + taskColumns
	var row taskRow
	if err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(q), at.UTC(), at.UTC(), id, userID); err != nil {
		err = trapNoRowsErr(err, homework.ErrNotFound, "completing task")
		if err != homework.ErrNotFound {
			return homework.Task{}, err
		}
		// no row updated: either missing or completed already
		if _, getErr := repo.GetTask(ctx, userID, id); getErr != nil {
			return homework.Task{}, getErr
		}
		return homework.Task{}, homework.ErrAlreadyCompleted
	}
	return row.task(), nil
}

func (repo *taskRepository) RescheduleTask(ctx context.Context, userID, id string, dueAt, at time.Time) (homework.Task, error) {
	if !validID(userID) || !validID(id) {
		return homework.Task{}, homework.ErrNotFound
	}

	q := "UPDATE tasks SET due_at = ?, updated_at = ? WHERE id = ? AND user_id = ? RETURNING " + taskColumns
	var row taskRow
	if err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(q), dueAt.UTC(), at.UTC(), id, userID); err != nil {
		return homework.Task{}, trapNoRowsErr(err, homework.ErrNotFound, "rescheduling task")
	}
	return row.task(), nil
}
