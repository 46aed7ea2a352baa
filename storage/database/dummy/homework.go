package dummydb

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/agendai/core/homework"
)

type taskRepository struct {
	db *taskTable
}

var _ homework.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *DB) homework.Repository {
	return &taskRepository{db: db.task}
}

func (repo *taskRepository) QueryTasks(_ context.Context, userID string, filter homework.QueryFilter) ([]homework.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tasks := make([]homework.Task, 0)
	for _, t := range repo.db.table {
		if t.UserID != userID {
			continue
		}
		if filter.Subject != "" && t.Subject != filter.Subject {
			continue
		}
		switch filter.Status {
		case homework.StatusPending:
			if t.Completed {
				continue
			}
		case homework.StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (repo *taskRepository) GetTask(_ context.Context, userID, id string) (homework.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.table[id]; ok && t.UserID == userID {
		return *t, nil
	}
	return homework.Task{}, homework.ErrNotFound
}

func (repo *taskRepository) CreateTask(_ context.Context, task homework.Task) (homework.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	task.ID = uuid.New().String()
	repo.db.table[task.ID] = &task
	return task, nil
}

func (repo *taskRepository) CompleteTask(_ context.Context, userID, id string, at time.Time) (homework.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	t, ok := repo.db.table[id]
	if !ok || t.UserID != userID {
		return homework.Task{}, homework.ErrNotFound
	}
	if t.Completed {
		return homework.Task{}, homework.ErrAlreadyCompleted
	}
	t.Completed = true
	t.CompletedAt = &at
	t.UpdatedAt = at
	return *t, nil
}

func (repo *taskRepository) RescheduleTask(_ context.Context, userID, id string, dueAt, at time.Time) (homework.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	t, ok := repo.db.table[id]
	if !ok || t.UserID != userID {
		return homework.Task{}, homework.ErrNotFound
	}
	t.DueAt = dueAt
	t.UpdatedAt = at
	return *t, nil
}
