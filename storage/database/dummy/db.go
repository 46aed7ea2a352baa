package dummydb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/agendai/core/grade"
	"github.com/trezcool/agendai/core/homework"
	"github.com/trezcool/agendai/core/schedule"
)

type (
	// DB is an in-memory data store, used in debug mode and tests.
	DB struct {
		task     *taskTable
		grade    *gradeTable
		schedule *scheduleTable
	}

	taskTable struct {
		sync.RWMutex
		table map[string]*homework.Task
	}

	gradeTable struct {
		sync.RWMutex
		table  map[string]*grade.Grade
		trends map[string][]grade.SubjectTrend // by user ID
	}

	scheduleTable struct {
		sync.RWMutex
		table map[string]*schedule.Entry
	}
)

func NewDB() *DB {
	return &DB{
		task:     &taskTable{table: make(map[string]*homework.Task)},
		grade:    &gradeTable{table: make(map[string]*grade.Grade), trends: make(map[string][]grade.SubjectTrend)},
		schedule: &scheduleTable{table: make(map[string]*schedule.Entry)},
	}
}

// SeedTasks stores tasks as-is, generating missing IDs.
func (db *DB) SeedTasks(tasks ...homework.Task) []homework.Task {
	db.task.Lock()
	defer db.task.Unlock()

	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = uuid.New().String()
		}
		t := tasks[i]
		db.task.table[t.ID] = &t
	}
	return tasks
}

func (db *DB) SeedGrades(grades ...grade.Grade) []grade.Grade {
	db.grade.Lock()
	defer db.grade.Unlock()

	for i := range grades {
		if grades[i].ID == "" {
			grades[i].ID = uuid.New().String()
		}
		g := grades[i]
		db.grade.table[g.ID] = &g
	}
	return grades
}

func (db *DB) SeedTrends(userID string, trends ...grade.SubjectTrend) {
	db.grade.Lock()
	defer db.grade.Unlock()
	db.grade.trends[userID] = append(db.grade.trends[userID], trends...)
}

func (db *DB) SeedEntries(entries ...schedule.Entry) []schedule.Entry {
	db.schedule.Lock()
	defer db.schedule.Unlock()

	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.New().String()
		}
		e := entries[i]
		db.schedule.table[e.ID] = &e
	}
	return entries
}
