package dummydb

import (
	"context"

	"github.com/trezcool/agendai/core/schedule"
)

type scheduleRepository struct {
	db *scheduleTable
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db.schedule}
}

func (repo *scheduleRepository) QueryEntries(_ context.Context, userID string) ([]schedule.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := make([]schedule.Entry, 0)
	for _, e := range repo.db.table {
		if e.UserID == userID {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}
