package dummydb

import (
	"context"

	"github.com/trezcool/agendai/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) QueryGrades(_ context.Context, userID string) ([]grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	grades := make([]grade.Grade, 0)
	for _, g := range repo.db.table {
		if g.UserID == userID {
			grades = append(grades, *g)
		}
	}
	return grades, nil
}

func (repo *gradeRepository) QueryTrends(_ context.Context, userID string) ([]grade.SubjectTrend, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	trends := make([]grade.SubjectTrend, len(repo.db.trends[userID]))
	copy(trends, repo.db.trends[userID])
	return trends, nil
}
