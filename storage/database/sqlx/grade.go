package sqlxrepos

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/grade"
	"github.com/trezcool/agendai/core/trend"
)

type (
	gradeRow struct {
		ID       string      `db:"id"`
		UserID   string      `db:"user_id"`
		Subject  string      `db:"subject"`
		Title    null.String `db:"title"`
		Value    float64     `db:"value"`
		GradedAt time.Time   `db:"graded_at"`
	}

	trendRow struct {
		Subject     string       `db:"subject"`
		Direction   string       `db:"direction"`
		Previous    null.Float64 `db:"previous_average"`
		SampleCount null.Int     `db:"sample_count"`
	}
)

func (r gradeRow) grade() grade.Grade {
	return grade.Grade{
		ID:       r.ID,
		UserID:   r.UserID,
		Subject:  r.Subject,
		Title:    r.Title.String,
		Value:    r.Value,
		GradedAt: r.GradedAt.UTC(),
	}
}

// subjectTrend drops rows with an unknown direction.
func (r trendRow) subjectTrend() (grade.SubjectTrend, bool) {
	dir, err := trend.ParseDirection(r.Direction)
	if err != nil {
		return grade.SubjectTrend{}, false
	}
	count := r.SampleCount.Int
	if count < 1 {
		count = 1
	}
	return grade.SubjectTrend{
		Subject:     r.Subject,
		Direction:   dir,
		Previous:    r.Previous.Float64,
		SampleCount: count,
	}, true
}

type gradeRepository struct {
	exec core.DBExecutor
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(exec core.DBExecutor) grade.Repository {
	return &gradeRepository{exec: exec}
}

func (repo *gradeRepository) QueryGrades(ctx context.Context, userID string) ([]grade.Grade, error) {
	if !validID(userID) {
		return []grade.Grade{}, nil
	}

	q := "SELECT id, user_id, subject, title, value, graded_at FROM grades WHERE user_id = ? ORDER BY graded_at DESC"
	var rows []gradeRow
	if err := repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(q), userID); err != nil {
		return nil, wrapDBErr(err, "selecting grades")
	}

	grades := make([]grade.Grade, 0, len(rows))
	for _, r := range rows {
		grades = append(grades, r.grade())
	}
	return grades, nil
}

func (repo *gradeRepository) QueryTrends(ctx context.Context, userID string) ([]grade.SubjectTrend, error) {
	if !validID(userID) {
		return []grade.SubjectTrend{}, nil
	}

	q := "SELECT subject, direction, previous_average, sample_count FROM grade_trends WHERE user_id = ?"
	var rows []trendRow
	if err := repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(q), userID); err != nil {
		return nil, wrapDBErr(err, "selecting grade trends")
	}

	trends := make([]grade.SubjectTrend, 0, len(rows))
	for _, r := range rows {
		if st, ok := r.subjectTrend(); ok {
			trends = append(trends, st)
		}
	}
	return trends, nil
}
