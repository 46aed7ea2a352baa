package grade

import (
	"context"
	"sort"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core/trend"
)

type (
	Repository interface {
		QueryGrades(ctx context.Context, userID string) ([]Grade, error)
		QueryTrends(ctx context.Context, userID string) ([]SubjectTrend, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Catalog groups the user's grades by subject, with per-subject averages and trends.
func (svc *Service) Catalog(ctx context.Context, userID string, trans ut.Translator) (Catalog, error) {
	grades, err := svc.repo.QueryGrades(ctx, userID)
	if err != nil {
		return Catalog{}, errors.Wrap(err, "querying grades")
	}
	trends, err := svc.repo.QueryTrends(ctx, userID)
	if err != nil {
		return Catalog{}, errors.Wrap(err, "querying trends")
	}
	return BuildCatalog(grades, trends, trans), nil
}

// Average returns the user's overall average.
func (svc *Service) Average(ctx context.Context, userID string) (float64, error) {
	grades, err := svc.repo.QueryGrades(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "querying grades")
	}
	return BuildCatalog(grades, nil, nil).Average, nil
}

// BuildCatalog is the pure part of Catalog. The overall average is the mean of subject averages.
func BuildCatalog(grades []Grade, trends []SubjectTrend, trans ut.Translator) Catalog {
	bySubject := make(map[string][]Grade)
	for _, g := range grades {
		bySubject[g.Subject] = append(bySubject[g.Subject], g)
	}
	trendBySubject := make(map[string]SubjectTrend, len(trends))
	for _, t := range trends {
		if t.Direction.Valid() {
			trendBySubject[t.Subject] = t
		}
	}

	cat := Catalog{Subjects: make([]SubjectSummary, 0, len(bySubject))}
	averages := make([]float64, 0, len(bySubject))
	for subject, gs := range bySubject {
		sort.SliceStable(gs, func(i, j int) bool { return gs[i].GradedAt.After(gs[j].GradedAt) })

		values := make([]float64, len(gs))
		for i, g := range gs {
			values[i] = g.Value
		}
		sum := SubjectSummary{
			Subject: subject,
			Average: Mean(values),
			Count:   len(gs),
			Grades:  gs,
		}
		if t, ok := trendBySubject[subject]; ok {
			res := trend.EvaluateIn(trans, t.Direction, sum.Average, t.Previous, t.SampleCount)
			sum.Trend = &res
		}
		cat.Subjects = append(cat.Subjects, sum)
		averages = append(averages, sum.Average)
	}
	sort.Slice(cat.Subjects, func(i, j int) bool { return cat.Subjects[i].Subject < cat.Subjects[j].Subject })
	cat.Average = Mean(averages)
	return cat
}
