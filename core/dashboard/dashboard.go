// Package dashboard assembles the student's home page from the other page services.
package dashboard

import (
	"context"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core/datetime"
	"github.com/trezcool/agendai/core/grade"
	"github.com/trezcool/agendai/core/homework"
	"github.com/trezcool/agendai/core/schedule"
)

type (
	Overview struct {
		Date      string               `json:"date"`
		Urgent    []homework.TaskView  `json:"urgent_homework"`
		Today     []schedule.EntryView `json:"today"`
		NextClass *schedule.EntryView  `json:"next_class,omitempty"`
		Average   float64              `json:"average"`
	}

	Service struct {
		homeworkSvc *homework.Service
		scheduleSvc *schedule.Service
		gradeSvc    *grade.Service
	}
)

func NewService(homeworkSvc *homework.Service, scheduleSvc *schedule.Service, gradeSvc *grade.Service) *Service {
	return &Service{
		homeworkSvc: homeworkSvc,
		scheduleSvc: scheduleSvc,
		gradeSvc:    gradeSvc,
	}
}

func (svc *Service) Overview(ctx context.Context, userID string, now time.Time, trans ut.Translator) (Overview, error) {
	urgent, err := svc.homeworkSvc.Urgent(ctx, userID, now, trans)
	if err != nil {
		return Overview{}, errors.Wrap(err, "listing urgent homework")
	}
	today, err := svc.scheduleSvc.Today(ctx, userID, now)
	if err != nil {
		return Overview{}, errors.Wrap(err, "listing today's classes")
	}
	avg, err := svc.gradeSvc.Average(ctx, userID)
	if err != nil {
		return Overview{}, errors.Wrap(err, "computing average")
	}

	ov := Overview{
		Date:    now.Format(datetime.DateLayout),
		Urgent:  urgent,
		Today:   today,
		Average: avg,
	}
	if next, ok := schedule.Next(today); ok {
		ov.NextClass = &next
	}
	return ov, nil
}
