package homework

import (
	"context"
	"net/mail"
	"sort"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/due"
)

var (
	// errors
	ErrNotFound         = errors.New("task not found")
	ErrAlreadyCompleted = errors.New("task already completed")
	ErrCompleted        = errors.New("cannot reschedule a completed task")
)

type (
	Repository interface {
		// QueryTasks returns the user's tasks matching filter.Status and filter.Subject.
		QueryTasks(ctx context.Context, userID string, filter QueryFilter) ([]Task, error)
		GetTask(ctx context.Context, userID, id string) (Task, error)
		CreateTask(ctx context.Context, task Task) (Task, error)
		CompleteTask(ctx context.Context, userID, id string, at time.Time) (Task, error)
		RescheduleTask(ctx context.Context, userID, id string, dueAt, at time.Time) (Task, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// List returns the user's tasks sorted by due date, pending ones with their due status.
func (svc *Service) List(ctx context.Context, userID string, filter QueryFilter, now time.Time, trans ut.Translator) ([]TaskView, error) {
	tasks, err := svc.repo.QueryTasks(ctx, userID, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := TaskView{Task: t, Status: due.StatusOf(trans, t.Item(), now)}
		if filter.matchesTier(view.Status) {
			views = append(views, view)
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].DueAt.Equal(views[j].DueAt) {
			return views[i].DueAt.Before(views[j].DueAt)
		}
		return views[i].Title < views[j].Title
	})
	return views, nil
}

// Urgent returns the user's pending tasks that are not in the normal tier.
func (svc *Service) Urgent(ctx context.Context, userID string, now time.Time, trans ut.Translator) ([]TaskView, error) {
	filter := QueryFilter{
		Status: StatusPending,
		Tiers:  []due.Tier{due.Overdue, due.DueToday, due.DueTomorrow, due.Warning},
	}
	return svc.List(ctx, userID, filter, now, trans)
}

func (svc *Service) Get(ctx context.Context, userID, id string, now time.Time, trans ut.Translator) (TaskView, error) {
	t, err := svc.repo.GetTask(ctx, userID, id)
	if err != nil {
		return TaskView{}, err
	}
	return TaskView{Task: t, Status: due.StatusOf(trans, t.Item(), now)}, nil
}

// Create records a validated NewTask. Due dates without an offset are read in now's location.
func (svc *Service) Create(ctx context.Context, userID string, nt NewTask, now time.Time) (Task, error) {
	dueAt, err := parseDueAt(nt.DueAt, now.Location())
	if err != nil {
		return Task{}, err
	}
	tstamp := now.UTC()
	t, err := svc.repo.CreateTask(ctx, Task{
		UserID:      userID,
		Subject:     nt.Subject,
		Title:       nt.Title,
		Description: nt.Description,
		DueAt:       dueAt,
		CreatedAt:   tstamp,
		UpdatedAt:   tstamp,
	})
	if err != nil {
		return Task{}, errors.Wrap(err, "creating task")
	}
	return t, nil
}

// Complete marks a task as completed. A task can only be completed once; the
// repository enforces it too, so concurrent completions cannot both succeed.
func (svc *Service) Complete(ctx context.Context, userID, id string, now time.Time) (Task, error) {
	t, err := svc.repo.GetTask(ctx, userID, id)
	if err != nil {
		return Task{}, err
	}
	if t.Completed {
		return Task{}, core.NewValidationError(ErrAlreadyCompleted)
	}
	t, err = svc.repo.CompleteTask(ctx, userID, id, now.UTC())
	if err != nil {
		if errors.Cause(err) == ErrAlreadyCompleted { // completed concurrently
			return Task{}, core.NewValidationError(ErrAlreadyCompleted)
		}
		return Task{}, errors.Wrap(err, "completing task")
	}
	return t, nil
}

// Reschedule moves a pending task's due date.
func (svc *Service) Reschedule(ctx context.Context, userID, id, dueAt string, now time.Time) (Task, error) {
	d, err := parseDueAt(dueAt, now.Location())
	if err != nil {
		return Task{}, err
	}
	t, err := svc.repo.GetTask(ctx, userID, id)
	if err != nil {
		return Task{}, err
	}
	if t.Completed {
		return Task{}, core.NewValidationError(ErrCompleted)
	}
	t, err = svc.repo.RescheduleTask(ctx, userID, id, d, now.UTC())
	if err != nil {
		return Task{}, errors.Wrap(err, "rescheduling task")
	}
	return t, nil
}

// SendReminders emails the user's urgent tasks to `to` and returns how many were listed.
// Nothing is sent when no task is urgent.
func (svc *Service) SendReminders(ctx context.Context, userID string, to mail.Address, now time.Time, trans ut.Translator) (int, error) {
	tasks, err := svc.Urgent(ctx, userID, now, trans)
	if err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	svc.mailSvc.SendMessages(newReminderMessage(svc.conf.Reminders.Subject, to, tasks, now))
	return len(tasks), nil
}
