package homework

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/datetime"
	"github.com/trezcool/agendai/core/due"
)

// task statuses accepted by QueryFilter
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusAll       = "all"
)

type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	Subject     string     `json:"subject"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueAt       time.Time  `json:"due_at"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"` // UTC
	UpdatedAt   time.Time  `json:"updated_at"` // UTC
}

func (t Task) Item() due.Item {
	return due.Item{DueAt: t.DueAt, Completed: t.Completed}
}

// TaskView is a Task with its due status. Completed tasks carry no status.
type TaskView struct {
	Task
	Status *due.Status `json:"status,omitempty"`
}

// NewTask contains information needed to record a new Task.
type NewTask struct {
	Subject     string `json:"subject" validate:"notblank"`
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
	DueAt       string `json:"due_at" validate:"required,timestamp"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	nt.Subject = core.CleanString(nt.Subject)
	nt.Title = core.CleanString(nt.Title)
	nt.Description = core.CleanString(nt.Description)
	return validate.Struct(nt)
}

// QueryFilter narrows down a task listing.
// Status and Subject are applied by the Repository, Tiers by the Service.
type QueryFilter struct {
	Status  string
	Subject string
	Tiers   []due.Tier
}

// NewQueryFilter cleans and checks raw filter values. Status defaults to pending.
func NewQueryFilter(status, subject string, tiers ...string) (QueryFilter, error) {
	filter := QueryFilter{
		Status:  core.CleanString(status, true /* lower */),
		Subject: core.CleanString(subject),
	}
	switch filter.Status {
	case "":
		filter.Status = StatusPending
	case StatusPending, StatusCompleted, StatusAll:
	default:
		return QueryFilter{}, core.NewValidationError(nil, core.FieldError{
			Field: "status",
			Error: "must be one of pending, completed, all",
		})
	}
	for _, raw := range core.CleanStrings(tiers) {
		tier, err := due.ParseTier(raw)
		if err != nil {
			return QueryFilter{}, core.NewValidationError(err, core.FieldError{Field: "tier", Error: err.Error()})
		}
		filter.Tiers = append(filter.Tiers, tier)
	}
	return filter, nil
}

// matchesTier reports whether a task with status st passes the filter's tiers.
func (f QueryFilter) matchesTier(st *due.Status) bool {
	if len(f.Tiers) == 0 {
		return true
	}
	if st == nil {
		return false
	}
	for _, tier := range f.Tiers {
		if st.Tier == tier {
			return true
		}
	}
	return false
}

func parseDueAt(s string, loc *time.Location) (time.Time, error) {
	t, err := datetime.ParseTimestamp(s, loc)
	if err != nil {
		return time.Time{}, core.NewValidationError(errors.Wrap(err, "parsing due_at"), core.FieldError{Field: "due_at", Error: err.Error()})
	}
	return t.UTC(), nil
}
