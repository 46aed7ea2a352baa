package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/schedule"
	"github.com/trezcool/agendai/core/week"
)

// scheduleRow mirrors schedule_entries, whose day_of_week column counts from Sunday = 0.
type scheduleRow struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	Subject   string         `db:"subject"`
	Teacher   null.String    `db:"teacher"`
	Room      null.String    `db:"room"`
	DayOfWeek int            `db:"day_of_week"`
	StartTime schedule.Clock `db:"start_time"`
	EndTime   schedule.Clock `db:"end_time"`
}

func (r scheduleRow) entry() (schedule.Entry, error) {
	day, err := week.DayIndexFromWeekday(r.DayOfWeek)
	if err != nil {
		return schedule.Entry{}, err
	}
	w := schedule.Window{Start: r.StartTime, End: r.EndTime}
	if err = w.Validate(); err != nil {
		return schedule.Entry{}, err
	}
	return schedule.Entry{
		ID:      r.ID,
		UserID:  r.UserID,
		Subject: r.Subject,
		Teacher: r.Teacher.String,
		Room:    r.Room.String,
		Day:     day,
		Window:  w,
	}, nil
}

type scheduleRepository struct {
	exec   core.DBExecutor
	logger core.Logger
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(exec core.DBExecutor, logger core.Logger) schedule.Repository {
	return &scheduleRepository{exec: exec, logger: logger}
}

// QueryEntries skips (and logs) rows with an invalid day or window.
func (repo *scheduleRepository) QueryEntries(ctx context.Context, userID string) ([]schedule.Entry, error) {
	if !validID(userID) {
		return []schedule.Entry{}, nil
	}

	q := "SELECT id, user_id, subject, teacher, room, day_of_week, start_time, end_time FROM schedule_entries WHERE user_id = ? ORDER BY day_of_week, start_time"
	var rows []scheduleRow
	if err := repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(q), userID); err != nil {
		return nil, wrapDBErr(err, "selecting schedule entries")
	}

	entries := make([]schedule.Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.entry()
		if err != nil {
			repo.logger.Warn("skipping schedule entry "+r.ID, errors.Wrap(err, "converting schedule row"))
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
