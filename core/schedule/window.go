package schedule

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core"
)

type State string

const (
	Upcoming   State = "upcoming"
	InProgress State = "in-progress"
	Finished   State = "finished"
)

func (s State) Valid() bool {
	switch s {
	case Upcoming, InProgress, Finished:
		return true
	default:
		return false
	}
}

type (
	// Window is a [Start, End) span within a single day.
	Window struct {
		Start Clock `json:"start_time" db:"start_time"`
		End   Clock `json:"end_time" db:"end_time"`
	}

	Status struct {
		State             State `json:"state"`
		MinutesUntilStart int   `json:"minutes_until_start"`
	}
)

var errWindowOrder = errors.New("end_time must be after start_time")

// NewWindow parses both clocks and makes sure the window ends after it starts.
func NewWindow(start, end string) (Window, error) {
	var flds []core.FieldError

	s, err := ParseClock(start)
	if err != nil {
		flds = append(flds, core.FieldError{Field: "start_time", Error: err.Error()})
	}
	e, err := ParseClock(end)
	if err != nil {
		flds = append(flds, core.FieldError{Field: "end_time", Error: err.Error()})
	}
	if len(flds) > 0 {
		return Window{}, core.NewValidationError(nil, flds...)
	}

	w := Window{Start: s, End: e}
	if err = w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

func (w Window) Validate() error {
	if !w.Start.Valid() || !w.End.Valid() {
		return core.NewValidationError(errors.Errorf("invalid window %s", w))
	}
	if w.End <= w.Start {
		return core.NewValidationError(errWindowOrder, core.FieldError{Field: "end_time", Error: errWindowOrder.Error()})
	}
	return nil
}

func (w Window) Duration() time.Duration {
	return time.Duration(w.End-w.Start) * time.Minute
}

func (w Window) String() string {
	return fmt.Sprintf("%s-%s", w.Start, w.End)
}

// Evaluate classifies the window on now's calendar date.
func Evaluate(w Window, now time.Time) Status {
	return EvaluateOn(now, w, now)
}

// EvaluateOn classifies the window on day's calendar date. The window's clocks are read in now's location.
func EvaluateOn(day time.Time, w Window, now time.Time) Status {
	start := w.Start.On(day, now.Location())
	end := w.End.On(day, now.Location())

	switch {
	case now.Before(start):
		return Status{State: Upcoming, MinutesUntilStart: int(start.Sub(now) / time.Minute)}
	case now.Before(end):
		return Status{State: InProgress}
	default:
		return Status{State: Finished}
	}
}
