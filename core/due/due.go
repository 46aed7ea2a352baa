// Package due classifies due dates into urgency tiers.
//
// Days are counted between calendar dates, not elapsed 24h windows: a task
// due at 23:59 tonight is due today even when it is 00:01.
package due

import (
	"fmt"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core/datetime"
	"github.com/trezcool/agendai/core/i18n"
)

type Tier string

const (
	Overdue     Tier = "overdue"
	DueToday    Tier = "dueToday"
	DueTomorrow Tier = "dueTomorrow"
	Warning     Tier = "warning"
	Normal      Tier = "normal"
)

// Tiers lists every tier, most urgent first.
var Tiers = []Tier{Overdue, DueToday, DueTomorrow, Warning, Normal}

func (t Tier) Valid() bool {
	switch t {
	case Overdue, DueToday, DueTomorrow, Warning, Normal:
		return true
	default:
		return false
	}
}

// Urgent reports whether the tier needs the student's attention (anything but Normal).
func (t Tier) Urgent() bool {
	return t.Valid() && t != Normal
}

func ParseTier(s string) (Tier, error) {
	if t := Tier(s); t.Valid() {
		return t, nil
	}
	return "", errors.Errorf("invalid tier %q", s)
}

type (
	Status struct {
		DaysUntil int    `json:"days_until"`
		Tier      Tier   `json:"tier"`
		Label     string `json:"label"`
	}

	// Item is a dated, completable piece of work.
	Item struct {
		DueAt     time.Time
		Completed bool
	}
)

// Classify computes the due status of dueAt relative to now, with English labels.
func Classify(dueAt, now time.Time) Status {
	return ClassifyIn(nil, dueAt, now)
}

// ClassifyIn is Classify with labels rendered by trans.
func ClassifyIn(trans ut.Translator, dueAt, now time.Time) Status {
	days := DaysUntil(dueAt, now)
	tier := TierFor(days)
	return Status{
		DaysUntil: days,
		Tier:      tier,
		Label:     Label(trans, tier, days),
	}
}

// StatusOf classifies item, or returns nil when it is completed.
func StatusOf(trans ut.Translator, item Item, now time.Time) *Status {
	if item.Completed {
		return nil
	}
	st := ClassifyIn(trans, item.DueAt, now)
	return &st
}

// DaysUntil returns the number of calendar days from now to dueAt, both read in now's location.
func DaysUntil(dueAt, now time.Time) int {
	return datetime.DaysBetween(now, dueAt.In(now.Location()))
}

func TierFor(days int) Tier {
	switch {
	case days < 0:
		return Overdue
	case days == 0:
		return DueToday
	case days == 1:
		return DueTomorrow
	case days == 2:
		return Warning
	default:
		return Normal
	}
}

func Label(trans ut.Translator, tier Tier, days int) string {
	if trans == nil {
		trans = i18n.Default()
	}
	switch tier {
	case Overdue:
		return i18n.T(trans, "due.overdue")
	case DueToday:
		return i18n.T(trans, "due.today")
	case DueTomorrow:
		return i18n.T(trans, "due.tomorrow")
	case Warning:
		return i18n.T(trans, "due.warning")
	case Normal:
		return i18n.T(trans, "due.normal", trans.FmtNumber(float64(days), 0))
	default:
		panic(fmt.Sprintf("due: unknown tier %q", tier))
	}
}

// ParseAndClassify parses two ISO-8601 timestamps and classifies them.
// Timestamps without an offset are read as UTC.
func ParseAndClassify(dueAt, now string) (Status, error) {
	n, err := datetime.ParseTimestamp(now)
	if err != nil {
		return Status{}, errors.Wrap(err, "parsing now")
	}
	d, err := datetime.ParseTimestamp(dueAt, n.Location())
	if err != nil {
		return Status{}, errors.Wrap(err, "parsing due_at")
	}
	return Classify(d, n), nil
}

func init() {
	i18n.Register("en", map[string]string{
		"due.overdue":  "Overdue",
		"due.today":    "Due today",
		"due.tomorrow": "Due tomorrow",
		"due.warning":  "Due in 2 days",
		"due.normal":   "{0} days left",
	})
	i18n.Register("fr", map[string]string{
		"due.overdue":  "En retard",
		"due.today":    "À rendre aujourd'hui",
		"due.tomorrow": "À rendre demain",
		"due.warning":  "À rendre dans 2 jours",
		"due.normal":   "{0} jours restants",
	})
}
