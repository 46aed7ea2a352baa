// Package week buckets calendar dates into Monday-aligned weeks.
//
// Day indexes are 0 = Monday ... 6 = Sunday. DayIndexOf and DayIndex.Weekday
// are the only conversions to and from time.Weekday (0 = Sunday).
package week

import (
	"fmt"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core/datetime"
	"github.com/trezcool/agendai/core/i18n"
)

type DayIndex int

const (
	Monday DayIndex = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const DaysPerWeek = 7

func (d DayIndex) Valid() bool { return d >= Monday && d <= Sunday }

// Weekday converts d to Go's Sunday-based weekday.
func (d DayIndex) Weekday() time.Weekday {
	if !d.Valid() {
		panic(fmt.Sprintf("week: invalid day index %d", int(d)))
	}
	return time.Weekday((int(d) + 1) % DaysPerWeek)
}

func (d DayIndex) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayIndex(%d)", int(d))
	}
	return d.Weekday().String()
}

// DayIndexOf returns the Monday-based day index of t.
func DayIndexOf(t time.Time) DayIndex {
	return fromWeekday(int(t.Weekday()))
}

// DayIndexFromWeekday converts a Sunday-based weekday number (0 = Sunday), as stored by some data sources.
func DayIndexFromWeekday(wd int) (DayIndex, error) {
	if wd < 0 || wd >= DaysPerWeek {
		return 0, errors.Errorf("invalid weekday %d", wd)
	}
	return fromWeekday(wd), nil
}

func fromWeekday(wd int) DayIndex {
	return DayIndex((wd + DaysPerWeek - 1) % DaysPerWeek)
}

// MondayOf returns 00:00 on the Monday of date's week, in date's location. Sundays belong to the previous week.
func MondayOf(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d-int(DayIndexOf(date)), 0, 0, 0, 0, date.Location())
}

// OffsetOf returns how many whole weeks separate date's week from today's week.
// Negative offsets are past weeks.
func OffsetOf(date, today time.Time) int {
	days := datetime.DaysBetween(MondayOf(today), MondayOf(date))
	return datetime.FloorDiv(days, DaysPerWeek)
}

// Range is the Monday-Friday span of a school week.
type Range struct {
	Monday time.Time `json:"monday"`
	Friday time.Time `json:"friday"`
}

// ForOffset returns the school week `offset` weeks away from today's week.
func ForOffset(today time.Time, offset int) Range {
	monday := MondayOf(today).AddDate(0, 0, offset*DaysPerWeek)
	return Range{
		Monday: monday,
		Friday: monday.AddDate(0, 0, int(Friday)),
	}
}

// DateFor returns the calendar date of day in the week `offset` weeks away from today's week.
func DateFor(today time.Time, offset int, day DayIndex) time.Time {
	return MondayOf(today).AddDate(0, 0, offset*DaysPerWeek+int(day))
}

// Label returns the English "Week of <range>" label.
func (r Range) Label() string {
	return r.LabelIn(nil)
}

func (r Range) LabelIn(trans ut.Translator) string {
	if trans == nil {
		trans = i18n.Default()
	}
	return i18n.T(trans, "week.of", trans.FmtDateMedium(r.Monday), trans.FmtDateMedium(r.Friday))
}

func init() {
	i18n.Register("en", map[string]string{
		"week.of": "Week of {0} - {1}",
	})
	i18n.Register("fr", map[string]string{
		"week.of": "Semaine du {0} au {1}",
	})
}
