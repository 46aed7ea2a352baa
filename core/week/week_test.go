package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/agendai/core/i18n"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayIndex(t *testing.T) {
	tests := []struct {
		date    time.Time
		want    DayIndex
		weekday time.Weekday
	}{
		{date(2026, 10, 12), Monday, time.Monday},
		{date(2026, 10, 15), Thursday, time.Thursday},
		{date(2026, 10, 17), Saturday, time.Saturday},
		{date(2026, 10, 18), Sunday, time.Sunday},
	}
	for _, tt := range tests {
		got := DayIndexOf(tt.date)
		assert.Equal(t, tt.want, got, "DayIndexOf(%s)", tt.date.Format("2006-01-02"))
		assert.Equal(t, tt.weekday, got.Weekday())
	}

	assert.Panics(t, func() { DayIndex(7).Weekday() })
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "DayIndex(-1)", DayIndex(-1).String())
}

func TestDayIndexFromWeekday(t *testing.T) {
	tests := []struct {
		wd   int
		want DayIndex
	}{
		{0, Sunday},
		{1, Monday},
		{5, Friday},
		{6, Saturday},
	}
	for _, tt := range tests {
		got, err := DayIndexFromWeekday(tt.wd)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := DayIndexFromWeekday(7)
	assert.Error(t, err)
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "monday", in: date(2026, 10, 12), want: date(2026, 10, 12)},
		{name: "thursday afternoon", in: time.Date(2026, 10, 15, 15, 30, 0, 0, time.UTC), want: date(2026, 10, 12)},
		{name: "sunday is last day", in: time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC), want: date(2026, 10, 12)},
		{name: "across month", in: date(2026, 11, 1), want: date(2026, 10, 26)},
		{name: "across year", in: date(2027, 1, 2), want: date(2026, 12, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MondayOf(tt.in))
		})
	}
}

func TestMondayOf_keepsLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	got := MondayOf(time.Date(2026, 10, 28, 9, 0, 0, 0, paris))
	assert.Equal(t, time.Date(2026, 10, 26, 0, 0, 0, 0, paris), got)
}

func TestOffsetOf(t *testing.T) {
	thursday := date(2026, 10, 15)
	monday := date(2026, 10, 12)

	tests := []struct {
		name        string
		date, today time.Time
		want        int
	}{
		{name: "same day", date: thursday, today: thursday, want: 0},
		{name: "next week", date: thursday.AddDate(0, 0, 7), today: thursday, want: 1},
		{name: "yesterday, mid-week", date: thursday.AddDate(0, 0, -1), today: thursday, want: 0},
		{name: "yesterday, on a monday", date: monday.AddDate(0, 0, -1), today: monday, want: -1},
		{name: "coming sunday", date: date(2026, 10, 18), today: thursday, want: 0},
		{name: "coming monday", date: date(2026, 10, 19), today: thursday, want: 1},
		{name: "far past", date: date(2026, 9, 1), today: thursday, want: -6},
		{name: "next year", date: date(2027, 1, 4), today: thursday, want: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OffsetOf(tt.date, tt.today))
		})
	}
}

func TestOffsetOf_acrossDST(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	today := time.Date(2026, 10, 22, 10, 0, 0, 0, paris)
	assert.Equal(t, 1, OffsetOf(time.Date(2026, 10, 26, 0, 0, 0, 0, paris), today))
	assert.Equal(t, 0, OffsetOf(time.Date(2026, 10, 25, 23, 0, 0, 0, paris), today))
}

func TestForOffset(t *testing.T) {
	today := date(2026, 10, 15)

	tests := []struct {
		offset int
		want   Range
	}{
		{0, Range{Monday: date(2026, 10, 12), Friday: date(2026, 10, 16)}},
		{1, Range{Monday: date(2026, 10, 19), Friday: date(2026, 10, 23)}},
		{-2, Range{Monday: date(2026, 9, 28), Friday: date(2026, 10, 2)}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ForOffset(today, tt.offset), "offset %d", tt.offset)
	}
}

func TestForOffset_roundTrip(t *testing.T) {
	today := date(2026, 10, 15)
	for offset := -5; offset <= 5; offset++ {
		r := ForOffset(today, offset)
		for day := Monday; day <= Sunday; day++ {
			d := DateFor(today, offset, day)
			assert.Equal(t, offset, OffsetOf(d, today))
			assert.Equal(t, r.Monday, MondayOf(d))
			assert.Equal(t, day, DayIndexOf(d))
			assert.Equal(t, 0, OffsetOf(d, r.Monday))
		}
	}
}

func TestDateFor(t *testing.T) {
	today := date(2026, 10, 15)
	assert.Equal(t, date(2026, 10, 12), DateFor(today, 0, Monday))
	assert.Equal(t, date(2026, 10, 18), DateFor(today, 0, Sunday))
	assert.Equal(t, date(2026, 10, 9), DateFor(today, -1, Friday))
}

func TestRange_Label(t *testing.T) {
	r := ForOffset(date(2026, 10, 15), 0)
	assert.Equal(t, "Week of Oct 12, 2026 - Oct 16, 2026", r.Label())
	assert.Contains(t, r.LabelIn(i18n.Translator("fr")), "Semaine du 12")
}
