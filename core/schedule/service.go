package schedule

import (
	"context"
	"sort"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core/datetime"
	"github.com/trezcool/agendai/core/i18n"
	"github.com/trezcool/agendai/core/week"
)

type (
	Repository interface {
		QueryEntries(ctx context.Context, userID string) ([]Entry, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Week returns the user's classes for the week `offset` weeks away from now's week.
func (svc *Service) Week(ctx context.Context, userID string, offset int, now time.Time, trans ut.Translator) (Week, error) {
	entries, err := svc.repo.QueryEntries(ctx, userID)
	if err != nil {
		return Week{}, errors.Wrap(err, "querying schedule entries")
	}
	return BuildWeek(entries, offset, now, trans), nil
}

// WeekContaining returns the week that contains date's calendar day, as read in date's own location.
func (svc *Service) WeekContaining(ctx context.Context, userID string, date, now time.Time, trans ut.Translator) (Week, error) {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return svc.Week(ctx, userID, week.OffsetOf(day, now), now, trans)
}

// Today returns today's classes, sorted by start time.
func (svc *Service) Today(ctx context.Context, userID string, now time.Time) ([]EntryView, error) {
	entries, err := svc.repo.QueryEntries(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying schedule entries")
	}
	return BuildWeek(entries, 0, now, nil).Days[week.DayIndexOf(now)].Entries, nil
}

// BuildWeek buckets entries by day index and evaluates each of them against now.
func BuildWeek(entries []Entry, offset int, now time.Time, trans ut.Translator) Week {
	if trans == nil {
		trans = i18n.Default()
	}
	rng := week.ForOffset(now, offset)
	w := Week{
		Offset: offset,
		Label:  rng.LabelIn(trans),
		Range:  rng,
		Days:   make([]Day, week.DaysPerWeek),
	}
	for idx := week.Monday; idx <= week.Sunday; idx++ {
		w.Days[idx] = Day{
			Index:   idx,
			Name:    trans.WeekdayWide(idx.Weekday()),
			Date:    week.DateFor(now, offset, idx).Format(datetime.DateLayout),
			Entries: []EntryView{},
		}
	}

	for _, e := range entries {
		if !e.Day.Valid() {
			continue
		}
		date := week.DateFor(now, offset, e.Day)
		w.Days[e.Day].Entries = append(w.Days[e.Day].Entries, EntryView{
			Entry:  e,
			Date:   date.Format(datetime.DateLayout),
			Status: EvaluateOn(date, e.Window, now),
		})
	}
	for _, day := range w.Days {
		entries := day.Entries
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Start != entries[j].Start {
				return entries[i].Start < entries[j].Start
			}
			return entries[i].Subject < entries[j].Subject
		})
	}
	return w
}

// Next returns the first upcoming class among views, if any.
func Next(views []EntryView) (EntryView, bool) {
	for _, v := range views {
		if v.Status.State == Upcoming {
			return v, true
		}
	}
	return EntryView{}, false
}
