package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/agendai/core"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 10, 15, hour, min, sec, 0, time.UTC)
}

func TestEvaluate(t *testing.T) {
	w, err := NewWindow("08:00", "09:30")
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want Status
	}{
		{name: "a minute before", now: at(7, 59, 0), want: Status{State: Upcoming, MinutesUntilStart: 1}},
		{name: "seconds before", now: at(7, 59, 30), want: Status{State: Upcoming, MinutesUntilStart: 0}},
		{name: "early morning", now: at(6, 15, 0), want: Status{State: Upcoming, MinutesUntilStart: 105}},
		{name: "at start", now: at(8, 0, 0), want: Status{State: InProgress}},
		{name: "midway", now: at(8, 45, 0), want: Status{State: InProgress}},
		{name: "last second", now: at(9, 29, 59), want: Status{State: InProgress}},
		{name: "at end", now: at(9, 30, 0), want: Status{State: Finished}},
		{name: "evening", now: at(21, 0, 0), want: Status{State: Finished}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(w, tt.now)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.State.Valid())
		})
	}
}

func TestEvaluateOn(t *testing.T) {
	w := Window{Start: 600, End: 660}
	now := at(12, 0, 0)

	tests := []struct {
		name string
		day  time.Time
		want Status
	}{
		{name: "yesterday", day: now.AddDate(0, 0, -1), want: Status{State: Finished}},
		{name: "today", day: now, want: Status{State: Finished}},
		{name: "tomorrow", day: now.AddDate(0, 0, 1), want: Status{State: Upcoming, MinutesUntilStart: 22 * 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateOn(tt.day, w, now))
		})
	}
}

func TestEvaluate_usesNowLocation(t *testing.T) {
	kinshasa := time.FixedZone("WAT", 1*60*60)
	w := Window{Start: 480, End: 570}

	// 07:30 UTC is 08:30 in Kinshasa
	now := time.Date(2026, 10, 15, 7, 30, 0, 0, time.UTC).In(kinshasa)
	assert.Equal(t, Status{State: InProgress}, Evaluate(w, now))
}

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       Window
		wantFields []string
	}{
		{name: "valid", start: "08:00", end: "09:30", want: Window{Start: 480, End: 570}},
		{name: "equal", start: "08:00", end: "08:00", wantFields: []string{"end_time"}},
		{name: "reversed", start: "10:00", end: "09:00", wantFields: []string{"end_time"}},
		{name: "bad start", start: "8", end: "09:00", wantFields: []string{"start_time"}},
		{name: "both bad", start: "", end: "25:00", wantFields: []string{"start_time", "end_time"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewWindow(tt.start, tt.end)
			if tt.wantFields == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				assert.Equal(t, 90*time.Minute, got.Duration())
				return
			}
			require.Error(t, err)
			vErr, ok := err.(*core.ValidationError)
			require.True(t, ok)
			var fields []string
			for _, f := range vErr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}
