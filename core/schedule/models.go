package schedule

import (
	"github.com/trezcool/agendai/core/week"
)

type (
	// Entry is a weekly recurring class.
	Entry struct {
		ID      string        `json:"id"`
		UserID  string        `json:"-"`
		Subject string        `json:"subject"`
		Teacher string        `json:"teacher"`
		Room    string        `json:"room"`
		Day     week.DayIndex `json:"day"`
		Window
	}

	// EntryView is an Entry placed on a calendar date.
	EntryView struct {
		Entry
		Date   string `json:"date"`
		Status Status `json:"status"`
	}

	Day struct {
		Index   week.DayIndex `json:"index"`
		Name    string        `json:"name"`
		Date    string        `json:"date"`
		Entries []EntryView   `json:"entries"`
	}

	Week struct {
		Offset int        `json:"offset"`
		Label  string     `json:"label"`
		Range  week.Range `json:"range"`
		Days   []Day      `json:"days"`
	}
)
