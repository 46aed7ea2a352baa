package grade

import (
	"time"

	"github.com/trezcool/agendai/core/trend"
)

type (
	Grade struct {
		ID       string    `json:"id"`
		UserID   string    `json:"-"`
		Subject  string    `json:"subject"`
		Title    string    `json:"title"`
		Value    float64   `json:"value"`
		GradedAt time.Time `json:"graded_at"`
	}

	// SubjectTrend is the trend snapshot kept by the data store for a subject.
	SubjectTrend struct {
		Subject     string
		Direction   trend.Direction
		Previous    float64
		SampleCount int
	}

	SubjectSummary struct {
		Subject string        `json:"subject"`
		Average float64       `json:"average"`
		Count   int           `json:"count"`
		Trend   *trend.Result `json:"trend,omitempty"`
		Grades  []Grade       `json:"grades"`
	}

	Catalog struct {
		Average  float64          `json:"average"`
		Subjects []SubjectSummary `json:"subjects"`
	}
)
