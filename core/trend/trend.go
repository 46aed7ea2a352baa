// Package trend turns a caller-supplied grade trend into display texts.
//
// The direction is trusted as given: Evaluate never re-derives it from the
// current and previous values, so "up" with current < previous yields a
// negative delta shown with a "+" sign.
package trend

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/i18n"
)

type Direction string

const (
	Up     Direction = "up"
	Down   Direction = "down"
	Stable Direction = "stable"
)

var Directions = []Direction{Up, Down, Stable}

func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Stable:
		return true
	default:
		return false
	}
}

func ParseDirection(s string) (Direction, error) {
	if d := Direction(strings.ToLower(strings.TrimSpace(s))); d.Valid() {
		return d, nil
	}
	return "", errors.Errorf("invalid direction %q: must be one of up, down, stable", s)
}

type Result struct {
	Label   string  `json:"label"`
	Delta   float64 `json:"delta"`
	Tooltip string  `json:"tooltip"`
}

// Evaluate renders a trend with English texts.
func Evaluate(direction Direction, current, previous float64, sampleCount int) Result {
	return EvaluateIn(nil, direction, current, previous, sampleCount)
}

// EvaluateIn renders a trend with trans. Delta is rounded half-up to one decimal, as shown in the tooltip.
func EvaluateIn(trans ut.Translator, direction Direction, current, previous float64, sampleCount int) Result {
	if trans == nil {
		trans = i18n.Default()
	}
	samples := i18n.C(trans, "trend.samples", float64(sampleCount), 0)

	switch direction {
	case Up:
		delta := roundDelta(current, previous)
		return Result{
			Label:   i18n.T(trans, "trend.up"),
			Delta:   delta,
			Tooltip: i18n.T(trans, "trend.tooltip.up", trans.FmtNumber(delta, 1), samples),
		}
	case Down:
		delta := roundDelta(previous, current)
		return Result{
			Label:   i18n.T(trans, "trend.down"),
			Delta:   delta,
			Tooltip: i18n.T(trans, "trend.tooltip.down", trans.FmtNumber(delta, 1), samples),
		}
	case Stable:
		return Result{
			Label:   i18n.T(trans, "trend.stable"),
			Delta:   0,
			Tooltip: i18n.T(trans, "trend.tooltip.stable"),
		}
	default:
		panic(fmt.Sprintf("trend: unknown direction %q", direction))
	}
}

func roundDelta(from, to float64) float64 {
	return core.RoundHalfUp(decimal.NewFromFloat(from).Sub(decimal.NewFromFloat(to)), 1)
}

func init() {
	i18n.Register("en", map[string]string{
		"trend.up":             "improving",
		"trend.down":           "needs attention",
		"trend.stable":         "consistent performance",
		"trend.tooltip.up":     "+{0} vs. average of the last {1}",
		"trend.tooltip.down":   "-{0} vs. average of the last {1}",
		"trend.tooltip.stable": "Your grades are holding steady",
	})
	i18n.RegisterCardinal("en", "trend.samples", "{0} grade", "{0} grades")

	i18n.Register("fr", map[string]string{
		"trend.up":             "en progression",
		"trend.down":           "à surveiller",
		"trend.stable":         "résultats réguliers",
		"trend.tooltip.up":     "+{0} par rapport à la moyenne des {1}",
		"trend.tooltip.down":   "-{0} par rapport à la moyenne des {1}",
		"trend.tooltip.stable": "Vos notes restent stables",
	})
	i18n.RegisterCardinal("fr", "trend.samples", "{0} dernière note", "{0} dernières notes")
}
