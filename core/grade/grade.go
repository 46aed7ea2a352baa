package grade

import (
	"github.com/shopspring/decimal"

	"github.com/trezcool/agendai/core"
)

// Mean returns the arithmetic mean of values rounded half-up to 2 decimals, or 0 when empty.
// Values are summed as decimals so that 1.005 stays 1.005.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return core.RoundHalfUp(sum.Div(decimal.New(int64(len(values)), 0)), 2)
}

// Round2 rounds half-up to 2 decimals.
func Round2(v float64) float64 {
	return core.RoundHalfUp(decimal.NewFromFloat(v), 2)
}
