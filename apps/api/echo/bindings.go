package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/datetime"
)

var nowFunc = time.Now // mockable

// parseNow reads an optional `now` timestamp, defaulting to the current time.
func parseNow(raw string) (time.Time, error) {
	if raw == "" {
		return nowFunc(), nil
	}
	return parseTimeField("now", raw)
}

func parseTimeField(field, raw string) (time.Time, error) {
	t, err := datetime.ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return t, nil
}

func parseDateField(field, raw string) (time.Time, error) {
	t, err := datetime.ParseDate(raw)
	if err != nil {
		return time.Time{}, core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return t, nil
}

// queryNow binds the `now` query param.
func queryNow(ctx echo.Context) (time.Time, error) {
	return parseNow(ctx.QueryParam("now"))
}

// queryInt binds an optional integer query param.
func queryInt(ctx echo.Context, name string, def int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewValidationError(err, core.FieldError{Field: name, Error: "must be an integer"})
	}
	return n, nil
}
