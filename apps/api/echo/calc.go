package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core/datetime"
	"github.com/trezcool/agendai/core/due"
	"github.com/trezcool/agendai/core/grade"
	"github.com/trezcool/agendai/core/schedule"
	"github.com/trezcool/agendai/core/trend"
	"github.com/trezcool/agendai/core/week"
)

type (
	DueStatusRequest struct {
		DueAt string `json:"due_at" validate:"required,timestamp"`
		Now   string `json:"now" validate:"timestamp"`
	}

	TrendRequest struct {
		Direction   string   `json:"direction" validate:"required,direction"`
		Current     *float64 `json:"current" validate:"required"`
		Previous    *float64 `json:"previous" validate:"required"`
		SampleCount int      `json:"sample_count" validate:"min=0"`
	}

	ScheduleStatusRequest struct {
		schedule.WindowInput
		Now string `json:"now" validate:"timestamp"`
	}

	MeanRequest struct {
		Values []float64 `json:"values"`
	}

	MeanResponse struct {
		Mean float64 `json:"mean"`
	}

	WeekResponse struct {
		Offset int        `json:"offset"`
		Label  string     `json:"label"`
		Range  week.Range `json:"range"`
		Days   []WeekDay  `json:"days,omitempty"`
	}

	WeekDay struct {
		Index week.DayIndex `json:"index"`
		Name  string        `json:"name"`
		Date  string        `json:"date"`
	}
)

type calcApi struct {
	validate *validator.Validate
}

func registerCalcAPI(g *echo.Group, validate *validator.Validate) {
	api := calcApi{validate: validate}

	cg := g.Group("/calc")
	cg.POST("/due-status", api.dueStatus)
	cg.POST("/trend", api.trend)
	cg.GET("/week-offset", api.weekOffset)
	cg.GET("/week", api.week)
	cg.POST("/schedule-status", api.scheduleStatus)
	cg.POST("/mean", api.mean)
}

// Handlers

func (api *calcApi) dueStatus(ctx echo.Context) error {
	var data DueStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DueStatusRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	now, err := parseNow(data.Now)
	if err != nil {
		return err
	}
	dueAt, err := datetime.ParseTimestamp(data.DueAt, now.Location())
	if err != nil {
		return errors.Wrap(err, "parsing due_at")
	}
	return ctx.JSON(http.StatusOK, due.ClassifyIn(contextTranslator(ctx), dueAt, now))
}

func (api *calcApi) trend(ctx echo.Context) error {
	var data TrendRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TrendRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	dir, err := trend.ParseDirection(data.Direction)
	if err != nil {
		return errors.Wrap(err, "parsing direction")
	}
	res := trend.EvaluateIn(contextTranslator(ctx), dir, *data.Current, *data.Previous, data.SampleCount)
	return ctx.JSON(http.StatusOK, res)
}

func (api *calcApi) weekOffset(ctx echo.Context) error {
	today, err := queryToday(ctx)
	if err != nil {
		return err
	}
	date, err := parseDateField("date", ctx.QueryParam("date"))
	if err != nil {
		return err
	}

	offset := week.OffsetOf(date, today)
	r := week.ForOffset(today, offset)
	return ctx.JSON(http.StatusOK, WeekResponse{
		Offset: offset,
		Label:  r.LabelIn(contextTranslator(ctx)),
		Range:  r,
	})
}

func (api *calcApi) week(ctx echo.Context) error {
	today, err := queryToday(ctx)
	if err != nil {
		return err
	}
	offset, err := queryInt(ctx, "offset", 0)
	if err != nil {
		return err
	}

	trans := contextTranslator(ctx)
	r := week.ForOffset(today, offset)
	days := make([]WeekDay, 0, week.DaysPerWeek)
	for d := week.Monday; d <= week.Sunday; d++ {
		days = append(days, WeekDay{
			Index: d,
			Name:  trans.WeekdayWide(d.Weekday()),
			Date:  week.DateFor(today, offset, d).Format(datetime.DateLayout),
		})
	}
	return ctx.JSON(http.StatusOK, WeekResponse{
		Offset: offset,
		Label:  r.LabelIn(trans),
		Range:  r,
		Days:   days,
	})
}

func (api *calcApi) scheduleStatus(ctx echo.Context) error {
	var data ScheduleStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ScheduleStatusRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	now, err := parseNow(data.Now)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, schedule.Evaluate(data.Window(), now))
}

func (api *calcApi) mean(ctx echo.Context) error {
	var data MeanRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MeanRequest")
	}
	return ctx.JSON(http.StatusOK, MeanResponse{Mean: grade.Mean(data.Values)})
}

// queryToday binds the optional `today` date, defaulting to the current date.
func queryToday(ctx echo.Context) (time.Time, error) {
	raw := ctx.QueryParam("today")
	if raw == "" {
		return datetime.Midnight(nowFunc()), nil
	}
	return parseDateField("today", raw)
}
