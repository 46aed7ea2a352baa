package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core/schedule"
)

type scheduleApi struct {
	svc *schedule.Service
}

func registerScheduleAPI(g *echo.Group, svc *schedule.Service) {
	api := scheduleApi{svc: svc}
	g.GET("/schedule", api.week)
}

// week serves the `week` offset, or the week containing `date` when given.
func (api *scheduleApi) week(ctx echo.Context) error {
	now, err := queryNow(ctx)
	if err != nil {
		return err
	}
	trans := contextTranslator(ctx)

	var w schedule.Week
	if raw := ctx.QueryParam("date"); raw != "" {
		date, err := parseDateField("date", raw)
		if err != nil {
			return err
		}
		w, err = api.svc.WeekContaining(ctx.Request().Context(), ctx.Param("uid"), date, now, trans)
		if err != nil {
			return errors.Wrap(err, "building schedule week")
		}
	} else {
		offset, err := queryInt(ctx, "week", 0)
		if err != nil {
			return err
		}
		w, err = api.svc.Week(ctx.Request().Context(), ctx.Param("uid"), offset, now, trans)
		if err != nil {
			return errors.Wrap(err, "building schedule week")
		}
	}
	return ctx.JSON(http.StatusOK, w)
}
