package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core/grade"
)

type gradeApi struct {
	svc *grade.Service
}

func registerGradeAPI(g *echo.Group, svc *grade.Service) {
	api := gradeApi{svc: svc}
	g.GET("/grades", api.catalog)
}

func (api *gradeApi) catalog(ctx echo.Context) error {
	cat, err := api.svc.Catalog(ctx.Request().Context(), ctx.Param("uid"), contextTranslator(ctx))
	if err != nil {
		return errors.Wrap(err, "building grade catalog")
	}
	return ctx.JSON(http.StatusOK, cat)
}
