package echoapi

import (
	"net/http"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core/homework"
)

type (
	RescheduleRequest struct {
		DueAt string `json:"due_at" validate:"required,timestamp"`
	}

	RemindersRequest struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name"`
	}

	RemindersResponse struct {
		Sent int `json:"sent"`
	}
)

type homeworkApi struct {
	svc      *homework.Service
	validate *validator.Validate
}

func registerHomeworkAPI(g *echo.Group, svc *homework.Service, validate *validator.Validate) {
	api := homeworkApi{
		svc:      svc,
		validate: validate,
	}

	hg := g.Group("/homework")
	hg.GET("", api.query)
	hg.POST("", api.create)
	hg.POST("/reminders", api.sendReminders)

	// detail endpoints
	hg.GET("/:id", api.retrieve)
	hg.POST("/:id/complete", api.complete)
	hg.PUT("/:id/due", api.reschedule)
}

// Handlers

func (api *homeworkApi) query(ctx echo.Context) error {
	now, err := queryNow(ctx)
	if err != nil {
		return err
	}
	filter, err := homework.NewQueryFilter(ctx.QueryParam("status"), ctx.QueryParam("subject"), ctx.QueryParams()["tier"]...)
	if err != nil {
		return err
	}

	tasks, err := api.svc.List(ctx.Request().Context(), ctx.Param("uid"), filter, now, contextTranslator(ctx))
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *homeworkApi) create(ctx echo.Context) error {
	var data homework.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	now, err := queryNow(ctx)
	if err != nil {
		return err
	}

	t, err := api.svc.Create(ctx.Request().Context(), ctx.Param("uid"), data, now)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *homeworkApi) retrieve(ctx echo.Context) error {
	now, err := queryNow(ctx)
	if err != nil {
		return err
	}

	t, err := api.svc.Get(ctx.Request().Context(), ctx.Param("uid"), ctx.Param("id"), now, contextTranslator(ctx))
	if err != nil {
		return errors.Wrap(err, "getting task")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *homeworkApi) complete(ctx echo.Context) error {
	now, err := queryNow(ctx)
	if err != nil {
		return err
	}

	t, err := api.svc.Complete(ctx.Request().Context(), ctx.Param("uid"), ctx.Param("id"), now)
	if err != nil {
		return errors.Wrap(err, "completing task")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *homeworkApi) reschedule(ctx echo.Context) error {
	var data RescheduleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RescheduleRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	now, err := queryNow(ctx)
	if err != nil {
		return err
	}

	t, err := api.svc.Reschedule(ctx.Request().Context(), ctx.Param("uid"), ctx.Param("id"), data.DueAt, now)
	if err != nil {
		return errors.Wrap(err, "rescheduling task")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *homeworkApi) sendReminders(ctx echo.Context) error {
	var data RemindersRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RemindersRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	now, err := queryNow(ctx)
	if err != nil {
		return err
	}

	to := mail.Address{Name: data.Name, Address: data.Email}
	n, err := api.svc.SendReminders(ctx.Request().Context(), ctx.Param("uid"), to, now, contextTranslator(ctx))
	if err != nil {
		return errors.Wrap(err, "sending reminders")
	}
	return ctx.JSON(http.StatusOK, RemindersResponse{Sent: n})
}
