package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/skillspring/server/core/teacher"
)

type teacherApi struct {
	svc      *teacher.Service
	validate *validator.Validate
}

func registerTeacherAPI(app *echo.Echo, gate echo.MiddlewareFunc, svc *teacher.Service, validate *validator.Validate) {
	api := teacherApi{svc: svc, validate: validate}

	app.POST("/teacher", api.apply, gate)

	app.GET("/teachers", api.query, gate)
	app.GET("/teachers/:email", api.retrieve, gate)
	app.PATCH("/teachers/:email", api.updateStatus, gate)
}

func (api *teacherApi) apply(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := bindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Apply(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "applying as teacher")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *teacherApi) query(ctx echo.Context) error {
	teachers, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	if teachers == nil {
		teachers = []teacher.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	tchr, err := api.svc.GetByEmail(ctx.Request().Context(), pathParam(ctx, "email"))
	if err != nil {
		return errors.Wrap(err, "getting teacher")
	}
	return ctx.JSON(http.StatusOK, tchr)
}

func (api *teacherApi) updateStatus(ctx echo.Context) error {
	var data teacher.UpdateStatus
	if err := bindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to UpdateStatus")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.UpdateStatus(ctx.Request().Context(), pathParam(ctx, "email"), data)
	if err != nil {
		return errors.Wrap(err, "updating teacher status")
	}
	return ctx.JSON(http.StatusOK, res)
}
