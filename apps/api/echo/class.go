package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/skillspring/server/core/class"
)

type classApi struct {
	svc      *class.Service
	validate *validator.Validate
}

func registerClassAPI(app *echo.Echo, gate echo.MiddlewareFunc, svc *class.Service, validate *validator.Validate) {
	api := classApi{svc: svc, validate: validate}

	// un-authed endpoints
	app.GET("/classes", api.query)
	app.GET("/classes/:id", api.retrieve)
	app.GET("/featuredClass", api.featured)

	// authed endpoints
	app.POST("/classes", api.create, gate)
	app.PUT("/classes/:id", api.update, gate)
	app.DELETE("/classes/:id", api.destroy, gate)
	app.PATCH("/class/:id", api.setStatus, gate)
	app.PATCH("/class-enroll/:id", api.enroll, gate)
}

func (api *classApi) create(ctx echo.Context) error {
	var data class.NewClass
	if err := bindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *classApi) query(ctx echo.Context) error {
	filter := new(class.QueryFilter)
	if err := bindQuery(ctx, filter); err != nil {
		return ctx.JSON(http.StatusOK, []class.Class{})
	}

	classes, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, nonNilClasses(classes))
}

func (api *classApi) retrieve(ctx echo.Context) error {
	cls, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) update(ctx echo.Context) error {
	var data class.UpdateClass
	if err := bindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *classApi) setStatus(ctx echo.Context) error {
	var data class.UpdateStatus
	if err := bindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to UpdateStatus")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.SetStatus(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "setting class status")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *classApi) enroll(ctx echo.Context) error {
	res, err := api.svc.Enroll(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "enrolling in class")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *classApi) destroy(ctx echo.Context) error {
	res, err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *classApi) featured(ctx echo.Context) error {
	classes, err := api.svc.Featured(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying featured classes")
	}
	return ctx.JSON(http.StatusOK, nonNilClasses(classes))
}

func nonNilClasses(classes []class.Class) []class.Class {
	if classes == nil {
		return []class.Class{}
	}
	return classes
}
