package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/skillspring/server/core/assignment"
)

type assignmentApi struct {
	svc      *assignment.Service
	validate *validator.Validate
}

func registerAssignmentAPI(app *echo.Echo, gate echo.MiddlewareFunc, svc *assignment.Service, validate *validator.Validate) {
	api := assignmentApi{svc: svc, validate: validate}

	app.POST("/assignment", api.create, gate)
	app.GET("/assignments", api.query, gate)
	app.PATCH("/assignment/:id", api.countSubmission, gate)
	app.POST("/submittedAssignments", api.submit, gate)
	app.GET("/submittedAssignments", api.querySubmissions, gate)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := bindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	filter := new(assignment.QueryFilter)
	if err := bindQuery(ctx, filter); err != nil {
		return ctx.JSON(http.StatusOK, []assignment.Assignment{})
	}

	assignments, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if assignments == nil {
		assignments = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *assignmentApi) countSubmission(ctx echo.Context) error {
	res, err := api.svc.CountSubmission(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "counting submission")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *assignmentApi) submit(ctx echo.Context) error {
	var data assignment.NewSubmission
	if err := bindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting assignment")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *assignmentApi) querySubmissions(ctx echo.Context) error {
	filter := new(assignment.QueryFilter)
	if err := bindQuery(ctx, filter); err != nil {
		return ctx.JSON(http.StatusOK, []assignment.SubmittedAssignment{})
	}

	submissions, err := api.svc.QuerySubmissions(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	if submissions == nil {
		submissions = []assignment.SubmittedAssignment{}
	}
	return ctx.JSON(http.StatusOK, submissions)
}
