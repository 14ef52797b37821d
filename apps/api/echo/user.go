package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/skillspring/server/core/user"
)

type userApi struct {
	svc      *user.Service
	validate *validator.Validate
}

func registerUserAPI(app *echo.Echo, gate echo.MiddlewareFunc, svc *user.Service, validate *validator.Validate) {
	api := userApi{svc: svc, validate: validate}

	// un-authed endpoints
	app.POST("/users", api.create)

	// authed endpoints
	app.GET("/users", api.query, gate)
	app.GET("/users/:email", api.retrieve, gate)
	app.PATCH("/users/make-admin/:email", api.makeAdmin, gate)
}

// Handlers

func (api *userApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := bindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *userApi) query(ctx echo.Context) error {
	filter := new(user.QueryFilter)
	if err := bindQuery(ctx, filter); err != nil {
		return ctx.JSON(http.StatusOK, []user.User{})
	}

	users, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) retrieve(ctx echo.Context) error {
	usr, err := api.svc.GetByEmail(ctx.Request().Context(), pathParam(ctx, "email"))
	if err != nil {
		return errors.Wrap(err, "getting user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

// makeAdmin is open to any authenticated caller; roles are not checked server-side.
func (api *userApi) makeAdmin(ctx echo.Context) error {
	res, err := api.svc.MakeAdmin(ctx.Request().Context(), pathParam(ctx, "email"))
	if err != nil {
		return errors.Wrap(err, "making admin")
	}
	return ctx.JSON(http.StatusOK, res)
}
