package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/skillspring/server/core/review"
)

type reviewApi struct {
	svc      *review.Service
	validate *validator.Validate
}

func registerReviewAPI(app *echo.Echo, gate echo.MiddlewareFunc, svc *review.Service, validate *validator.Validate) {
	api := reviewApi{svc: svc, validate: validate}

	app.GET("/reviews", api.query)
	app.POST("/reviews", api.create, gate)
}

func (api *reviewApi) create(ctx echo.Context) error {
	var data review.NewReview
	if err := bindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to NewReview")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating review")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *reviewApi) query(ctx echo.Context) error {
	filter := new(review.QueryFilter)
	if err := bindQuery(ctx, filter); err != nil {
		return ctx.JSON(http.StatusOK, []review.Review{})
	}

	reviews, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying reviews")
	}
	if reviews == nil {
		reviews = []review.Review{}
	}
	return ctx.JSON(http.StatusOK, reviews)
}
