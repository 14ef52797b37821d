package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/skillspring/server/core/payment"
)

const headerIdempotencyKey = "Idempotency-Key"

type paymentApi struct {
	svc      *payment.Service
	validate *validator.Validate
}

func registerPaymentAPI(app *echo.Echo, gate echo.MiddlewareFunc, svc *payment.Service, validate *validator.Validate) {
	api := paymentApi{svc: svc, validate: validate}

	app.POST("/create-payment-intent", api.createIntent, gate)
	app.POST("/payments", api.create, gate)
	app.GET("/payments", api.query, gate)
}

func (api *paymentApi) createIntent(ctx echo.Context) error {
	var data payment.IntentRequest
	if err := bindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to IntentRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.CreateIntent(ctx.Request().Context(), data, ctx.Request().Header.Get(headerIdempotencyKey))
	if err != nil {
		return errors.Wrap(err, "creating payment intent")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *paymentApi) create(ctx echo.Context) error {
	var data payment.NewPayment
	if err := bindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "recording payment")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *paymentApi) query(ctx echo.Context) error {
	filter := new(payment.QueryFilter)
	if err := bindQuery(ctx, filter); err != nil {
		return ctx.JSON(http.StatusOK, []payment.Payment{})
	}

	payments, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}
