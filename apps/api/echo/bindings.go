package echoapi

import (
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var binder = new(echo.DefaultBinder)

// bindBody binds the JSON body only, ignoring path and query params.
func bindBody(ctx echo.Context, i interface{}) error {
	return errors.Wrap(binder.BindBody(ctx, i), "binding body")
}

func bindQuery(ctx echo.Context, i interface{}) error {
	return errors.Wrap(binder.BindQueryParams(ctx, i), "binding query params")
}

// pathParam returns the unescaped path param, e.g. an `%40`-encoded email.
func pathParam(ctx echo.Context, name string) string {
	val := ctx.Param(name)
	if unescaped, err := url.PathUnescape(val); err == nil {
		return unescaped
	}
	return val
}
