package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/skillspring/server/core"
)

const (
	tokenCookieName    = "token"
	contextIdentityKey = "identity"
)

var signingMethod = jwt.SigningMethodHS256

// Identity is the authenticated caller, decoded from the token cookie.
type Identity struct {
	Email  string
	Claims jwt.MapClaims
}

// authenticate verifies the signature and expiry of a token and decodes its claims.
func authenticate(token, secret string) (Identity, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{signingMethod.Alg()}))
	if err != nil {
		return Identity{}, errors.Wrap(err, "parsing token")
	}
	email, _ := claims["email"].(string)
	return Identity{Email: email, Claims: claims}, nil
}

// GenerateToken signs `claims` with an `iat` of now and an `exp` of now + ttl.
func GenerateToken(claims jwt.MapClaims, secret string, ttl time.Duration) (string, error) {
	signed := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		signed[k] = v
	}
	now := time.Now()
	signed["iat"] = now.Unix()
	signed["exp"] = now.Add(ttl).Unix()

	ss, err := jwt.NewWithClaims(signingMethod, signed).SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// authGate rejects requests without a valid token cookie. Accepted requests carry the caller's
// Identity in the context.
func authGate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(tokenCookieName)
			if err != nil || cookie.Value == "" {
				return errUnauthorized
			}
			identity, err := authenticate(cookie.Value, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthorized).SetInternal(err)
			}
			ctx.Set(contextIdentityKey, identity)
			return next(ctx)
		}
	}
}

func getContextIdentity(ctx echo.Context) (Identity, bool) {
	identity, ok := ctx.Get(contextIdentityKey).(Identity)
	return identity, ok
}

type authApi struct {
	conf     *core.Config
	validate *validator.Validate
}

func registerAuthAPI(app *echo.Echo, conf *core.Config, validate *validator.Validate) {
	api := authApi{conf: conf, validate: validate}

	app.POST("/jwt", api.issueToken)
	app.POST("/logout", api.logout)
}

// tokenCookie returns the token cookie; a negative maxAge clears it.
func (api *authApi) tokenCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     tokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if api.conf.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	if maxAge > 0 {
		cookie.Expires = time.Now().Add(time.Duration(maxAge) * time.Second)
	}
	return cookie
}

func (api *authApi) issueToken(ctx echo.Context) error {
	claims := make(map[string]interface{})
	if err := bindBody(ctx, &claims); err != nil {
		return errors.Wrap(err, "binding to token claims")
	}

	data := TokenRequest{}
	data.Email, _ = claims["email"].(string)
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	claims["email"] = data.Email

	token, err := GenerateToken(claims, api.conf.SecretKey, api.conf.JWTExpiration)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	ctx.SetCookie(api.tokenCookie(token, int(api.conf.JWTExpiration.Seconds())))
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (api *authApi) logout(ctx echo.Context) error {
	ctx.SetCookie(api.tokenCookie("", -1))
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

type (
	TokenRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	SuccessResponse struct {
		Success bool `json:"success"`
	}
)

func (tr *TokenRequest) Validate(validate *validator.Validate) error {
	tr.Email = core.CleanString(tr.Email, true /* lower */)
	return validate.Struct(tr)
}
