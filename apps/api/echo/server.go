package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/assignment"
	"github.com/skillspring/server/core/class"
	"github.com/skillspring/server/core/payment"
	"github.com/skillspring/server/core/review"
	"github.com/skillspring/server/core/teacher"
	"github.com/skillspring/server/core/user"
)

const welcomeMessage = "Hello World I am SkillSpring Server Side."

type (
	Deps struct {
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool

		UserSvc       *user.Service
		TeacherSvc    *teacher.Service
		ClassSvc      *class.Service
		AssignmentSvc *assignment.Service
		PaymentSvc    *payment.Service
		ReviewSvc     *review.Service
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		addr     string
		app      *echo.Echo
		deps     *Deps
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

// NewServer builds the API server. A nil shutdown channel is replaced by a fresh one.
func NewServer(addr string, shutdown chan os.Signal, deps *Deps) Server {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
	}
	s := &server{
		addr:     addr,
		app:      echo.New(),
		deps:     deps,
		errors:   make(chan error, 1),
		shutdown: shutdown,
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Debug = conf.Debug
	s.app.Logger.SetLevel(log.INFO)
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(requestIDMiddleware())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.IsTest()) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(corsMiddleware(conf.Server.AllowedOrigins))

	s.app.GET("/", home)

	gate := authGate(conf.SecretKey)
	registerAuthAPI(s.app, conf, s.deps.Validate)
	registerUserAPI(s.app, gate, s.deps.UserSvc, s.deps.Validate)
	registerTeacherAPI(s.app, gate, s.deps.TeacherSvc, s.deps.Validate)
	registerClassAPI(s.app, gate, s.deps.ClassSvc, s.deps.Validate)
	registerAssignmentAPI(s.app, gate, s.deps.AssignmentSvc, s.deps.Validate)
	registerPaymentAPI(s.app, gate, s.deps.PaymentSvc, s.deps.Validate)
	registerReviewAPI(s.app, gate, s.deps.ReviewSvc, s.deps.Validate)
}

// Start listens on the server address and forwards SIGINT/SIGTERM to ShutdownSignal.
func (s *server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.addr); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, welcomeMessage)
}
