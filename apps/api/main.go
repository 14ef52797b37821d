package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/skillspring/server/apps/api/echo"
	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/assignment"
	"github.com/skillspring/server/core/class"
	"github.com/skillspring/server/core/payment"
	"github.com/skillspring/server/core/review"
	"github.com/skillspring/server/core/teacher"
	"github.com/skillspring/server/core/user"
	"github.com/skillspring/server/services/email"
	"github.com/skillspring/server/services/logger"
	"github.com/skillspring/server/services/payment"
	"github.com/skillspring/server/storage/database"
	"github.com/skillspring/server/storage/database/inmem"
	"github.com/skillspring/server/storage/database/mongodb"
)

type repositories struct {
	users       user.Repository
	teachers    teacher.Repository
	classes     class.Repository
	assignments assignment.Repository
	payments    payment.Repository
	reviews     review.Repository
	close       func(context.Context) error
}

func main() {
	conf := core.NewConfig()

	zl, err := logsvc.NewZapLogger(conf, "api")
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	apiLogger := logsvc.NewRollbarLogger(zl, conf)
	apiLogger.Enable(!conf.Debug)
	defer func() { _ = apiLogger.Sync() }()

	// =========================================================================
	// Initialize App

	apiLogger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	repos, err := openRepositories(conf)
	if err != nil {
		apiLogger.Fatal("Failed to open database", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()
		if err := repos.close(ctx); err != nil {
			apiLogger.Error("Failed to close database", err)
		}
	}()
	defer apiLogger.Info("Application stopped")

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, apiLogger)
	}
	gateway := paymentsvc.NewStripeGateway(conf, zl.Named("stripe").Sugar())

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("db").Set(conf.Database.Engine)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			apiLogger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(conf.Server.Address(), nil, &echoapi.Deps{
		Conf:          conf,
		Logger:        apiLogger,
		Validate:      validate,
		Translator:    translator,
		UserSvc:       user.NewService(repos.users),
		TeacherSvc:    teacher.NewService(repos.teachers, repos.users, mailSvc),
		ClassSvc:      class.NewService(repos.classes),
		AssignmentSvc: assignment.NewService(repos.assignments),
		PaymentSvc:    payment.NewService(repos.payments, gateway, conf.Stripe.Currency),
		ReviewSvc:     review.NewService(repos.reviews),
	})

	go func() {
		server.Start()
	}()
	apiLogger.Info(fmt.Sprintf("API listening on %s", conf.Server.Address()))

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		apiLogger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		apiLogger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shut down and shed load
		if err := server.Shutdown(ctx); err != nil {
			apiLogger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				apiLogger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func openRepositories(conf *core.Config) (*repositories, error) {
	if conf.Database.Engine == core.DBEngineMemory {
		db := inmemdb.Open()
		return &repositories{
			users:       inmemdb.NewUserRepository(db),
			teachers:    inmemdb.NewTeacherRepository(db),
			classes:     inmemdb.NewClassRepository(db),
			assignments: inmemdb.NewAssignmentRepository(db),
			payments:    inmemdb.NewPaymentRepository(db),
			reviews:     inmemdb.NewReviewRepository(db),
			close:       func(context.Context) error { return nil },
		}, nil
	}

	ctx := context.Background()
	client, err := database.Open(ctx, conf)
	if err != nil {
		return nil, err
	}
	db := client.Database(conf.Database.Name)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &repositories{
		users:       mongorepos.NewUserRepository(db),
		teachers:    mongorepos.NewTeacherRepository(db),
		classes:     mongorepos.NewClassRepository(db),
		assignments: mongorepos.NewAssignmentRepository(db),
		payments:    mongorepos.NewPaymentRepository(db),
		reviews:     mongorepos.NewReviewRepository(db),
		close:       client.Disconnect,
	}, nil
}
