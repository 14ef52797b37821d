package logsvc

import (
	"context"
	"fmt"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/skillspring/server/core"
)

// RollbarLogger writes every entry to zap and reports it to Rollbar when enabled.
type RollbarLogger struct {
	zl *zap.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(zl *zap.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{zl: zl}
}

// NewZapLogger returns a development logger in debug mode and a JSON production logger otherwise.
func NewZapLogger(conf *core.Config, name string) (*zap.Logger, error) {
	var zl *zap.Logger
	var err error
	if conf.Debug {
		zl, err = zap.NewDevelopment(zap.AddCallerSkip(2))
	} else {
		zl, err = zap.NewProduction(zap.AddCallerSkip(2))
	}
	if err != nil {
		return nil, err
	}
	return zl.Named(name), nil
}

// Enable turns Rollbar reporting on or off. Entries are always written to zap.
func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled && rollbar.Token() != "")
}

func (l RollbarLogger) Sync() error {
	rollbar.Wait()
	return l.zl.Sync()
}

// expected fmt: msg | error, map[string]interface{}, core.Person
func (l RollbarLogger) prepare(msg string, args []interface{}) ([]interface{}, []zap.Field) {
	var personSet bool
	rbArgs := make([]interface{}, 0, len(args)+2)
	rbArgs = append(rbArgs, msg)
	fields := make([]zap.Field, 0, len(args))

	for _, arg := range args {
		switch a := arg.(type) {
		case core.Person:
			if !personSet { // only set one Person
				ctx := rollbar.NewPersonContext(context.Background(), &rollbar.Person{Id: a.ID, Username: a.Name, Email: a.Email})
				rbArgs = append(rbArgs, ctx)
				fields = append(fields, zap.String("person", a.Email))
				personSet = true
			}
		case error:
			rbArgs = append(rbArgs, a)
			fields = append(fields, zap.String("error", fmt.Sprintf("%+v", a)))
		case map[string]interface{}:
			rbArgs = append(rbArgs, a)
			fields = append(fields, zap.Any("extras", a))
		default:
			rbArgs = append(rbArgs, a)
			fields = append(fields, zap.Any("arg", a))
		}
	}
	return rbArgs, fields
}

func (l RollbarLogger) log(level zapcore.Level, msg string, args []interface{}) {
	rbArgs, fields := l.prepare(msg, args)
	switch level {
	case zapcore.DebugLevel:
		rollbar.Debug(rbArgs...)
	case zapcore.InfoLevel:
		rollbar.Info(rbArgs...)
	case zapcore.WarnLevel:
		rollbar.Warning(rbArgs...)
	case zapcore.ErrorLevel:
		rollbar.Error(rbArgs...)
	default:
		rollbar.Critical(rbArgs...)
		rollbar.Wait() // flush before zap exits
	}
	if ce := l.zl.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) { l.log(zapcore.DebugLevel, msg, args) }
func (l RollbarLogger) Info(msg string, args ...interface{})  { l.log(zapcore.InfoLevel, msg, args) }
func (l RollbarLogger) Warn(msg string, args ...interface{})  { l.log(zapcore.WarnLevel, msg, args) }
func (l RollbarLogger) Error(msg string, args ...interface{}) { l.log(zapcore.ErrorLevel, msg, args) }

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(zapcore.FatalLevel, msg, args)
}
