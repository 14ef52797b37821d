package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillspring/server/core/user"
	"github.com/skillspring/server/storage/database/inmem"
	"github.com/skillspring/server/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	// set up DB & repos
	usrRepo = inmemdb.NewUserRepository(inmemdb.Open())

	// start CLI
	return &commandLine{
		usrSvc: user.NewService(usrRepo),
		out:    new(bytes.Buffer),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func runCLITests(t *testing.T, cli *commandLine, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			} else if tt.wantErr != nil || tt.wantErrStr != "" {
				t.Errorf("cli.run() expected an error")
			}
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	origEnsureIndexes := ensureIndexesFunc
	defer func() { ensureIndexesFunc = origEnsureIndexes }()

	var calls int
	ensureIndexesFunc = func(ctx context.Context, db *mongo.Database) error {
		calls++
		if calls > 1 {
			return errors.New("index build failed")
		}
		return nil
	}

	runCLITests(t, cli, []cliTest{
		{name: "in-memory engine", args: []string{"migrate"}, wantErr: errNoDatabase},
	})
	if calls != 0 {
		t.Fatalf("EnsureIndexes called %d times without a database", calls)
	}

	cli.db = new(mongo.Database)
	runCLITests(t, cli, []cliTest{
		{name: "create indexes", args: []string{"migrate"}},
		{name: "index error", args: []string{"migrate"}, wantErrStr: "index build failed"},
	})
	if calls != 2 {
		t.Errorf("EnsureIndexes calls = %d, want 2", calls)
	}
}

func Test_commandLine_makeAdmin(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", user.RoleStudent)

	runCLITests(t, cli, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"makeadmin"}, wantErr: errHelp},
		{name: "user not found", args: []string{"makeadmin", "-email", "lol@test.cd"}, wantErr: errUserNotFound},
		{name: "promote", args: []string{"makeadmin", "-email", " AWE@test.cd "}},
		{name: "promote again", args: []string{"makeadmin", "-email", usr.Email}},
	})

	refreshedUsr, err := usrRepo.GetUserByEmail(context.Background(), usr.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail() failed, %v", err)
	}
	if !refreshedUsr.IsAdmin() {
		t.Errorf("role = %q, want %q", refreshedUsr.Role, user.RoleAdmin)
	}
}
