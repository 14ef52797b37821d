package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillspring/server/core/user"
	"github.com/skillspring/server/storage/database"
)

var (
	ensureIndexesFunc = database.EnsureIndexes // mockable

	errHelp         = errors.New("help provided")
	errUserNotFound = errors.New("user not found")
	errNoDatabase   = errors.New("no document database configured")
)

type commandLine struct {
	db     *mongo.Database // nil with the in-memory engine
	usrSvc *user.Service
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.writer(), "Usage:")
	fmt.Fprintln(cli.writer(), "  migrate - create the database indexes")
	fmt.Fprintln(cli.writer(), "  makeadmin -email EMAIL - grant the admin role to a registered user")
}

func (cli *commandLine) writer() io.Writer {
	if cli.out == nil {
		return os.Stdout
	}
	return cli.out
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	makeAdminCmd := flag.NewFlagSet("makeadmin", flag.ContinueOnError)
	makeAdminCmd.SetOutput(cli.writer())
	makeAdminEmail := makeAdminCmd.String("email", "", "The email of the user to promote.")

	ctx := context.Background()

	switch args[1] {
	case "migrate":
		return cli.migrate(ctx)
	case "makeadmin":
		if err := makeAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *makeAdminEmail == "" {
			makeAdminCmd.Usage()
			return errHelp
		}
		return cli.makeAdmin(ctx, *makeAdminEmail)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) migrate(ctx context.Context) error {
	if cli.db == nil {
		return errNoDatabase
	}
	if err := ensureIndexesFunc(ctx, cli.db); err != nil {
		return err
	}
	fmt.Fprintln(cli.writer(), "indexes are up to date")
	return nil
}

func (cli *commandLine) makeAdmin(ctx context.Context, email string) error {
	res, err := cli.usrSvc.MakeAdmin(ctx, email)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errUserNotFound
	}
	fmt.Fprintf(cli.writer(), "%s is now an admin\n", email)
	return nil
}
