package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/user"
	"github.com/skillspring/server/services/logger"
	"github.com/skillspring/server/storage/database"
	"github.com/skillspring/server/storage/database/inmem"
	"github.com/skillspring/server/storage/database/mongodb"
)

var logger *zap.SugaredLogger

func main() {
	os.Exit(run())
}

func run() int {
	conf := core.NewConfig()

	zl, err := logsvc.NewZapLogger(conf, "admin")
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	logger = zl.Sugar()

	cli := commandLine{}
	if conf.Database.Engine == core.DBEngineMemory {
		cli.usrSvc = user.NewService(inmemdb.NewUserRepository(inmemdb.Open()))
	} else {
		ctx := context.Background()
		client, err := database.Open(ctx, conf)
		errAndDie(err)
		defer func() { _ = client.Disconnect(ctx) }()

		cli.db = client.Database(conf.Database.Name)
		cli.usrSvc = user.NewService(mongorepos.NewUserRepository(cli.db))
	}

	defer func() { _ = zl.Sync() }()

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Errorf("error: %s", err)
		}
		return 1
	}
	return 0
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
