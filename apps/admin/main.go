package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assessment"
	logsvc "github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/storage/database"
	sqlxrepos "github.com/trezcool/shule/storage/database/sqlx"
)

var (
	logger    *log.Logger
	appLogger core.Logger
)

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	appLogger = logsvc.NewRollbarLogger(logger, conf)
	appLogger.Enable(!conf.Debug && !conf.TestMode)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	sdb := sqlx.NewDb(db, conf.Database.Engine)

	// start CLI
	cli := commandLine{
		conf:    conf,
		db:      db,
		catRepo: sqlxrepos.NewCatalogRepository(sdb),
		schRepo: sqlxrepos.NewSchoolConfigRepository(sdb),
		assSvc:  assessment.NewService(sdb, sqlxrepos.NewAssessmentRepository(sdb)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		appLogger.Fatal(err.Error(), err)
	}
}
