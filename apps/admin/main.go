package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/homework"
	"github.com/trezcool/agendai/core/schedule"
	emailsvc "github.com/trezcool/agendai/services/email"
	logsvc "github.com/trezcool/agendai/services/logger"
	"github.com/trezcool/agendai/storage/database"
	dummydb "github.com/trezcool/agendai/storage/database/dummy"
	sqlxrepos "github.com/trezcool/agendai/storage/database/sqlx"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()

	stdLogger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	rbLogger := logsvc.NewRollbarLogger(stdLogger, conf)
	rbLogger.Enable(!conf.Debug)
	logger = rbLogger

	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	os.Exit(run(conf))
}

func run(conf *core.Config) int {
	cli := commandLine{
		out: color.Output,
		now: time.Now,
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	defer emailsvc.Wait()

	if conf.Database.InMemory {
		db := dummydb.NewDB()
		cli.homeworkSvc = homework.NewService(dummydb.NewTaskRepository(db), mailSvc, conf)
		cli.scheduleSvc = schedule.NewService(dummydb.NewScheduleRepository(db))
	} else {
		db, err := database.Open(context.Background(), conf)
		errAndDie(err)
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("closing database", err)
			}
		}()

		cli.db = db
		cli.homeworkSvc = homework.NewService(sqlxrepos.NewTaskRepository(db), mailSvc, conf)
		cli.scheduleSvc = schedule.NewService(sqlxrepos.NewScheduleRepository(db, logger))
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed: "+err.Error(), err)
		}
		return 1
	}
	return 0
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
