package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/agendai/apps/api/echo"
	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/dashboard"
	"github.com/trezcool/agendai/core/grade"
	"github.com/trezcool/agendai/core/homework"
	"github.com/trezcool/agendai/core/schedule"
	emailsvc "github.com/trezcool/agendai/services/email"
	logsvc "github.com/trezcool/agendai/services/logger"
	"github.com/trezcool/agendai/storage/database"
	dummydb "github.com/trezcool/agendai/storage/database/dummy"
	sqlxrepos "github.com/trezcool/agendai/storage/database/sqlx"
)

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	// Store is the data layer: postgres repositories, or in-memory ones when
	// conf.Database.InMemory is set (DB is nil then).
	Store struct {
		dig.Out
		DB       *sqlx.DB
		Tasks    homework.Repository
		Grades   grade.Repository
		Schedule schedule.Repository
	}

	ServerParam struct {
		dig.In
		Conf         *core.Config
		Logger       core.Logger
		Validate     *validator.Validate
		Translator   ut.Translator
		HomeworkSvc  *homework.Service
		GradeSvc     *grade.Service
		ScheduleSvc  *schedule.Service
		DashboardSvc *dashboard.Service
	}
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newStore(conf *core.Config, loggerParam DBLoggerParam) Store {
	if conf.Database.InMemory {
		db := dummydb.NewDB()
		return Store{
			Tasks:    dummydb.NewTaskRepository(db),
			Grades:   dummydb.NewGradeRepository(db),
			Schedule: dummydb.NewScheduleRepository(db),
		}
	}

	setUp := func() (*sqlx.DB, error) {
		db, err := database.Open(context.Background(), conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return Store{
		DB:       db,
		Tasks:    sqlxrepos.NewTaskRepository(db),
		Grades:   sqlxrepos.NewGradeRepository(db),
		Schedule: sqlxrepos.NewScheduleRepository(db, loggerParam.Logger),
	}
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

// newTranslator returns the translator of validation messages.
func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newServer(p ServerParam) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:         p.Conf,
		Logger:       p.Logger,
		Validate:     p.Validate,
		Translator:   p.Translator,
		HomeworkSvc:  p.HomeworkSvc,
		GradeSvc:     p.GradeSvc,
		ScheduleSvc:  p.ScheduleSvc,
		DashboardSvc: p.DashboardSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStore))
	must(c.Provide(newEmailService))
	must(c.Provide(validator.New))
	must(c.Provide(newTranslator))
	must(c.Provide(homework.NewService))
	must(c.Provide(grade.NewService))
	must(c.Provide(schedule.NewService))
	must(c.Provide(dashboard.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
