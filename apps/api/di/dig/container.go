package dig_container

import (
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/phoebuz/apps/api/echo"
	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/reminder"
	"github.com/trezcool/phoebuz/core/study"
	emailsvc "github.com/trezcool/phoebuz/services/email"
	logsvc "github.com/trezcool/phoebuz/services/logger"
	"github.com/trezcool/phoebuz/storage/database"
	inmemdb "github.com/trezcool/phoebuz/storage/database/inmem"
	sqlxrepos "github.com/trezcool/phoebuz/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

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

// newDB returns nil when the row store is kept in memory.
func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	if conf.Database.InMemory {
		return nil
	}

	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db.DB); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

func newRepositories(conf *core.Config, db *sqlx.DB) study.Repositories {
	if db == nil {
		return inmemdb.NewRepositories(inmemdb.Open())
	}
	return sqlxrepos.NewRepositories(db, conf.Database.QueryTimeout)
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	study.InitValidators(validate, translator)
	return validate
}

func newMetrics(registry *study.Registry) *echoapi.Metrics {
	return echoapi.NewMetrics(prometheus.DefaultRegisterer, registry)
}

func newServerDeps(
	validate *validator.Validate,
	translator ut.Translator,
	registry *study.Registry,
	reminders *reminder.Service,
	metrics *echoapi.Metrics,
) echoapi.Deps {
	return echoapi.Deps{
		Validate:   validate,
		Translator: translator,
		Registry:   registry,
		Reminders:  reminders,
		Metrics:    metrics,
	}
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newRepositories))
	must(c.Provide(newEmailService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(study.NewRegistry))
	must(c.Provide(reminder.NewService))
	must(c.Provide(newMetrics))
	must(c.Provide(newServerDeps))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
