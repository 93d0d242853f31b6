package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/radhian/sip-engine/config"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/handler"
	"github.com/radhian/sip-engine/infra/clock"
	"github.com/radhian/sip-engine/infra/cronjob"
	"github.com/radhian/sip-engine/infra/db/dao"
	"github.com/radhian/sip-engine/infra/db/memdao"
	"github.com/radhian/sip-engine/infra/idgen"
	"github.com/radhian/sip-engine/infra/locker"
	"github.com/radhian/sip-engine/infra/logger"
	"github.com/radhian/sip-engine/infra/payment"
	"github.com/radhian/sip-engine/infra/price"
	"github.com/radhian/sip-engine/middlewares"
	fundUsecase "github.com/radhian/sip-engine/usecase/fund"
	portfolioUsecase "github.com/radhian/sip-engine/usecase/portfolio"
	reconciliationUsecase "github.com/radhian/sip-engine/usecase/reconciliation"
	schedulerUsecase "github.com/radhian/sip-engine/usecase/scheduler"
	sipUsecase "github.com/radhian/sip-engine/usecase/sip"
	userUsecase "github.com/radhian/sip-engine/usecase/user"

	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" //postgres
	_ "github.com/jinzhu/gorm/dialects/sqlite"   //sqlite3
	"github.com/labstack/gommon/log"
)

type App struct {
	Config  *config.Config
	DB      *gorm.DB
	Dao     dao.DaoMethod
	Router  *mux.Router
	Handler *handler.SipHandler
	Cron    *cronjob.Scheduler
}

func (a *App) Initialize(cfg *config.Config) error {
	a.Config = cfg
	logger.Setup(cfg.LogLevel)

	if err := a.openStore(); err != nil {
		return err
	}

	gen := idgen.New(cfg.IDStrategy)
	if seq, ok := gen.(*idgen.SequenceGenerator); ok {
		if err := a.reserveSequences(seq); err != nil {
			return err
		}
	}

	oracle := price.NewSimulated(cfg.NavFluctuation, time.Now().UnixNano())
	gateway, err := payment.NewSimulated(cfg.PaymentMode, cfg.PaymentSuccessRate, cfg.PaymentRateLimit, time.Now().UnixNano())
	if err != nil {
		return err
	}
	simClock := clock.New(cfg.SimStartDate)

	fundUc := fundUsecase.NewFundUsecase(a.Dao, oracle)
	if cfg.SeedFunds {
		if _, err := fundUc.SeedDefaultFunds(); err != nil {
			return fmt.Errorf("failed to seed funds: %w", err)
		}
	} else if err := fundUc.SyncNAVs(); err != nil {
		return fmt.Errorf("failed to load NAVs: %w", err)
	}

	sipUc := sipUsecase.NewSipUsecase(sipUsecase.Dependencies{
		SipDao:  a.Dao,
		UserDao: a.Dao,
		FundDao: a.Dao,
		IDGen:   gen,
		Clock:   simClock,
	})
	reconciliationUc := reconciliationUsecase.NewReconciliationUsecase(a.Dao, sipUc)
	schedulerUc := schedulerUsecase.NewSchedulerUsecase(schedulerUsecase.Dependencies{
		SipDao:         a.Dao,
		TransactionDao: a.Dao,
		RunDao:         a.Dao,
		Oracle:         oracle,
		Gateway:        gateway,
		Callbacks:      reconciliationUc,
		IDGen:          gen,
		Locker:         locker.New(),
	}, schedulerUsecase.Options{
		Workers:                 cfg.SchedulerWorkers,
		SkipPendingInstallments: cfg.SkipPendingInstallments,
		Operator:                consts.DefaultOperator,
	})

	a.Handler = handler.NewSipHandler(handler.SipHandler{
		Fund:           fundUc,
		User:           userUsecase.NewUserUsecase(a.Dao, gen),
		Sip:            sipUc,
		Scheduler:      schedulerUc,
		Reconciliation: reconciliationUc,
		Portfolio:      portfolioUsecase.NewPortfolioUsecase(a.Dao, a.Dao, a.Dao, oracle),
		Clock:          simClock,
		Payments:       gateway,
	})

	a.Router = mux.NewRouter().StrictSlash(true)
	a.initializeRoutes()
	return nil
}

func (a *App) openStore() error {
	cfg := a.Config
	var err error

	switch cfg.DbDriver {
	case config.DriverMemory:
		log.Infof("[App] using in-memory store")
		a.Dao = memdao.New()
		return nil
	case config.DriverSqlite:
		a.DB, err = gorm.Open("sqlite3", cfg.DbPath)
	default:
		a.DB, err = gorm.Open("postgres", cfg.PostgresDSN())
	}
	if err != nil {
		return fmt.Errorf("cannot connect to %s database: %w", cfg.DbDriver, err)
	}
	log.Infof("[App] connected to %s database", cfg.DbDriver)

	if err := dao.Migrate(a.DB); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	a.Dao = dao.NewDaoMethod(a.DB)
	return nil
}

// reserveSequences keeps generated ids clear of rows that already exist.
func (a *App) reserveSequences(seq *idgen.SequenceGenerator) error {
	users, err := a.Dao.CountUsers()
	if err != nil {
		return err
	}
	sips, err := a.Dao.CountSips()
	if err != nil {
		return err
	}
	trxs, err := a.Dao.CountTransactions()
	if err != nil {
		return err
	}
	runs, err := a.Dao.GetExecutionRuns()
	if err != nil {
		return err
	}

	seq.Reserve(consts.PrefixUser, users)
	seq.Reserve(consts.PrefixSip, sips)
	seq.Reserve(consts.PrefixTransaction, trxs)
	seq.Reserve(consts.PrefixRun, int64(len(runs)))
	return nil
}

func (a *App) initializeRoutes() {
	a.Router.Use(middlewares.SetContentTypeMiddleware)
	RegisterSipRoutes(a.Router, a.Handler)
}

// StartScheduler runs the due-SIP pass on the configured cron schedule.
func (a *App) StartScheduler() error {
	a.Cron = cronjob.New()
	if err := a.Cron.AddJob(a.Config.CronSpec, handler.ExecutionJob{Handler: a.Handler}); err != nil {
		return fmt.Errorf("invalid CRON_SPEC %q: %w", a.Config.CronSpec, err)
	}
	a.Cron.Start()
	return nil
}

// RunServer blocks serving HTTP and returns the listener error.
func (a *App) RunServer() error {
	log.Infof("[App] server starting on port %v", a.Config.Port)
	if err := http.ListenAndServe(":"+a.Config.Port, a.Router); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if a.Cron != nil {
		a.Cron.Stop()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
