package scheduler

import (
	"context"
	"time"

	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/dao"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/infra/idgen"
	"github.com/radhian/sip-engine/infra/locker"
	"github.com/radhian/sip-engine/infra/payment"
	"github.com/radhian/sip-engine/infra/price"
)

type SchedulerUsecase interface {
	IsDue(sip model.Sip, asOf time.Time) bool
	ExecuteDueSIPs(ctx context.Context, asOf time.Time) (int, error)
	GetExecutionRuns() ([]model.ExecutionRun, error)
	GetExecutionRun(runID string) (model.ExecutionRun, []model.ExecutionRunItem, error)
}

// CallbackHandler applies payment outcomes; the reconciliation usecase satisfies it.
type CallbackHandler interface {
	OnCallback(ctx context.Context, outcome entity.PaymentOutcome) error
}

type Options struct {
	Workers int
	// SkipPendingInstallments skips a due SIP whose previous installment is
	// still waiting for its payment callback.
	SkipPendingInstallments bool
	Operator                string
}

type Dependencies struct {
	SipDao         dao.SipDao
	TransactionDao dao.TransactionDao
	RunDao         dao.ExecutionRunDao
	Oracle         price.Oracle
	Gateway        payment.Gateway
	Callbacks      CallbackHandler
	IDGen          idgen.Generator
	Locker         *locker.Locker
}

type schedulerUsecase struct {
	sipDao    dao.SipDao
	trxDao    dao.TransactionDao
	runDao    dao.ExecutionRunDao
	oracle    price.Oracle
	gateway   payment.Gateway
	callbacks CallbackHandler
	idgen     idgen.Generator
	locker    *locker.Locker
	opts      Options
}

func NewSchedulerUsecase(deps Dependencies, opts Options) SchedulerUsecase {
	if opts.Workers < 1 {
		opts.Workers = consts.DefaultWorkerNumber
	}
	if opts.Operator == "" {
		opts.Operator = consts.DefaultOperator
	}
	if deps.Locker == nil {
		deps.Locker = locker.New()
	}
	return &schedulerUsecase{
		sipDao:    deps.SipDao,
		trxDao:    deps.TransactionDao,
		runDao:    deps.RunDao,
		oracle:    deps.Oracle,
		gateway:   deps.Gateway,
		callbacks: deps.Callbacks,
		idgen:     deps.IDGen,
		locker:    deps.Locker,
		opts:      opts,
	}
}
