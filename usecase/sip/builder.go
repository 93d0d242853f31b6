package sip

import (
	"sync"
	"time"

	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/dao"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/infra/idgen"
)

// SipUsecase is the SIP lifecycle state machine.
type SipUsecase interface {
	CreateSIP(req entity.CreateSipRequest) (model.Sip, error)
	Pause(sipID string) (model.Sip, error)
	Unpause(sipID string) (model.Sip, error)
	Stop(sipID string) (model.Sip, error)
	ModifyStepUp(sipID string, stepUpPercentage float64) (model.Sip, error)

	OnPaymentSuccess(sipID string) (model.Sip, error)
	AdvanceSchedule(sipID string) (model.Sip, error)
	ApplySuccessfulInstallment(sipID string) (model.Sip, error)

	GetSIP(sipID string) (model.Sip, error)
	GetSIPsByUser(userID string) ([]model.Sip, error)
	GetSIPsByUserAndState(userID string, state int) ([]model.Sip, error)
	CurrentInstallmentAmount(sipID string) (float64, error)
}

// Calendar supplies the business date used when a SIP has no explicit start date.
type Calendar interface {
	Today() time.Time
}

type Dependencies struct {
	SipDao  dao.SipDao
	UserDao dao.UserDao
	FundDao dao.FundDao
	IDGen   idgen.Generator
	Clock   Calendar
}

type sipUsecase struct {
	// mu serializes read-modify-write of SIP rows.
	mu sync.Mutex

	sipDao  dao.SipDao
	userDao dao.UserDao
	fundDao dao.FundDao
	idgen   idgen.Generator
	clock   Calendar
}

func NewSipUsecase(deps Dependencies) SipUsecase {
	return &sipUsecase{
		sipDao:  deps.SipDao,
		userDao: deps.UserDao,
		fundDao: deps.FundDao,
		idgen:   deps.IDGen,
		clock:   deps.Clock,
	}
}
