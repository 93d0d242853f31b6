package reconciliation

import (
	"context"

	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/dao"
	"github.com/radhian/sip-engine/infra/db/model"
)

type ReconciliationUsecase interface {
	OnCallback(ctx context.Context, outcome entity.PaymentOutcome) error
	GetPendingTransactions() ([]model.Transaction, error)
}

// SipLifecycle is the part of the SIP state machine driven by a successful payment.
type SipLifecycle interface {
	ApplySuccessfulInstallment(sipID string) (model.Sip, error)
}

type reconciliationUsecase struct {
	dao       dao.TransactionDao
	lifecycle SipLifecycle
}

func NewReconciliationUsecase(trxDao dao.TransactionDao, lifecycle SipLifecycle) ReconciliationUsecase {
	return &reconciliationUsecase{dao: trxDao, lifecycle: lifecycle}
}
