package reconciliation

import (
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/infra/db/model"
)

// GetPendingTransactions lists transactions still waiting for a callback.
func (u *reconciliationUsecase) GetPendingTransactions() ([]model.Transaction, error) {
	return u.dao.GetTransactionsByStatus(consts.PaymentStatusPending)
}
