package reconciliation

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
)

// OnCallback applies a payment outcome to its transaction exactly once.
// Unknown transactions and repeated deliveries are no-ops. Only SUCCESS
// advances the SIP; FAILURE leaves it due for the same installment.
func (u *reconciliationUsecase) OnCallback(ctx context.Context, outcome entity.PaymentOutcome) error {
	if outcome.Status != consts.PaymentStatusSuccess && outcome.Status != consts.PaymentStatusFailure {
		return entity.NewValidationError("callback status must be SUCCESS or FAILURE, got %s", consts.PaymentStatusName(outcome.Status))
	}

	trx, found, err := u.dao.GetTransactionByID(outcome.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to get transaction %s: %w", outcome.TransactionID, err)
	}
	if !found {
		log.Warnf("[Reconcile] callback for unknown transaction %s ignored", outcome.TransactionID)
		return nil
	}
	if trx.CallbackApplied {
		log.Infof("[Reconcile] duplicate callback for %s ignored (already %s)",
			trx.ID, consts.PaymentStatusName(trx.Status))
		return nil
	}

	applied, _, err := u.dao.ApplyTransactionCallback(trx.ID, outcome.Status, time.Now().Unix())
	if err != nil {
		return err
	}
	if !applied {
		log.Infof("[Reconcile] concurrent callback for %s already applied", trx.ID)
		return nil
	}

	if outcome.Status == consts.PaymentStatusFailure {
		log.Infof("[Reconcile] payment %s failed, SIP %s stays due", trx.ID, trx.SipID)
		return nil
	}

	sipID := trx.SipID
	if outcome.SipID != "" && outcome.SipID != sipID {
		log.Warnf("[Reconcile] callback for %s names SIP %s, transaction belongs to %s", trx.ID, outcome.SipID, sipID)
	}

	if _, err := u.lifecycle.ApplySuccessfulInstallment(sipID); err != nil {
		// the flag is already set, so a redelivery will not retry this
		log.Errorf("[Reconcile] transaction %s settled but SIP %s not advanced, needs manual repair: %v", trx.ID, sipID, err)
		return fmt.Errorf("transaction %s needs manual repair: %w: %w", trx.ID, entity.ErrUnreconciled, err)
	}
	log.Infof("[Reconcile] payment %s settled for SIP %s", trx.ID, sipID)
	return nil
}
