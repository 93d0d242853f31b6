package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/utils"
	"golang.org/x/sync/errgroup"
)

// IsDue reports whether sip should be charged on asOf.
func (u *schedulerUsecase) IsDue(sip model.Sip, asOf time.Time) bool {
	return sip.State == consts.SipStateActive && utils.IsOnOrBefore(sip.NextExecutionDate, asOf)
}

// ExecuteDueSIPs initiates one installment for every SIP due on asOf and
// returns how many were initiated. Failures of a single SIP are recorded on
// the run and never abort the pass; the error is reserved for failing to load
// the due list.
func (u *schedulerUsecase) ExecuteDueSIPs(ctx context.Context, asOf time.Time) (int, error) {
	asOf = utils.TruncateToDay(asOf)

	due, err := u.sipDao.GetDueSips(asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to load due sips: %w", err)
	}
	if len(due) == 0 {
		log.Debugf("[Scheduler] no SIPs due as of %s", utils.FormatDate(asOf))
		return 0, nil
	}

	log.Infof("[Scheduler] %d SIPs due as of %s, workers=%d", len(due), utils.FormatDate(asOf), u.opts.Workers)

	items := make([]model.ExecutionRunItem, len(due))
	var initiated int64

	g := new(errgroup.Group)
	g.SetLimit(u.opts.Workers)
	for i, sip := range due {
		i, sip := i, sip
		g.Go(func() error {
			items[i] = u.executeSip(ctx, sip, asOf)
			if items[i].Outcome == consts.ItemOutcomeInitiated {
				atomic.AddInt64(&initiated, 1)
			}
			return nil
		})
	}
	_ = g.Wait()

	u.recordRun(asOf, items)

	log.Infof("[Scheduler] initiated %d of %d due SIPs as of %s", initiated, len(due), utils.FormatDate(asOf))
	return int(initiated), nil
}

func (u *schedulerUsecase) executeSip(ctx context.Context, due model.Sip, asOf time.Time) (item model.ExecutionRunItem) {
	item = model.ExecutionRunItem{
		SipID:      due.ID,
		CreateTime: time.Now().Unix(),
		CreateBy:   u.opts.Operator,
	}

	// set once the PENDING transaction exists and until the gateway accepts it
	var unsent string
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[Scheduler] Panic recovered for SIP %s: %v", due.ID, r)
			if unsent != "" {
				u.closeUnsent(unsent)
			}
			item.Outcome = consts.ItemOutcomeFailed
			item.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	if !u.locker.TryLock(due.ID) {
		return skipped(item, "execution already in flight")
	}
	defer u.locker.Unlock(due.ID)

	sip, found, err := u.sipDao.GetSipByID(due.ID)
	if err != nil {
		return failed(item, fmt.Errorf("failed to reload sip: %w", err))
	}
	if !found || !u.IsDue(sip, asOf) {
		return skipped(item, "no longer due")
	}

	if u.opts.SkipPendingInstallments {
		pending, err := u.trxDao.HasPendingInstallment(sip.ID)
		if err != nil {
			return failed(item, fmt.Errorf("failed to check pending installments: %w", err))
		}
		if pending {
			log.Infof("[Scheduler] SIP %s skipped: previous installment awaits its payment callback", sip.ID)
			return skipped(item, "previous installment pending")
		}
	}

	nav, err := u.oracle.GetCurrentNAV(sip.FundID)
	if err != nil {
		if entity.IsFundNotFound(err) {
			log.Warnf("[Scheduler] SIP %s skipped: %v", sip.ID, err)
			return skipped(item, err.Error())
		}
		return failed(item, fmt.Errorf("failed to get NAV: %w", err))
	}

	amount := utils.SteppedUpAmount(sip.BaseAmount, sip.StepUpPercentage, sip.InstallmentCount+1)
	now := time.Now().Unix()
	trx := model.Transaction{
		ID:            u.idgen.Generate(consts.PrefixTransaction),
		SipID:         sip.ID,
		Amount:        amount,
		Units:         utils.Units(amount, nav),
		Nav:           nav,
		Status:        consts.PaymentStatusPending,
		ExecutionDate: asOf,
		Type:          consts.TransactionTypeInstallment,
		CreateTime:    now,
		UpdateTime:    now,
	}
	if err := u.trxDao.CreateTransaction(trx); err != nil {
		return failed(item, err)
	}
	item.TransactionID = trx.ID
	unsent = trx.ID

	sipID := sip.ID
	callback := func(transactionID string, status int) {
		outcome := entity.PaymentOutcome{TransactionID: transactionID, SipID: sipID, Status: status}
		if err := u.callbacks.OnCallback(context.Background(), outcome); err != nil {
			log.Errorf("[Scheduler] callback for %s failed: %v", transactionID, err)
		}
	}

	if err := u.gateway.InitiatePayment(ctx, trx.ID, amount, callback); err != nil {
		unsent = ""
		u.closeUnsent(trx.ID)
		return failed(item, fmt.Errorf("failed to initiate payment: %w", err))
	}
	unsent = ""

	log.Infof("[Scheduler] SIP %s installment #%d initiated: %s amount=%.2f nav=%.4f",
		sip.ID, sip.InstallmentCount+1, trx.ID, amount, nav)
	item.Outcome = consts.ItemOutcomeInitiated
	return item
}

// closeUnsent marks a transaction the gateway never accepted as FAILURE so it
// does not hold back later installments of its SIP.
func (u *schedulerUsecase) closeUnsent(trxID string) {
	if _, _, err := u.trxDao.ApplyTransactionCallback(trxID, consts.PaymentStatusFailure, time.Now().Unix()); err != nil {
		log.Errorf("[Scheduler] failed to close transaction %s: %v", trxID, err)
	}
}

func skipped(item model.ExecutionRunItem, reason string) model.ExecutionRunItem {
	item.Outcome = consts.ItemOutcomeSkipped
	item.Error = reason
	return item
}

func failed(item model.ExecutionRunItem, err error) model.ExecutionRunItem {
	log.Errorf("[Scheduler] SIP %s failed: %v", item.SipID, err)
	item.Outcome = consts.ItemOutcomeFailed
	item.Error = err.Error()
	return item
}

// recordRun persists the pass summary. A failure here is logged only, the
// payments have already been initiated.
func (u *schedulerUsecase) recordRun(asOf time.Time, items []model.ExecutionRunItem) {
	result := entity.ExecutionResult{AsOf: utils.FormatDate(asOf), Due: len(items)}
	for _, item := range items {
		switch item.Outcome {
		case consts.ItemOutcomeInitiated:
			result.Initiated++
		case consts.ItemOutcomeSkipped:
			result.Skipped++
		default:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", item.SipID, item.Error))
		}
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		log.Errorf("[Scheduler] failed to marshal run result: %v", err)
		return
	}

	now := time.Now().Unix()
	run := model.ExecutionRun{
		ID:             u.idgen.Generate(consts.PrefixRun),
		AsOfDate:       result.AsOf,
		TotalDue:       int64(result.Due),
		InitiatedCount: int64(result.Initiated),
		SkippedCount:   int64(result.Skipped),
		FailedCount:    int64(result.Failed),
		Status:         consts.StatusFinished,
		Result:         string(resultJSON),
		CreateTime:     now,
		CreateBy:       u.opts.Operator,
		UpdateTime:     now,
		UpdateBy:       u.opts.Operator,
	}
	if err := u.runDao.CreateExecutionRun(run, items); err != nil {
		log.Errorf("[Scheduler] failed to record run %s: %v", run.ID, err)
	}
}
