package sip

import (
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/utils"
)

const (
	opPause        = "pause"
	opUnpause      = "unpause"
	opStop         = "stop"
	opModifyStepUp = "modifyStepUp"
)

func (u *sipUsecase) Pause(sipID string) (model.Sip, error) {
	return u.mutate(sipID, opPause, onlyFrom(consts.SipStateActive), func(sip *model.Sip) {
		sip.State = consts.SipStatePaused
	})
}

func (u *sipUsecase) Unpause(sipID string) (model.Sip, error) {
	return u.mutate(sipID, opUnpause, onlyFrom(consts.SipStatePaused), func(sip *model.Sip) {
		sip.State = consts.SipStateActive
	})
}

func (u *sipUsecase) Stop(sipID string) (model.Sip, error) {
	return u.mutate(sipID, opStop, onlyFrom(consts.SipStateActive, consts.SipStatePaused), func(sip *model.Sip) {
		sip.State = consts.SipStateStopped
	})
}

func (u *sipUsecase) ModifyStepUp(sipID string, stepUpPercentage float64) (model.Sip, error) {
	if stepUpPercentage < 0 {
		return model.Sip{}, entity.NewValidationError("step-up percentage cannot be negative")
	}
	return u.mutate(sipID, opModifyStepUp, onlyFrom(consts.SipStateActive, consts.SipStatePaused), func(sip *model.Sip) {
		sip.StepUpPercentage = stepUpPercentage
	})
}

// OnPaymentSuccess counts one more successful installment.
func (u *sipUsecase) OnPaymentSuccess(sipID string) (model.Sip, error) {
	return u.mutate(sipID, "", nil, func(sip *model.Sip) {
		sip.InstallmentCount++
	})
}

// AdvanceSchedule moves the next execution date forward by one period,
// computed from the current next execution date.
func (u *sipUsecase) AdvanceSchedule(sipID string) (model.Sip, error) {
	return u.mutate(sipID, "", nil, func(sip *model.Sip) {
		sip.NextExecutionDate = utils.NextExecutionDate(sip.NextExecutionDate, sip.Frequency)
	})
}

// ApplySuccessfulInstallment does OnPaymentSuccess and AdvanceSchedule in a single write.
func (u *sipUsecase) ApplySuccessfulInstallment(sipID string) (model.Sip, error) {
	sip, err := u.mutate(sipID, "", nil, func(sip *model.Sip) {
		sip.InstallmentCount++
		sip.NextExecutionDate = utils.NextExecutionDate(sip.NextExecutionDate, sip.Frequency)
	})
	if err != nil {
		return sip, err
	}
	log.Infof("[SIP] %s installment #%d settled, next on %s",
		sip.ID, sip.InstallmentCount, utils.FormatDate(sip.NextExecutionDate))
	return sip, nil
}

func onlyFrom(states ...int) func(int) bool {
	return func(state int) bool {
		for _, s := range states {
			if s == state {
				return true
			}
		}
		return false
	}
}

// mutate loads the SIP, checks the transition guard and persists the change.
// A failed guard leaves the stored SIP untouched.
func (u *sipUsecase) mutate(sipID, operation string, allowed func(int) bool, apply func(*model.Sip)) (model.Sip, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	sip, err := u.getSip(sipID)
	if err != nil {
		return sip, err
	}
	if allowed != nil && !allowed(sip.State) {
		return sip, entity.NewInvalidStateError(sip.ID, consts.SipStateName(sip.State), operation)
	}

	apply(&sip)
	sip.UpdateTime = time.Now().Unix()

	found, err := u.sipDao.UpdateSip(sip)
	if err != nil {
		return sip, fmt.Errorf("failed to update sip %s: %w", sipID, err)
	}
	if !found {
		return sip, entity.NewNotFoundError(entity.KindSip, sipID)
	}
	if operation != "" {
		log.Infof("[SIP] %s %s -> %s", sip.ID, operation, consts.SipStateName(sip.State))
	}
	return sip, nil
}
