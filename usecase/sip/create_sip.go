package sip

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/utils"
)

// CreateSIP registers an ACTIVE SIP whose first installment is due on its start date.
func (u *sipUsecase) CreateSIP(req entity.CreateSipRequest) (model.Sip, error) {
	frequency, startDate, err := u.validateCreateSipRequest(req)
	if err != nil {
		return model.Sip{}, err
	}

	userExists, err := u.userDao.UserExists(req.UserID)
	if err != nil {
		return model.Sip{}, fmt.Errorf("failed to check user %s: %w", req.UserID, err)
	}
	if !userExists {
		return model.Sip{}, entity.NewNotFoundError(entity.KindUser, req.UserID)
	}

	fundExists, err := u.fundDao.FundExists(req.FundID)
	if err != nil {
		return model.Sip{}, fmt.Errorf("failed to check fund %s: %w", req.FundID, err)
	}
	if !fundExists {
		return model.Sip{}, entity.NewNotFoundError(entity.KindFund, req.FundID)
	}

	now := time.Now().Unix()
	sip := model.Sip{
		ID:                u.idgen.Generate(consts.PrefixSip),
		UserID:            req.UserID,
		FundID:            req.FundID,
		BaseAmount:        req.Amount,
		Frequency:         frequency,
		State:             consts.SipStateActive,
		StartDate:         startDate,
		NextExecutionDate: startDate,
		StepUpPercentage:  req.StepUpPercentage,
		CreateTime:        now,
		UpdateTime:        now,
	}
	if err := u.sipDao.CreateSip(sip); err != nil {
		return model.Sip{}, err
	}

	log.Infof("[SIP] created %s user=%s fund=%s amount=%.2f %s from %s",
		sip.ID, sip.UserID, sip.FundID, sip.BaseAmount, consts.FrequencyName(frequency), utils.FormatDate(startDate))
	return sip, nil
}

func (u *sipUsecase) validateCreateSipRequest(req entity.CreateSipRequest) (int, time.Time, error) {
	if req.Amount <= 0 {
		return 0, time.Time{}, entity.NewValidationError("SIP amount must be positive")
	}
	if req.StepUpPercentage < 0 {
		return 0, time.Time{}, entity.NewValidationError("step-up percentage cannot be negative")
	}

	frequency := consts.FrequencyMonthly
	if req.Frequency != "" {
		f, ok := consts.ParseFrequency(strings.ToUpper(req.Frequency))
		if !ok {
			return 0, time.Time{}, entity.NewValidationError("unknown frequency %q", req.Frequency)
		}
		frequency = f
	}

	startDate := u.clock.Today()
	if req.StartDate != "" {
		d, err := utils.ParseDate(req.StartDate)
		if err != nil {
			return 0, time.Time{}, entity.NewValidationError("start date must be YYYY-MM-DD")
		}
		startDate = d
	}
	return frequency, startDate, nil
}
