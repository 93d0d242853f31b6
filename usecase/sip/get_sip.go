package sip

import (
	"fmt"

	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/utils"
)

func (u *sipUsecase) GetSIP(sipID string) (model.Sip, error) {
	return u.getSip(sipID)
}

func (u *sipUsecase) GetSIPsByUser(userID string) ([]model.Sip, error) {
	return u.sipDao.GetSipsByUserID(userID)
}

func (u *sipUsecase) GetSIPsByUserAndState(userID string, state int) ([]model.Sip, error) {
	return u.sipDao.GetSipsByUserIDAndState(userID, state)
}

// CurrentInstallmentAmount is the amount the next execution will charge.
func (u *sipUsecase) CurrentInstallmentAmount(sipID string) (float64, error) {
	sip, err := u.getSip(sipID)
	if err != nil {
		return 0, err
	}
	return utils.SteppedUpAmount(sip.BaseAmount, sip.StepUpPercentage, sip.InstallmentCount+1), nil
}

func (u *sipUsecase) getSip(sipID string) (model.Sip, error) {
	sip, found, err := u.sipDao.GetSipByID(sipID)
	if err != nil {
		return sip, fmt.Errorf("failed to get sip %s: %w", sipID, err)
	}
	if !found {
		return sip, entity.NewNotFoundError(entity.KindSip, sipID)
	}
	return sip, nil
}
