package fund

import (
	"fmt"

	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
)

func (u *fundUsecase) GetAllFunds() ([]model.Fund, error) {
	return u.dao.GetFunds()
}

func (u *fundUsecase) GetFundByID(fundID string) (model.Fund, error) {
	fund, found, err := u.dao.GetFundByID(fundID)
	if err != nil {
		return fund, fmt.Errorf("failed to get fund %s: %w", fundID, err)
	}
	if !found {
		return fund, entity.NewNotFoundError(entity.KindFund, fundID)
	}
	return fund, nil
}

func (u *fundUsecase) FilterByCategory(category int) ([]model.Fund, error) {
	return u.dao.GetFundsByCategory(category)
}

func (u *fundUsecase) FilterByRiskLevel(riskLevel int) ([]model.Fund, error) {
	return u.dao.GetFundsByRiskLevel(riskLevel)
}

func (u *fundUsecase) FundExists(fundID string) (bool, error) {
	return u.dao.FundExists(fundID)
}

func (u *fundUsecase) GetCurrentNAV(fundID string) (float64, error) {
	return u.market.GetCurrentNAV(fundID)
}
