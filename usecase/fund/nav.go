package fund

import (
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
)

// UpdateNAV sets the authoritative NAV and refreshes the fund's snapshot.
func (u *fundUsecase) UpdateNAV(fundID string, nav float64) (model.Fund, error) {
	if nav <= 0 {
		return model.Fund{}, entity.NewValidationError("NAV must be positive")
	}

	fund, err := u.GetFundByID(fundID)
	if err != nil {
		return fund, err
	}
	if err := u.market.UpdateNAV(fundID, nav); err != nil {
		return fund, err
	}

	fund.Nav = nav
	fund.UpdateTime = time.Now().Unix()
	if _, err := u.dao.UpdateFund(fund); err != nil {
		return fund, fmt.Errorf("failed to update fund snapshot: %w", err)
	}
	return fund, nil
}

// SimulateMarketMovement moves every NAV by percentage, given in percent
// (5 is +5%), and returns the refreshed catalog.
func (u *fundUsecase) SimulateMarketMovement(percentage float64) ([]model.Fund, error) {
	if percentage <= -100 {
		return nil, entity.NewValidationError("market movement must be above -100%%")
	}

	moved := u.market.SimulateMarketMovement(percentage / 100)

	now := time.Now().Unix()
	for fundID, nav := range moved {
		fund, found, err := u.dao.GetFundByID(fundID)
		if err != nil {
			return nil, fmt.Errorf("failed to get fund %s: %w", fundID, err)
		}
		if !found {
			continue
		}
		fund.Nav = nav
		fund.UpdateTime = now
		if _, err := u.dao.UpdateFund(fund); err != nil {
			return nil, fmt.Errorf("failed to update fund snapshot: %w", err)
		}
	}

	log.Infof("[Fund] market moved %.2f%%", percentage)
	return u.dao.GetFunds()
}

// SyncNAVs loads every stored fund snapshot into the price oracle.
func (u *fundUsecase) SyncNAVs() error {
	funds, err := u.dao.GetFunds()
	if err != nil {
		return err
	}
	for _, fund := range funds {
		if fund.Nav <= 0 {
			log.Warnf("[Fund] skipping NAV sync for %s: nav=%.4f", fund.ID, fund.Nav)
			continue
		}
		if err := u.market.UpdateNAV(fund.ID, fund.Nav); err != nil {
			return err
		}
	}
	return nil
}
