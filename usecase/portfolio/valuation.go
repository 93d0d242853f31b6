package portfolio

import (
	"fmt"

	"github.com/labstack/gommon/log"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/utils"
)

func (u *portfolioUsecase) GetUserPortfolio(userID string) ([]entity.PortfolioItem, error) {
	sips, err := u.sipDao.GetSipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sips of user %s: %w", userID, err)
	}
	return u.buildItems(sips)
}

func (u *portfolioUsecase) FilterByState(userID string, state int) ([]entity.PortfolioItem, error) {
	sips, err := u.sipDao.GetSipsByUserIDAndState(userID, state)
	if err != nil {
		return nil, fmt.Errorf("failed to get sips of user %s: %w", userID, err)
	}
	return u.buildItems(sips)
}

func (u *portfolioUsecase) GetPortfolioSummary(userID string) (entity.PortfolioSummary, error) {
	var summary entity.PortfolioSummary
	items, err := u.GetUserPortfolio(userID)
	if err != nil {
		return summary, err
	}

	for _, item := range items {
		summary.TotalInvested += item.TotalInvested
		summary.TotalCurrentValue += item.CurrentValue
		summary.TotalUnits += item.TotalUnits

		switch item.Sip.State {
		case consts.SipStateActive:
			summary.ActiveSipCount++
		case consts.SipStatePaused:
			summary.PausedSipCount++
		case consts.SipStateStopped:
			summary.StoppedSipCount++
		}
	}

	summary.GainLoss = summary.TotalCurrentValue - summary.TotalInvested
	summary.GainLossPercentage = gainLossPercentage(summary.GainLoss, summary.TotalInvested)
	return summary, nil
}

func (u *portfolioUsecase) GetTransactionHistory(sipID string) ([]model.Transaction, error) {
	return u.trxDao.GetTransactionsBySipID(sipID)
}

func (u *portfolioUsecase) CalculateTotalInvested(sipID string) (float64, error) {
	invested, _, err := u.successfulTotals(sipID)
	return invested, err
}

func (u *portfolioUsecase) CalculateTotalUnits(sipID string) (float64, error) {
	_, units, err := u.successfulTotals(sipID)
	return units, err
}

// CalculateCurrentValue fails when the SIP is unknown or the oracle does not
// know its fund.
func (u *portfolioUsecase) CalculateCurrentValue(sipID string) (float64, error) {
	sip, found, err := u.sipDao.GetSipByID(sipID)
	if err != nil {
		return 0, fmt.Errorf("failed to get sip %s: %w", sipID, err)
	}
	if !found {
		return 0, entity.NewNotFoundError(entity.KindSip, sipID)
	}

	_, units, err := u.successfulTotals(sipID)
	if err != nil {
		return 0, err
	}
	nav, err := u.oracle.GetCurrentNAV(sip.FundID)
	if err != nil {
		return 0, err
	}
	return units * nav, nil
}

func (u *portfolioUsecase) buildItems(sips []model.Sip) ([]entity.PortfolioItem, error) {
	items := make([]entity.PortfolioItem, 0, len(sips))
	for _, sip := range sips {
		item, err := u.buildItem(sip)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (u *portfolioUsecase) buildItem(sip model.Sip) (entity.PortfolioItem, error) {
	item := entity.PortfolioItem{Sip: sip, FundName: consts.UnknownFundName}

	fund, found, err := u.fundDao.GetFundByID(sip.FundID)
	if err != nil {
		return item, fmt.Errorf("failed to get fund %s: %w", sip.FundID, err)
	}
	if found {
		item.FundName = fund.Name
	}

	nav, err := u.oracle.GetCurrentNAV(sip.FundID)
	if err != nil {
		log.Debugf("[Portfolio] no NAV for %s, valuing at 0: %v", sip.FundID, err)
		nav = 0
	}
	item.CurrentNav = nav

	item.TotalInvested, item.TotalUnits, err = u.successfulTotals(sip.ID)
	if err != nil {
		return item, err
	}

	item.CurrentValue = item.TotalUnits * item.CurrentNav
	item.GainLoss = item.CurrentValue - item.TotalInvested
	item.GainLossPercentage = gainLossPercentage(item.GainLoss, item.TotalInvested)

	n := sip.InstallmentCount + 1
	item.CurrentInstallmentAmount = utils.SteppedUpAmount(sip.BaseAmount, sip.StepUpPercentage, n)
	item.NextInstallmentAmount = utils.SteppedUpAmount(sip.BaseAmount, sip.StepUpPercentage, n+1)
	return item, nil
}

func (u *portfolioUsecase) successfulTotals(sipID string) (invested, units float64, err error) {
	trxs, err := u.trxDao.GetSuccessfulTransactionsBySipID(sipID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get transactions of sip %s: %w", sipID, err)
	}
	for _, trx := range trxs {
		invested += trx.Amount
		units += trx.Units
	}
	return invested, units, nil
}

func gainLossPercentage(gainLoss, invested float64) float64 {
	if invested <= 0 {
		return 0
	}
	return gainLoss / invested * 100
}
