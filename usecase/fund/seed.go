package fund

import (
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/infra/db/model"
)

var defaultFunds = []model.Fund{
	{ID: "FUND_000001", Name: "HDFC Flexi Cap Fund", Category: consts.FundCategoryEquity, RiskLevel: consts.RiskLevelHigh, Nav: 150.50},
	{ID: "FUND_000002", Name: "ICICI Prudential Balanced", Category: consts.FundCategoryHybrid, RiskLevel: consts.RiskLevelMedium, Nav: 85.25},
	{ID: "FUND_000003", Name: "SBI Debt Fund", Category: consts.FundCategoryDebt, RiskLevel: consts.RiskLevelLow, Nav: 45.80},
	{ID: "FUND_000004", Name: "Axis ELSS Tax Saver", Category: consts.FundCategoryELSS, RiskLevel: consts.RiskLevelHigh, Nav: 120.00},
	{ID: "FUND_000005", Name: "Kotak Small Cap Fund", Category: consts.FundCategoryEquity, RiskLevel: consts.RiskLevelHigh, Nav: 95.75},
	{ID: "FUND_000006", Name: "HDFC Corporate Bond", Category: consts.FundCategoryDebt, RiskLevel: consts.RiskLevelLow, Nav: 32.50},
}

// SeedDefaultFunds inserts the default catalog, leaving funds that already
// exist untouched, then syncs NAVs into the oracle. It returns how many funds
// were inserted.
func (u *fundUsecase) SeedDefaultFunds() (int, error) {
	now := time.Now().Unix()
	inserted := 0
	for _, fund := range defaultFunds {
		exists, err := u.dao.FundExists(fund.ID)
		if err != nil {
			return inserted, fmt.Errorf("failed to check fund %s: %w", fund.ID, err)
		}
		if exists {
			continue
		}
		fund.CreateTime = now
		fund.UpdateTime = now
		if err := u.dao.CreateFund(fund); err != nil {
			return inserted, err
		}
		inserted++
	}

	if err := u.SyncNAVs(); err != nil {
		return inserted, err
	}
	log.Infof("[Fund] seeded %d default funds", inserted)
	return inserted, nil
}
