package fund

import (
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/dao"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/infra/price"
)

type FundUsecase interface {
	GetAllFunds() ([]model.Fund, error)
	GetFundByID(fundID string) (model.Fund, error)
	FilterByCategory(category int) ([]model.Fund, error)
	FilterByRiskLevel(riskLevel int) ([]model.Fund, error)
	FundExists(fundID string) (bool, error)
	AddFund(req entity.CreateFundRequest) (model.Fund, error)
	GetCurrentNAV(fundID string) (float64, error)
	UpdateNAV(fundID string, nav float64) (model.Fund, error)
	SimulateMarketMovement(percentage float64) ([]model.Fund, error)
	SeedDefaultFunds() (int, error)
	SyncNAVs() error
}

// MarketSimulator is a price oracle that can move every NAV at once.
type MarketSimulator interface {
	price.Oracle
	SimulateMarketMovement(percentage float64) map[string]float64
}

type fundUsecase struct {
	dao    dao.FundDao
	market MarketSimulator
}

func NewFundUsecase(fundDao dao.FundDao, market MarketSimulator) FundUsecase {
	return &fundUsecase{dao: fundDao, market: market}
}
