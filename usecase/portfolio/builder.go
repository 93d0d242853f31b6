package portfolio

import (
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/dao"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/infra/price"
)

// PortfolioUsecase values SIPs by replaying their successful transactions
// against the current NAV. It never writes.
type PortfolioUsecase interface {
	GetUserPortfolio(userID string) ([]entity.PortfolioItem, error)
	GetPortfolioSummary(userID string) (entity.PortfolioSummary, error)
	FilterByState(userID string, state int) ([]entity.PortfolioItem, error)
	GetTransactionHistory(sipID string) ([]model.Transaction, error)
	CalculateTotalInvested(sipID string) (float64, error)
	CalculateTotalUnits(sipID string) (float64, error)
	CalculateCurrentValue(sipID string) (float64, error)
}

type portfolioUsecase struct {
	sipDao  dao.SipDao
	trxDao  dao.TransactionDao
	fundDao dao.FundDao
	oracle  price.Oracle
}

func NewPortfolioUsecase(sipDao dao.SipDao, trxDao dao.TransactionDao, fundDao dao.FundDao, oracle price.Oracle) PortfolioUsecase {
	return &portfolioUsecase{sipDao: sipDao, trxDao: trxDao, fundDao: fundDao, oracle: oracle}
}
