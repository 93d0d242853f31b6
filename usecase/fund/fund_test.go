package fund

import (
	"errors"
	"testing"

	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/memdao"
	"github.com/radhian/sip-engine/infra/price"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFundUsecase(t *testing.T) (FundUsecase, *price.Simulated) {
	t.Helper()
	oracle := price.NewSimulated(0, 1)
	uc := NewFundUsecase(memdao.New(), oracle)
	n, err := uc.SeedDefaultFunds()
	require.NoError(t, err)
	require.Equal(t, 6, n)
	return uc, oracle
}

func TestSeedDefaultFunds(t *testing.T) {
	uc, oracle := setupFundUsecase(t)

	funds, err := uc.GetAllFunds()
	require.NoError(t, err)
	require.Len(t, funds, 6)
	assert.Equal(t, "HDFC Flexi Cap Fund", funds[0].Name)

	nav, err := oracle.GetCurrentNAV("FUND_000006")
	require.NoError(t, err)
	assert.Equal(t, 32.50, nav)

	n, err := uc.SeedDefaultFunds()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFilters(t *testing.T) {
	uc, _ := setupFundUsecase(t)

	equity, err := uc.FilterByCategory(consts.FundCategoryEquity)
	require.NoError(t, err)
	assert.Len(t, equity, 2)

	low, err := uc.FilterByRiskLevel(consts.RiskLevelLow)
	require.NoError(t, err)
	assert.Len(t, low, 2)

	elss, _ := uc.FilterByCategory(consts.FundCategoryELSS)
	require.Len(t, elss, 1)
	assert.Equal(t, "FUND_000004", elss[0].ID)
}

func TestGetFundByID(t *testing.T) {
	uc, _ := setupFundUsecase(t)

	fund, err := uc.GetFundByID("FUND_000003")
	require.NoError(t, err)
	assert.Equal(t, "SBI Debt Fund", fund.Name)

	_, err = uc.GetFundByID("FUND_999999")
	assert.True(t, entity.IsFundNotFound(err))

	exists, _ := uc.FundExists("FUND_999999")
	assert.False(t, exists)
}

func TestAddFund(t *testing.T) {
	uc, oracle := setupFundUsecase(t)

	tests := []struct {
		name string
		req  entity.CreateFundRequest
	}{
		{name: "empty id", req: entity.CreateFundRequest{Name: "X", Category: "EQUITY", Risk: "HIGH", Nav: 10}},
		{name: "empty name", req: entity.CreateFundRequest{ID: "FUND_X", Category: "EQUITY", Risk: "HIGH", Nav: 10}},
		{name: "zero nav", req: entity.CreateFundRequest{ID: "FUND_X", Name: "X", Category: "EQUITY", Risk: "HIGH"}},
		{name: "bad category", req: entity.CreateFundRequest{ID: "FUND_X", Name: "X", Category: "GOLD", Risk: "HIGH", Nav: 10}},
		{name: "bad risk", req: entity.CreateFundRequest{ID: "FUND_X", Name: "X", Category: "EQUITY", Risk: "EXTREME", Nav: 10}},
		{name: "duplicate", req: entity.CreateFundRequest{ID: "FUND_000001", Name: "X", Category: "EQUITY", Risk: "HIGH", Nav: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.AddFund(tt.req)
			assert.True(t, errors.Is(err, entity.ErrValidation), "got %v", err)
		})
	}

	fund, err := uc.AddFund(entity.CreateFundRequest{ID: "FUND_GOLD", Name: "Gold ETF", Category: "hybrid", Risk: "medium", Nav: 55})
	require.NoError(t, err)
	assert.Equal(t, consts.FundCategoryHybrid, fund.Category)

	nav, err := oracle.GetCurrentNAV("FUND_GOLD")
	require.NoError(t, err)
	assert.Equal(t, 55.0, nav)
}

func TestUpdateNAV(t *testing.T) {
	uc, oracle := setupFundUsecase(t)

	fund, err := uc.UpdateNAV("FUND_000001", 200)
	require.NoError(t, err)
	assert.Equal(t, 200.0, fund.Nav)

	nav, _ := oracle.GetCurrentNAV("FUND_000001")
	assert.Equal(t, 200.0, nav)

	_, err = uc.UpdateNAV("FUND_000001", 0)
	assert.True(t, errors.Is(err, entity.ErrValidation))

	_, err = uc.UpdateNAV("FUND_999999", 10)
	assert.True(t, entity.IsFundNotFound(err))
}

func TestSimulateMarketMovement(t *testing.T) {
	uc, oracle := setupFundUsecase(t)

	funds, err := uc.SimulateMarketMovement(10)
	require.NoError(t, err)
	require.Len(t, funds, 6)
	assert.InDelta(t, 165.55, funds[0].Nav, 1e-9)

	nav, _ := oracle.GetCurrentNAV("FUND_000003")
	assert.InDelta(t, 50.38, nav, 1e-9)

	_, err = uc.SimulateMarketMovement(-100)
	assert.True(t, errors.Is(err, entity.ErrValidation))
}
