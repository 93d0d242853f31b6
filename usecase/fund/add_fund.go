package fund

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
)

func (u *fundUsecase) AddFund(req entity.CreateFundRequest) (model.Fund, error) {
	fund, err := validateCreateFundRequest(req)
	if err != nil {
		return fund, err
	}

	exists, err := u.dao.FundExists(fund.ID)
	if err != nil {
		return fund, fmt.Errorf("failed to check fund %s: %w", fund.ID, err)
	}
	if exists {
		return fund, entity.NewValidationError("fund %s already exists", fund.ID)
	}

	now := time.Now().Unix()
	fund.CreateTime = now
	fund.UpdateTime = now
	if err := u.dao.CreateFund(fund); err != nil {
		return fund, err
	}
	if err := u.market.UpdateNAV(fund.ID, fund.Nav); err != nil {
		return fund, err
	}

	log.Infof("[Fund] added %s (%s) nav=%.2f", fund.ID, fund.Name, fund.Nav)
	return fund, nil
}

func validateCreateFundRequest(req entity.CreateFundRequest) (model.Fund, error) {
	var fund model.Fund
	if strings.TrimSpace(req.ID) == "" {
		return fund, entity.NewValidationError("fund id must not be empty")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fund, entity.NewValidationError("fund name must not be empty")
	}
	if req.Nav <= 0 {
		return fund, entity.NewValidationError("NAV must be positive")
	}
	category, ok := consts.ParseFundCategory(strings.ToUpper(req.Category))
	if !ok {
		return fund, entity.NewValidationError("unknown fund category %q", req.Category)
	}
	risk, ok := consts.ParseRiskLevel(strings.ToUpper(req.Risk))
	if !ok {
		return fund, entity.NewValidationError("unknown risk level %q", req.Risk)
	}

	return model.Fund{
		ID:        strings.TrimSpace(req.ID),
		Name:      strings.TrimSpace(req.Name),
		Category:  category,
		RiskLevel: risk,
		Nav:       req.Nav,
	}, nil
}
