package dao

import (
	"fmt"

	"github.com/radhian/sip-engine/infra/db/model"

	"github.com/jinzhu/gorm"
)

func (d *dao) CreateFund(fund model.Fund) error {
	if err := d.db.Create(&fund).Error; err != nil {
		return fmt.Errorf("failed to save fund: %w", err)
	}
	return nil
}

func (d *dao) GetFundByID(fundID string) (model.Fund, bool, error) {
	var fund model.Fund
	if err := d.db.Where("id = ?", fundID).First(&fund).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return fund, false, nil
		}
		return fund, false, fmt.Errorf("failed to fetch fund: %w", err)
	}
	return fund, true, nil
}

func (d *dao) GetFunds() ([]model.Fund, error) {
	return d.findFunds("")
}

func (d *dao) GetFundsByCategory(category int) ([]model.Fund, error) {
	return d.findFunds("category = ?", category)
}

func (d *dao) GetFundsByRiskLevel(riskLevel int) ([]model.Fund, error) {
	return d.findFunds("risk_level = ?", riskLevel)
}

func (d *dao) findFunds(query string, args ...interface{}) ([]model.Fund, error) {
	funds := make([]model.Fund, 0)
	q := d.db
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Order("create_time ASC, id ASC").Find(&funds).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch funds: %w", err)
	}
	return funds, nil
}

func (d *dao) UpdateFund(fund model.Fund) (bool, error) {
	res := d.db.Model(&model.Fund{}).Where("id = ?", fund.ID).Updates(map[string]interface{}{
		"name":        fund.Name,
		"category":    fund.Category,
		"risk_level":  fund.RiskLevel,
		"nav":         fund.Nav,
		"update_time": fund.UpdateTime,
	})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update fund: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (d *dao) DeleteFund(fundID string) (bool, error) {
	res := d.db.Where("id = ?", fundID).Delete(&model.Fund{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete fund: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (d *dao) FundExists(fundID string) (bool, error) {
	n, err := d.count(&model.Fund{}, "id = ?", fundID)
	return n > 0, err
}

func (d *dao) CountFunds() (int64, error) {
	return d.count(&model.Fund{}, "")
}
