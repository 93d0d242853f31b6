package dao

import (
	"fmt"
	"time"

	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/utils"

	"github.com/jinzhu/gorm"
)

func (d *dao) CreateSip(sip model.Sip) error {
	if err := d.db.Create(&sip).Error; err != nil {
		return fmt.Errorf("failed to save sip: %w", err)
	}
	return nil
}

func (d *dao) GetSipByID(sipID string) (model.Sip, bool, error) {
	var sip model.Sip
	if err := d.db.Where("id = ?", sipID).First(&sip).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return sip, false, nil
		}
		return sip, false, fmt.Errorf("failed to fetch sip: %w", err)
	}
	return sip, true, nil
}

func (d *dao) GetSips() ([]model.Sip, error) {
	return d.findSips("")
}

func (d *dao) GetSipsByUserID(userID string) ([]model.Sip, error) {
	return d.findSips("user_id = ?", userID)
}

func (d *dao) GetSipsByFundID(fundID string) ([]model.Sip, error) {
	return d.findSips("fund_id = ?", fundID)
}

func (d *dao) GetSipsByState(state int) ([]model.Sip, error) {
	return d.findSips("state = ?", state)
}

func (d *dao) GetSipsByUserIDAndState(userID string, state int) ([]model.Sip, error) {
	return d.findSips("user_id = ? AND state = ?", userID, state)
}

// The date filter runs in Go so that day-granularity comparison does not depend
// on how the driver serializes timestamps.
func (d *dao) GetDueSips(asOf time.Time) ([]model.Sip, error) {
	active, err := d.findSips("state = ?", consts.SipStateActive)
	if err != nil {
		return nil, err
	}
	due := make([]model.Sip, 0, len(active))
	for _, sip := range active {
		if utils.IsOnOrBefore(sip.NextExecutionDate, asOf) {
			due = append(due, sip)
		}
	}
	return due, nil
}

func (d *dao) findSips(query string, args ...interface{}) ([]model.Sip, error) {
	sips := make([]model.Sip, 0)
	q := d.db
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Order("create_time ASC, id ASC").Find(&sips).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sips: %w", err)
	}
	return sips, nil
}

func (d *dao) UpdateSip(sip model.Sip) (bool, error) {
	res := d.db.Model(&model.Sip{}).Where("id = ?", sip.ID).Updates(map[string]interface{}{
		"user_id":             sip.UserID,
		"fund_id":             sip.FundID,
		"base_amount":         sip.BaseAmount,
		"frequency":           sip.Frequency,
		"state":               sip.State,
		"start_date":          sip.StartDate,
		"next_execution_date": sip.NextExecutionDate,
		"installment_count":   sip.InstallmentCount,
		"step_up_percentage":  sip.StepUpPercentage,
		"update_time":         sip.UpdateTime,
	})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update sip: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (d *dao) DeleteSip(sipID string) (bool, error) {
	res := d.db.Where("id = ?", sipID).Delete(&model.Sip{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete sip: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (d *dao) SipExists(sipID string) (bool, error) {
	n, err := d.count(&model.Sip{}, "id = ?", sipID)
	return n > 0, err
}

func (d *dao) CountSips() (int64, error) {
	return d.count(&model.Sip{}, "")
}
