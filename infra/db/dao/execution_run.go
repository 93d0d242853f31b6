package dao

import (
	"fmt"

	"github.com/radhian/sip-engine/infra/db/model"

	"github.com/jinzhu/gorm"
)

func (d *dao) CreateExecutionRun(run model.ExecutionRun, items []model.ExecutionRunItem) error {
	tx := d.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin: %w", tx.Error)
	}

	if err := tx.Create(&run).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to save execution run: %w", err)
	}
	for _, item := range items {
		item.ExecutionRunID = run.ID
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save execution run item: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit execution run: %w", err)
	}
	return nil
}

func (d *dao) GetExecutionRuns() ([]model.ExecutionRun, error) {
	runs := make([]model.ExecutionRun, 0)
	if err := d.db.Order("create_time ASC, id ASC").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch execution runs: %w", err)
	}
	return runs, nil
}

func (d *dao) GetExecutionRunByID(runID string) (model.ExecutionRun, bool, error) {
	var run model.ExecutionRun
	if err := d.db.Where("id = ?", runID).First(&run).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return run, false, nil
		}
		return run, false, fmt.Errorf("run not found: %w", err)
	}
	return run, true, nil
}

func (d *dao) GetExecutionRunItemsByRunID(runID string) ([]model.ExecutionRunItem, error) {
	items := make([]model.ExecutionRunItem, 0)
	if err := d.db.Where("execution_run_id = ?", runID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch execution run items: %w", err)
	}
	return items, nil
}
