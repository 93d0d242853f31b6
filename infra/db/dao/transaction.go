package dao

import (
	"fmt"

	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/infra/db/model"

	"github.com/jinzhu/gorm"
)

func (d *dao) CreateTransaction(trx model.Transaction) error {
	if err := d.db.Create(&trx).Error; err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (d *dao) GetTransactionByID(trxID string) (model.Transaction, bool, error) {
	var trx model.Transaction
	if err := d.db.Where("id = ?", trxID).First(&trx).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return trx, false, nil
		}
		return trx, false, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return trx, true, nil
}

func (d *dao) GetTransactions() ([]model.Transaction, error) {
	return d.findTransactions("")
}

func (d *dao) GetTransactionsBySipID(sipID string) ([]model.Transaction, error) {
	return d.findTransactions("sip_id = ?", sipID)
}

func (d *dao) GetTransactionsByStatus(status int) ([]model.Transaction, error) {
	return d.findTransactions("status = ?", status)
}

func (d *dao) GetSuccessfulTransactionsBySipID(sipID string) ([]model.Transaction, error) {
	return d.findTransactions("sip_id = ? AND status = ?", sipID, consts.PaymentStatusSuccess)
}

func (d *dao) findTransactions(query string, args ...interface{}) ([]model.Transaction, error) {
	trxs := make([]model.Transaction, 0)
	q := d.db
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Order("create_time ASC, id ASC").Find(&trxs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return trxs, nil
}

func (d *dao) UpdateTransaction(trx model.Transaction) (bool, error) {
	res := d.db.Model(&model.Transaction{}).Where("id = ?", trx.ID).Updates(map[string]interface{}{
		"sip_id":           trx.SipID,
		"amount":           trx.Amount,
		"units":            trx.Units,
		"nav":              trx.Nav,
		"status":           trx.Status,
		"execution_date":   trx.ExecutionDate,
		"type":             trx.Type,
		"callback_applied": trx.CallbackApplied,
		"update_time":      trx.UpdateTime,
	})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update transaction: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (d *dao) DeleteTransaction(trxID string) (bool, error) {
	res := d.db.Where("id = ?", trxID).Delete(&model.Transaction{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (d *dao) TransactionExists(trxID string) (bool, error) {
	n, err := d.count(&model.Transaction{}, "id = ?", trxID)
	return n > 0, err
}

func (d *dao) CountTransactions() (int64, error) {
	return d.count(&model.Transaction{}, "")
}

func (d *dao) ApplyTransactionCallback(trxID string, status int, updateTime int64) (bool, bool, error) {
	res := d.db.Model(&model.Transaction{}).
		Where("id = ? AND callback_applied = ?", trxID, false).
		Updates(map[string]interface{}{
			"status":           status,
			"callback_applied": true,
			"update_time":      updateTime,
		})
	if res.Error != nil {
		return false, false, fmt.Errorf("failed to apply callback: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, true, nil
	}

	found, err := d.TransactionExists(trxID)
	if err != nil {
		return false, false, err
	}
	return false, found, nil
}

func (d *dao) HasPendingInstallment(sipID string) (bool, error) {
	n, err := d.count(&model.Transaction{}, "sip_id = ? AND status = ? AND type = ?",
		sipID, consts.PaymentStatusPending, consts.TransactionTypeInstallment)
	return n > 0, err
}
