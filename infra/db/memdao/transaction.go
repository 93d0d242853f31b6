package memdao

import (
	"fmt"

	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/infra/db/model"
)

func (s *Store) CreateTransaction(trx model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trxs[trx.ID]; ok {
		return fmt.Errorf("failed to save transaction: duplicate id %s", trx.ID)
	}
	s.trxs[trx.ID] = trx
	s.trxOrder = append(s.trxOrder, trx.ID)
	addToIndex(s.sipTrx, trx.SipID, trx.ID)
	s.writes++
	return nil
}

func (s *Store) GetTransactionByID(trxID string) (model.Transaction, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trx, ok := s.trxs[trxID]
	return trx, ok, nil
}

func (s *Store) GetTransactions() ([]model.Transaction, error) {
	return s.filterTransactions("", false, func(model.Transaction) bool { return true }), nil
}

func (s *Store) GetTransactionsBySipID(sipID string) ([]model.Transaction, error) {
	return s.filterTransactions(sipID, true, func(model.Transaction) bool { return true }), nil
}

func (s *Store) GetTransactionsByStatus(status int) ([]model.Transaction, error) {
	return s.filterTransactions("", false, func(t model.Transaction) bool { return t.Status == status }), nil
}

func (s *Store) GetSuccessfulTransactionsBySipID(sipID string) ([]model.Transaction, error) {
	return s.filterTransactions(sipID, true, func(t model.Transaction) bool {
		return t.Status == consts.PaymentStatusSuccess
	}), nil
}

func (s *Store) filterTransactions(sipID string, bySip bool, keep func(model.Transaction) bool) []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trxs := make([]model.Transaction, 0)
	var members map[string]struct{}
	if bySip {
		members = s.sipTrx[sipID]
		if len(members) == 0 {
			return trxs
		}
	}
	for _, id := range s.trxOrder {
		if members != nil {
			if _, ok := members[id]; !ok {
				continue
			}
		}
		if t := s.trxs[id]; keep(t) {
			trxs = append(trxs, t)
		}
	}
	return trxs
}

func (s *Store) UpdateTransaction(trx model.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.trxs[trx.ID]
	if !ok {
		return false, nil
	}
	removeFromIndex(s.sipTrx, old.SipID, old.ID)
	trx.CreateTime = old.CreateTime
	s.trxs[trx.ID] = trx
	addToIndex(s.sipTrx, trx.SipID, trx.ID)
	s.writes++
	return true, nil
}

func (s *Store) DeleteTransaction(trxID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.trxs[trxID]
	if !ok {
		return false, nil
	}
	removeFromIndex(s.sipTrx, old.SipID, old.ID)
	delete(s.trxs, trxID)
	s.trxOrder = removeFromOrder(s.trxOrder, trxID)
	s.writes++
	return true, nil
}

func (s *Store) TransactionExists(trxID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.trxs[trxID]
	return ok, nil
}

func (s *Store) CountTransactions() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.trxs)), nil
}

func (s *Store) ApplyTransactionCallback(trxID string, status int, updateTime int64) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	trx, ok := s.trxs[trxID]
	if !ok {
		return false, false, nil
	}
	if trx.CallbackApplied {
		return false, true, nil
	}
	trx.Status = status
	trx.CallbackApplied = true
	trx.UpdateTime = updateTime
	s.trxs[trxID] = trx
	s.writes++
	return true, true, nil
}

func (s *Store) HasPendingInstallment(sipID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id := range s.sipTrx[sipID] {
		t := s.trxs[id]
		if t.Status == consts.PaymentStatusPending && t.Type == consts.TransactionTypeInstallment {
			return true, nil
		}
	}
	return false, nil
}
