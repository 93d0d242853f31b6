package memdao

import (
	"fmt"

	"github.com/radhian/sip-engine/infra/db/model"
)

func (s *Store) CreateFund(fund model.Fund) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.funds[fund.ID]; ok {
		return fmt.Errorf("failed to save fund: duplicate id %s", fund.ID)
	}
	s.funds[fund.ID] = fund
	s.fundOrder = append(s.fundOrder, fund.ID)
	s.writes++
	return nil
}

func (s *Store) GetFundByID(fundID string) (model.Fund, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fund, ok := s.funds[fundID]
	return fund, ok, nil
}

func (s *Store) GetFunds() ([]model.Fund, error) {
	return s.filterFunds(func(model.Fund) bool { return true }), nil
}

func (s *Store) GetFundsByCategory(category int) ([]model.Fund, error) {
	return s.filterFunds(func(f model.Fund) bool { return f.Category == category }), nil
}

func (s *Store) GetFundsByRiskLevel(riskLevel int) ([]model.Fund, error) {
	return s.filterFunds(func(f model.Fund) bool { return f.RiskLevel == riskLevel }), nil
}

func (s *Store) filterFunds(keep func(model.Fund) bool) []model.Fund {
	s.mu.RLock()
	defer s.mu.RUnlock()
	funds := make([]model.Fund, 0)
	for _, id := range s.fundOrder {
		if f := s.funds[id]; keep(f) {
			funds = append(funds, f)
		}
	}
	return funds
}

func (s *Store) UpdateFund(fund model.Fund) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.funds[fund.ID]
	if !ok {
		return false, nil
	}
	fund.CreateTime = old.CreateTime
	s.funds[fund.ID] = fund
	s.writes++
	return true, nil
}

func (s *Store) DeleteFund(fundID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.funds[fundID]; !ok {
		return false, nil
	}
	delete(s.funds, fundID)
	s.fundOrder = removeFromOrder(s.fundOrder, fundID)
	s.writes++
	return true, nil
}

func (s *Store) FundExists(fundID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.funds[fundID]
	return ok, nil
}

func (s *Store) CountFunds() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.funds)), nil
}
