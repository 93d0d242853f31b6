package memdao

import (
	"fmt"
	"time"

	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/utils"
)

func (s *Store) CreateSip(sip model.Sip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sips[sip.ID]; ok {
		return fmt.Errorf("failed to save sip: duplicate id %s", sip.ID)
	}
	s.sips[sip.ID] = sip
	s.sipOrder = append(s.sipOrder, sip.ID)
	addToIndex(s.userIndex, sip.UserID, sip.ID)
	addToIndex(s.fundIndex, sip.FundID, sip.ID)
	s.writes++
	return nil
}

func (s *Store) GetSipByID(sipID string) (model.Sip, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sip, ok := s.sips[sipID]
	return sip, ok, nil
}

func (s *Store) GetSips() ([]model.Sip, error) {
	return s.filterSips(nil, "", func(model.Sip) bool { return true }), nil
}

func (s *Store) GetSipsByUserID(userID string) ([]model.Sip, error) {
	return s.filterSips(s.userIndex, userID, func(model.Sip) bool { return true }), nil
}

func (s *Store) GetSipsByFundID(fundID string) ([]model.Sip, error) {
	return s.filterSips(s.fundIndex, fundID, func(model.Sip) bool { return true }), nil
}

func (s *Store) GetSipsByState(state int) ([]model.Sip, error) {
	return s.filterSips(nil, "", func(sip model.Sip) bool { return sip.State == state }), nil
}

func (s *Store) GetSipsByUserIDAndState(userID string, state int) ([]model.Sip, error) {
	return s.filterSips(s.userIndex, userID, func(sip model.Sip) bool { return sip.State == state }), nil
}

func (s *Store) GetDueSips(asOf time.Time) ([]model.Sip, error) {
	return s.filterSips(nil, "", func(sip model.Sip) bool {
		return sip.State == consts.SipStateActive && utils.IsOnOrBefore(sip.NextExecutionDate, asOf)
	}), nil
}

// filterSips walks SIPs in insertion order. A non-nil index restricts the walk
// to the members stored under key.
func (s *Store) filterSips(index map[string]map[string]struct{}, key string, keep func(model.Sip) bool) []model.Sip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sips := make([]model.Sip, 0)
	var members map[string]struct{}
	if index != nil {
		members = index[key]
		if len(members) == 0 {
			return sips
		}
	}
	for _, id := range s.sipOrder {
		if members != nil {
			if _, ok := members[id]; !ok {
				continue
			}
		}
		if sip := s.sips[id]; keep(sip) {
			sips = append(sips, sip)
		}
	}
	return sips
}

func (s *Store) UpdateSip(sip model.Sip) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.sips[sip.ID]
	if !ok {
		return false, nil
	}
	removeFromIndex(s.userIndex, old.UserID, old.ID)
	removeFromIndex(s.fundIndex, old.FundID, old.ID)
	sip.CreateTime = old.CreateTime
	s.sips[sip.ID] = sip
	addToIndex(s.userIndex, sip.UserID, sip.ID)
	addToIndex(s.fundIndex, sip.FundID, sip.ID)
	s.writes++
	return true, nil
}

func (s *Store) DeleteSip(sipID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.sips[sipID]
	if !ok {
		return false, nil
	}
	removeFromIndex(s.userIndex, old.UserID, old.ID)
	removeFromIndex(s.fundIndex, old.FundID, old.ID)
	delete(s.sips, sipID)
	s.sipOrder = removeFromOrder(s.sipOrder, sipID)
	s.writes++
	return true, nil
}

func (s *Store) SipExists(sipID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sips[sipID]
	return ok, nil
}

func (s *Store) CountSips() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.sips)), nil
}
