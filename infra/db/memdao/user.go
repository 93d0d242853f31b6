package memdao

import (
	"fmt"

	"github.com/radhian/sip-engine/infra/db/model"
)

func (s *Store) CreateUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return fmt.Errorf("failed to save user: duplicate id %s", user.ID)
	}
	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)
	s.writes++
	return nil
}

func (s *Store) GetUserByID(userID string) (model.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	return user, ok, nil
}

func (s *Store) GetUsers() ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *Store) UpdateUser(user model.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return false, nil
	}
	s.users[user.ID] = user
	s.writes++
	return true, nil
}

func (s *Store) DeleteUser(userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return false, nil
	}
	delete(s.users, userID)
	s.userOrder = removeFromOrder(s.userOrder, userID)
	s.writes++
	return true, nil
}

func (s *Store) UserExists(userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[userID]
	return ok, nil
}

func (s *Store) CountUsers() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}
