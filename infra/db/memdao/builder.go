// Package memdao is an in-memory implementation of dao.DaoMethod with
// secondary indexes, used when no database is configured and in tests.
package memdao

import (
	"sync"

	"github.com/radhian/sip-engine/infra/db/dao"
	"github.com/radhian/sip-engine/infra/db/model"
)

type Store struct {
	mu sync.RWMutex

	funds     map[string]model.Fund
	fundOrder []string

	users     map[string]model.User
	userOrder []string

	sips      map[string]model.Sip
	sipOrder  []string
	userIndex map[string]map[string]struct{} // user id -> sip ids
	fundIndex map[string]map[string]struct{} // fund id -> sip ids

	trxs     map[string]model.Transaction
	trxOrder []string
	sipTrx   map[string]map[string]struct{} // sip id -> transaction ids

	runs     map[string]model.ExecutionRun
	runOrder []string
	runItems map[string][]model.ExecutionRunItem
	nextItem int64

	writes int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		funds:     make(map[string]model.Fund),
		users:     make(map[string]model.User),
		sips:      make(map[string]model.Sip),
		userIndex: make(map[string]map[string]struct{}),
		fundIndex: make(map[string]map[string]struct{}),
		trxs:      make(map[string]model.Transaction),
		sipTrx:    make(map[string]map[string]struct{}),
		runs:      make(map[string]model.ExecutionRun),
		runItems:  make(map[string][]model.ExecutionRunItem),
	}
}

var _ dao.DaoMethod = (*Store)(nil)

// Writes reports how many mutating calls succeeded so far.
func (s *Store) Writes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func addToIndex(index map[string]map[string]struct{}, key, id string) {
	set, ok := index[key]
	if !ok {
		set = make(map[string]struct{})
		index[key] = set
	}
	set[id] = struct{}{}
}

func removeFromIndex(index map[string]map[string]struct{}, key, id string) {
	if set, ok := index[key]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(index, key)
		}
	}
}

func removeFromOrder(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
