package memdao

import (
	"fmt"

	"github.com/radhian/sip-engine/infra/db/model"
)

func (s *Store) CreateExecutionRun(run model.ExecutionRun, items []model.ExecutionRunItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[run.ID]; ok {
		return fmt.Errorf("failed to save execution run: duplicate id %s", run.ID)
	}
	stored := make([]model.ExecutionRunItem, 0, len(items))
	for _, item := range items {
		s.nextItem++
		item.ID = s.nextItem
		item.ExecutionRunID = run.ID
		stored = append(stored, item)
	}
	s.runs[run.ID] = run
	s.runOrder = append(s.runOrder, run.ID)
	s.runItems[run.ID] = stored
	s.writes++
	return nil
}

func (s *Store) GetExecutionRuns() ([]model.ExecutionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]model.ExecutionRun, 0, len(s.runOrder))
	for _, id := range s.runOrder {
		runs = append(runs, s.runs[id])
	}
	return runs, nil
}

func (s *Store) GetExecutionRunByID(runID string) (model.ExecutionRun, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[runID]
	return run, ok, nil
}

func (s *Store) GetExecutionRunItemsByRunID(runID string) ([]model.ExecutionRunItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]model.ExecutionRunItem, len(s.runItems[runID]))
	copy(items, s.runItems[runID])
	return items, nil
}
