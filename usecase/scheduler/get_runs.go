package scheduler

import (
	"fmt"

	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
)

func (u *schedulerUsecase) GetExecutionRuns() ([]model.ExecutionRun, error) {
	return u.runDao.GetExecutionRuns()
}

func (u *schedulerUsecase) GetExecutionRun(runID string) (model.ExecutionRun, []model.ExecutionRunItem, error) {
	run, found, err := u.runDao.GetExecutionRunByID(runID)
	if err != nil {
		return run, nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}
	if !found {
		return run, nil, entity.NewNotFoundError(entity.KindRun, runID)
	}

	items, err := u.runDao.GetExecutionRunItemsByRunID(runID)
	if err != nil {
		return run, nil, err
	}
	return run, items, nil
}
