package handler

import (
	"context"

	"github.com/labstack/gommon/log"
)

// SipExecution runs one scheduler pass for the current simulated date. It is
// the entry point of the cron worker.
func (h *SipHandler) SipExecution(ctx context.Context) error {
	res, err := h.executeDue(ctx, h.Clock.Today())
	if err != nil {
		return err
	}
	if res.Initiated > 0 {
		log.Infof("[SipExecution] %d installments initiated as of %s", res.Initiated, res.AsOf)
	}
	return nil
}

// ExecutionJob adapts SipExecution to a cron job.
type ExecutionJob struct {
	Handler *SipHandler
}

func (j ExecutionJob) Name() string { return "sip_execution" }

func (j ExecutionJob) Run(ctx context.Context) error {
	return j.Handler.SipExecution(ctx)
}
