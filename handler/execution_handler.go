package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/utils"
)

func (h *SipHandler) ExecuteDue(w http.ResponseWriter, r *http.Request) {
	var req entity.ExecuteDueRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	asOf := h.Clock.Today()
	if req.AsOf != "" {
		d, err := utils.ParseDate(req.AsOf)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "as_of must be YYYY-MM-DD")
			return
		}
		asOf = d
	}

	res, err := h.executeDue(r.Context(), asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *SipHandler) GetExecutionRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Scheduler.GetExecutionRuns()
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, runs)
}

func (h *SipHandler) GetExecutionRun(w http.ResponseWriter, r *http.Request) {
	run, items, err := h.Scheduler.GetExecutionRun(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, entity.ExecutionRunDetail{Run: run, Items: items})
}

func (h *SipHandler) executeDue(ctx context.Context, asOf time.Time) (*entity.ExecuteDueResponse, error) {
	n, err := h.Scheduler.ExecuteDueSIPs(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return &entity.ExecuteDueResponse{AsOf: utils.FormatDate(asOf), Initiated: n}, nil
}
