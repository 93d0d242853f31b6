package handler

import (
	"net/http"

	"github.com/radhian/sip-engine/entity"
)

func (h *SipHandler) GetClock(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, entity.ClockState{Today: h.Clock.Today()})
}

func (h *SipHandler) AdvanceClock(w http.ResponseWriter, r *http.Request) {
	var req entity.AdvanceClockRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Days < 0 || req.Weeks < 0 || req.Months < 0 {
		writeFailure(w, http.StatusBadRequest, "the clock only moves forward")
		return
	}

	h.Clock.AdvanceMonths(req.Months)
	h.Clock.AdvanceWeeks(req.Weeks)
	state := entity.ClockState{Today: h.Clock.AdvanceDays(req.Days)}

	if req.Execute {
		res, err := h.executeDue(r.Context(), state.Today)
		if err != nil {
			writeError(w, err)
			return
		}
		state.Execution = res
	}
	writeSuccess(w, http.StatusOK, state)
}
