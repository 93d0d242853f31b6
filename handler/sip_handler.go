package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
)

func (h *SipHandler) CreateSip(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateSipRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sip, err := h.Sip.CreateSIP(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, sip)
}

func (h *SipHandler) GetSip(w http.ResponseWriter, r *http.Request) {
	sip, err := h.Sip.GetSIP(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, sip)
}

func (h *SipHandler) PauseSip(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Sip.Pause)
}

func (h *SipHandler) UnpauseSip(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Sip.Unpause)
}

func (h *SipHandler) StopSip(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Sip.Stop)
}

func (h *SipHandler) ModifyStepUp(w http.ResponseWriter, r *http.Request) {
	var req entity.ModifyStepUpRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sip, err := h.Sip.ModifyStepUp(mux.Vars(r)["id"], req.StepUpPercentage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, sip)
}

func (h *SipHandler) GetSipTransactions(w http.ResponseWriter, r *http.Request) {
	sipID := mux.Vars(r)["id"]
	if _, err := h.Sip.GetSIP(sipID); err != nil {
		writeError(w, err)
		return
	}

	trxs, err := h.Portfolio.GetTransactionHistory(sipID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, trxs)
}

func (h *SipHandler) transition(w http.ResponseWriter, r *http.Request, op func(string) (model.Sip, error)) {
	sip, err := op(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, sip)
}
