package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
)

// GetFunds lists the catalog, optionally filtered by ?category= or ?risk=.
func (h *SipHandler) GetFunds(w http.ResponseWriter, r *http.Request) {
	var (
		funds []model.Fund
		err   error
	)

	category := r.URL.Query().Get("category")
	risk := r.URL.Query().Get("risk")
	switch {
	case category != "":
		code, ok := consts.ParseFundCategory(strings.ToUpper(category))
		if !ok {
			writeFailure(w, http.StatusBadRequest, "unknown category "+category)
			return
		}
		funds, err = h.Fund.FilterByCategory(code)
	case risk != "":
		code, ok := consts.ParseRiskLevel(strings.ToUpper(risk))
		if !ok {
			writeFailure(w, http.StatusBadRequest, "unknown risk level "+risk)
			return
		}
		funds, err = h.Fund.FilterByRiskLevel(code)
	default:
		funds, err = h.Fund.GetAllFunds()
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, funds)
}

func (h *SipHandler) GetFund(w http.ResponseWriter, r *http.Request) {
	fund, err := h.Fund.GetFundByID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, fund)
}

func (h *SipHandler) AddFund(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateFundRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	fund, err := h.Fund.AddFund(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, fund)
}

func (h *SipHandler) UpdateNAV(w http.ResponseWriter, r *http.Request) {
	var req entity.UpdateNavRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	fund, err := h.Fund.UpdateNAV(mux.Vars(r)["id"], req.Nav)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, fund)
}

func (h *SipHandler) MoveMarket(w http.ResponseWriter, r *http.Request) {
	var req entity.MarketMoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	funds, err := h.Fund.SimulateMarketMovement(req.Percentage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, funds)
}
