package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/utils"
)

// GetUserPortfolio values every SIP of the user, optionally filtered by ?state=.
func (h *SipHandler) GetUserPortfolio(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if _, err := h.User.GetUser(userID); err != nil {
		writeError(w, err)
		return
	}

	var (
		items []entity.PortfolioItem
		err   error
	)
	if state := r.URL.Query().Get("state"); state != "" {
		code, ok := consts.ParseSipState(strings.ToUpper(state))
		if !ok {
			writeFailure(w, http.StatusBadRequest, "unknown state "+state)
			return
		}
		items, err = h.Portfolio.FilterByState(userID, code)
	} else {
		items, err = h.Portfolio.GetUserPortfolio(userID)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	for i := range items {
		items[i] = roundPortfolioItem(items[i])
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *SipHandler) GetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if _, err := h.User.GetUser(userID); err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.Portfolio.GetPortfolioSummary(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	summary.TotalInvested = utils.RoundMoney(summary.TotalInvested)
	summary.TotalCurrentValue = utils.RoundMoney(summary.TotalCurrentValue)
	summary.TotalUnits = utils.RoundUnits(summary.TotalUnits)
	summary.GainLoss = utils.RoundMoney(summary.GainLoss)
	summary.GainLossPercentage = utils.RoundMoney(summary.GainLossPercentage)
	writeSuccess(w, http.StatusOK, summary)
}

func roundPortfolioItem(item entity.PortfolioItem) entity.PortfolioItem {
	item.CurrentNav = utils.RoundUnits(item.CurrentNav)
	item.TotalInvested = utils.RoundMoney(item.TotalInvested)
	item.TotalUnits = utils.RoundUnits(item.TotalUnits)
	item.CurrentValue = utils.RoundMoney(item.CurrentValue)
	item.GainLoss = utils.RoundMoney(item.GainLoss)
	item.GainLossPercentage = utils.RoundMoney(item.GainLossPercentage)
	item.CurrentInstallmentAmount = utils.RoundMoney(item.CurrentInstallmentAmount)
	item.NextInstallmentAmount = utils.RoundMoney(item.NextInstallmentAmount)
	return item
}
