package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
)

// PaymentCallback receives an outcome from the payment provider. Duplicates
// are accepted and ignored.
func (h *SipHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	var req entity.PaymentCallbackRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.TransactionID) == "" {
		writeFailure(w, http.StatusBadRequest, "transaction_id is required")
		return
	}
	status, ok := consts.ParsePaymentStatus(strings.ToUpper(req.Status))
	if !ok {
		writeFailure(w, http.StatusBadRequest, "status must be SUCCESS or FAILURE")
		return
	}

	err := h.Reconciliation.OnCallback(r.Context(), entity.PaymentOutcome{
		TransactionID: req.TransactionID,
		Status:        status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

func (h *SipHandler) CompletePendingPayments(w http.ResponseWriter, r *http.Request) {
	req := entity.CompletePendingRequest{Status: "SUCCESS"}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	status, ok := consts.ParsePaymentStatus(strings.ToUpper(req.Status))
	if !ok || status == consts.PaymentStatusPending {
		writeFailure(w, http.StatusBadRequest, "status must be SUCCESS or FAILURE")
		return
	}

	n := h.Payments.CompleteAllPending(status)
	writeSuccess(w, http.StatusOK, map[string]int{"completed": n})
}

func (h *SipHandler) RedeliverPayment(w http.ResponseWriter, r *http.Request) {
	trxID := mux.Vars(r)["id"]
	if !h.Payments.Redeliver(trxID) {
		writeFailure(w, http.StatusNotFound, "no delivered outcome for "+trxID)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

func (h *SipHandler) GetPendingTransactions(w http.ResponseWriter, r *http.Request) {
	trxs, err := h.Reconciliation.GetPendingTransactions()
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"transactions": trxs,
		"gateway_held": h.Payments.PendingCount(),
	})
}
