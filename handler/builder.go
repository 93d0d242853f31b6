package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/gommon/log"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/clock"
	fundUsecase "github.com/radhian/sip-engine/usecase/fund"
	portfolioUsecase "github.com/radhian/sip-engine/usecase/portfolio"
	reconciliationUsecase "github.com/radhian/sip-engine/usecase/reconciliation"
	schedulerUsecase "github.com/radhian/sip-engine/usecase/scheduler"
	sipUsecase "github.com/radhian/sip-engine/usecase/sip"
	userUsecase "github.com/radhian/sip-engine/usecase/user"
)

// PaymentSimulator exposes the controls of the simulated payment gateway.
type PaymentSimulator interface {
	CompletePayment(transactionID string, status int) bool
	CompleteAllPending(status int) int
	Redeliver(transactionID string) bool
	PendingCount() int
}

type SipHandler struct {
	Fund           fundUsecase.FundUsecase
	User           userUsecase.UserUsecase
	Sip            sipUsecase.SipUsecase
	Scheduler      schedulerUsecase.SchedulerUsecase
	Reconciliation reconciliationUsecase.ReconciliationUsecase
	Portfolio      portfolioUsecase.PortfolioUsecase
	Clock          *clock.Clock
	Payments       PaymentSimulator
}

func NewSipHandler(h SipHandler) *SipHandler {
	return &h
}

type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, code int, data interface{}) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(APIResponse{
		Status: "success",
		Data:   data,
	})
}

func writeFailure(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(APIResponse{
		Status:  "error",
		Message: message,
	})
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		writeFailure(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrValidation):
		writeFailure(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrInvalidState):
		writeFailure(w, http.StatusConflict, err.Error())
	default:
		log.Errorf("[Handler] internal error: %v", err)
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeBody decodes a JSON body. An empty body leaves req untouched.
func decodeBody(r *http.Request, req interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		return entity.NewValidationError("invalid request body")
	}
	return nil
}
