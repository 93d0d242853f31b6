package controllers

import (
	"github.com/radhian/sip-engine/handler"

	"github.com/gorilla/mux"
)

func RegisterSipRoutes(router *mux.Router, h *handler.SipHandler) {
	router.HandleFunc("/funds", h.GetFunds).Methods("GET")
	router.HandleFunc("/funds", h.AddFund).Methods("POST")
	router.HandleFunc("/funds/{id}", h.GetFund).Methods("GET")
	router.HandleFunc("/funds/{id}/nav", h.UpdateNAV).Methods("PUT")
	router.HandleFunc("/market/move", h.MoveMarket).Methods("POST")

	router.HandleFunc("/users", h.CreateUser).Methods("POST")
	router.HandleFunc("/users/{id}", h.GetUser).Methods("GET")
	router.HandleFunc("/users/{id}/sips", h.GetUserSips).Methods("GET")
	router.HandleFunc("/users/{id}/portfolio", h.GetUserPortfolio).Methods("GET")
	router.HandleFunc("/users/{id}/portfolio/summary", h.GetPortfolioSummary).Methods("GET")

	router.HandleFunc("/sips", h.CreateSip).Methods("POST")
	router.HandleFunc("/sips/{id}", h.GetSip).Methods("GET")
	router.HandleFunc("/sips/{id}/pause", h.PauseSip).Methods("POST")
	router.HandleFunc("/sips/{id}/unpause", h.UnpauseSip).Methods("POST")
	router.HandleFunc("/sips/{id}/stop", h.StopSip).Methods("POST")
	router.HandleFunc("/sips/{id}/step_up", h.ModifyStepUp).Methods("PUT")
	router.HandleFunc("/sips/{id}/transactions", h.GetSipTransactions).Methods("GET")

	router.HandleFunc("/execute_due", h.ExecuteDue).Methods("POST")
	router.HandleFunc("/execution_runs", h.GetExecutionRuns).Methods("GET")
	router.HandleFunc("/execution_runs/{id}", h.GetExecutionRun).Methods("GET")

	router.HandleFunc("/payment_callback", h.PaymentCallback).Methods("POST")
	router.HandleFunc("/payments/complete_pending", h.CompletePendingPayments).Methods("POST")
	router.HandleFunc("/payments/{id}/redeliver", h.RedeliverPayment).Methods("POST")
	router.HandleFunc("/transactions/pending", h.GetPendingTransactions).Methods("GET")

	router.HandleFunc("/clock", h.GetClock).Methods("GET")
	router.HandleFunc("/clock/advance", h.AdvanceClock).Methods("POST")
}
