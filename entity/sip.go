package entity

import (
	"time"

	"github.com/radhian/sip-engine/infra/db/model"
)

type CreateSipRequest struct {
	UserID           string  `json:"user_id"`
	FundID           string  `json:"fund_id"`
	Amount           float64 `json:"amount"`
	Frequency        string  `json:"frequency"`
	StartDate        string  `json:"start_date"`
	StepUpPercentage float64 `json:"step_up_percentage"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateFundRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Risk     string  `json:"risk"`
	Nav      float64 `json:"nav"`
}

type ModifyStepUpRequest struct {
	StepUpPercentage float64 `json:"step_up_percentage"`
}

type UpdateNavRequest struct {
	Nav float64 `json:"nav"`
}

type MarketMoveRequest struct {
	// Percentage is expressed in percent, 5 means +5%.
	Percentage float64 `json:"percentage"`
}

type PaymentCallbackRequest struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

type CompletePendingRequest struct {
	Status string `json:"status"`
}

type AdvanceClockRequest struct {
	Days   int `json:"days"`
	Weeks  int `json:"weeks"`
	Months int `json:"months"`
	// Execute runs the due SIPs for the new date right after advancing.
	Execute bool `json:"execute"`
}

type ExecuteDueRequest struct {
	// AsOf is YYYY-MM-DD; empty means the current simulated date.
	AsOf string `json:"as_of"`
}

type ExecuteDueResponse struct {
	AsOf      string `json:"as_of"`
	Initiated int    `json:"initiated"`
}

type ExecutionRunDetail struct {
	Run   model.ExecutionRun       `json:"run"`
	Items []model.ExecutionRunItem `json:"items"`
}

// PaymentOutcome is the message the payment collaborator delivers for a
// transaction. Delivery is at-least-once.
type PaymentOutcome struct {
	TransactionID string
	SipID         string
	Status        int
}

type PortfolioItem struct {
	Sip                      model.Sip `json:"sip"`
	FundName                 string    `json:"fund_name"`
	CurrentNav               float64   `json:"current_nav"`
	TotalInvested            float64   `json:"total_invested"`
	TotalUnits               float64   `json:"total_units"`
	CurrentValue             float64   `json:"current_value"`
	GainLoss                 float64   `json:"gain_loss"`
	GainLossPercentage       float64   `json:"gain_loss_percentage"`
	CurrentInstallmentAmount float64   `json:"current_installment_amount"`
	NextInstallmentAmount    float64   `json:"next_installment_amount"`
}

type PortfolioSummary struct {
	TotalInvested      float64 `json:"total_invested"`
	TotalCurrentValue  float64 `json:"total_current_value"`
	TotalUnits         float64 `json:"total_units"`
	GainLoss           float64 `json:"gain_loss"`
	GainLossPercentage float64 `json:"gain_loss_percentage"`
	ActiveSipCount     int     `json:"active_sip_count"`
	PausedSipCount     int     `json:"paused_sip_count"`
	StoppedSipCount    int     `json:"stopped_sip_count"`
}

// ExecutionResult is serialized into ExecutionRun.Result.
type ExecutionResult struct {
	AsOf      string   `json:"as_of"`
	Due       int      `json:"due"`
	Initiated int      `json:"initiated"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

type ClockState struct {
	Today     time.Time           `json:"today"`
	Execution *ExecuteDueResponse `json:"execution,omitempty"`
}
