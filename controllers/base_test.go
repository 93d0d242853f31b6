package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/radhian/sip-engine/config"
	"github.com/radhian/sip-engine/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T, paymentMode string) *App {
	t.Helper()
	cfg := &config.Config{
		DbDriver:                config.DriverMemory,
		LogLevel:                "off",
		CronSpec:                "@every 1h",
		SchedulerWorkers:        2,
		SkipPendingInstallments: true,
		IDStrategy:              "sequence",
		PaymentMode:             paymentMode,
		PaymentSuccessRate:      1,
		SimStartDate:            utils.Date(2024, 1, 1),
		SeedFunds:               true,
		Port:                    "0",
	}
	app := &App{}
	require.NoError(t, app.Initialize(cfg))
	t.Cleanup(app.Close)
	return app
}

func call(t *testing.T, app *App, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestFundRoutes(t *testing.T) {
	app := setupApp(t, "immediate")

	code, env := call(t, app, http.MethodGet, "/funds", nil)
	require.Equal(t, http.StatusOK, code)
	var funds []map[string]interface{}
	decode(t, env, &funds)
	assert.Len(t, funds, 6)

	code, env = call(t, app, http.MethodGet, "/funds?category=debt", nil)
	require.Equal(t, http.StatusOK, code)
	decode(t, env, &funds)
	assert.Len(t, funds, 2)

	code, _ = call(t, app, http.MethodGet, "/funds?risk=extreme", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = call(t, app, http.MethodGet, "/funds/FUND_999999", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Fund not found: FUND_999999", env.Message)

	code, _ = call(t, app, http.MethodPut, "/funds/FUND_000001/nav", map[string]float64{"nav": -1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, app, http.MethodPost, "/funds", map[string]interface{}{"id": "FUND_GOLD", "name": "Gold", "category": "HYBRID", "risk": "LOW", "nav": 20})
	assert.Equal(t, http.StatusCreated, code)
}

func TestSipLifecycleRoutes(t *testing.T) {
	app := setupApp(t, "immediate")

	code, env := call(t, app, http.MethodPost, "/users", map[string]string{"name": "Asha"})
	require.Equal(t, http.StatusCreated, code)
	var user struct{ ID string }
	decode(t, env, &user)
	assert.Equal(t, "USER_000001", user.ID)

	code, env = call(t, app, http.MethodPost, "/sips", map[string]interface{}{
		"user_id": user.ID, "fund_id": "FUND_999999", "amount": 1000,
	})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = call(t, app, http.MethodPost, "/sips", map[string]interface{}{
		"user_id": user.ID, "fund_id": "FUND_000001", "amount": 0,
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = call(t, app, http.MethodPost, "/sips", map[string]interface{}{
		"user_id": user.ID, "fund_id": "FUND_000001", "amount": 1000, "frequency": "MONTHLY", "start_date": "2024-01-15",
	})
	require.Equal(t, http.StatusCreated, code)
	var sip struct{ ID string }
	decode(t, env, &sip)

	code, _ = call(t, app, http.MethodPost, "/sips/"+sip.ID+"/unpause", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = call(t, app, http.MethodPost, "/sips/"+sip.ID+"/pause", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = call(t, app, http.MethodGet, "/users/"+user.ID+"/sips?state=paused", nil)
	require.Equal(t, http.StatusOK, code)
	var sips []map[string]interface{}
	decode(t, env, &sips)
	assert.Len(t, sips, 1)

	code, _ = call(t, app, http.MethodPut, "/sips/"+sip.ID+"/step_up", map[string]float64{"step_up_percentage": 10})
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, app, http.MethodPost, "/sips/"+sip.ID+"/stop", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = call(t, app, http.MethodPost, "/sips/"+sip.ID+"/pause", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "invalid operation 'pause' for SIP "+sip.ID+" in state STOPPED", env.Message)

	code, _ = call(t, app, http.MethodGet, "/sips/SIP_404", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestExecutionAndPortfolioRoutes(t *testing.T) {
	app := setupApp(t, "immediate")

	_, env := call(t, app, http.MethodPost, "/users", nil)
	var user struct{ ID string }
	decode(t, env, &user)

	_, env = call(t, app, http.MethodPost, "/sips", map[string]interface{}{
		"user_id": user.ID, "fund_id": "FUND_000003", "amount": 1000, "step_up_percentage": 10,
	})
	var sip struct{ ID string }
	decode(t, env, &sip)

	code, env := call(t, app, http.MethodPost, "/execute_due", nil)
	require.Equal(t, http.StatusOK, code)
	var res struct {
		AsOf      string `json:"as_of"`
		Initiated int    `json:"initiated"`
	}
	decode(t, env, &res)
	assert.Equal(t, "2024-01-01", res.AsOf)
	assert.Equal(t, 1, res.Initiated)

	code, env = call(t, app, http.MethodPost, "/clock/advance", map[string]interface{}{"months": 1, "execute": true})
	require.Equal(t, http.StatusOK, code)
	var state struct {
		Today     string `json:"today"`
		Execution struct {
			Initiated int `json:"initiated"`
		} `json:"execution"`
	}
	decode(t, env, &state)
	assert.Equal(t, 1, state.Execution.Initiated)

	code, env = call(t, app, http.MethodGet, "/sips/"+sip.ID+"/transactions", nil)
	require.Equal(t, http.StatusOK, code)
	var trxs []struct {
		Amount float64 `json:"amount"`
		Status int     `json:"status"`
	}
	decode(t, env, &trxs)
	require.Len(t, trxs, 2)
	assert.InDelta(t, 1000, trxs[0].Amount, 1e-9)
	assert.InDelta(t, 1100, trxs[1].Amount, 1e-9)

	code, env = call(t, app, http.MethodGet, "/users/"+user.ID+"/portfolio/summary", nil)
	require.Equal(t, http.StatusOK, code)
	var summary struct {
		TotalInvested  float64 `json:"total_invested"`
		ActiveSipCount int     `json:"active_sip_count"`
	}
	decode(t, env, &summary)
	assert.InDelta(t, 2100, summary.TotalInvested, 1e-6)
	assert.Equal(t, 1, summary.ActiveSipCount)

	code, env = call(t, app, http.MethodGet, "/execution_runs", nil)
	require.Equal(t, http.StatusOK, code)
	var runs []struct{ ID string }
	decode(t, env, &runs)
	require.Len(t, runs, 2)

	code, _ = call(t, app, http.MethodGet, "/execution_runs/"+runs[0].ID, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, app, http.MethodGet, "/users/USER_404/portfolio", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestManualPaymentRoutes(t *testing.T) {
	app := setupApp(t, "manual")

	_, env := call(t, app, http.MethodPost, "/users", nil)
	var user struct{ ID string }
	decode(t, env, &user)
	_, env = call(t, app, http.MethodPost, "/sips", map[string]interface{}{
		"user_id": user.ID, "fund_id": "FUND_000001", "amount": 500,
	})
	var sip struct{ ID string }
	decode(t, env, &sip)

	code, _ := call(t, app, http.MethodPost, "/execute_due", map[string]string{"as_of": "2024-01-01"})
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, app, http.MethodGet, "/transactions/pending", nil)
	require.Equal(t, http.StatusOK, code)
	var pending struct {
		Transactions []struct{ ID string } `json:"transactions"`
		GatewayHeld  int                   `json:"gateway_held"`
	}
	decode(t, env, &pending)
	require.Len(t, pending.Transactions, 1)
	assert.Equal(t, 1, pending.GatewayHeld)
	trxID := pending.Transactions[0].ID

	code, _ = call(t, app, http.MethodPost, "/payment_callback", map[string]string{"transaction_id": trxID, "status": "BOUNCED"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, app, http.MethodPost, "/payment_callback", map[string]string{"transaction_id": trxID, "status": "SUCCESS"})
	require.Equal(t, http.StatusOK, code)
	// the gateway still holds the payment, releasing it is a duplicate delivery
	code, _ = call(t, app, http.MethodPost, "/payments/complete_pending", map[string]string{"status": "SUCCESS"})
	require.Equal(t, http.StatusOK, code)
	code, _ = call(t, app, http.MethodPost, "/payments/"+trxID+"/redeliver", nil)
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, app, http.MethodGet, "/sips/"+sip.ID, nil)
	require.Equal(t, http.StatusOK, code)
	var got struct {
		InstallmentCount  int    `json:"installment_count"`
		NextExecutionDate string `json:"next_execution_date"`
	}
	decode(t, env, &got)
	assert.Equal(t, 1, got.InstallmentCount)
	assert.Equal(t, "2024-02-01T00:00:00Z", got.NextExecutionDate)

	code, _ = call(t, app, http.MethodPost, "/payments/TXN_404/redeliver", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRunServer_ReturnsListenError(t *testing.T) {
	app := setupApp(t, "immediate")
	app.Config.Port = "-1"

	err := app.RunServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server stopped")
}
