package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/clock"
	"github.com/radhian/sip-engine/infra/db/memdao"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/infra/idgen"
	"github.com/radhian/sip-engine/infra/locker"
	"github.com/radhian/sip-engine/infra/payment"
	"github.com/radhian/sip-engine/infra/price"
	"github.com/radhian/sip-engine/usecase/reconciliation"
	sipUsecase "github.com/radhian/sip-engine/usecase/sip"
	"github.com/radhian/sip-engine/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *memdao.Store
	oracle  *price.Simulated
	sips    sipUsecase.SipUsecase
	locker  *locker.Locker
	uc      SchedulerUsecase
	gateway payment.Gateway
}

type fixtureOptions struct {
	gateway     payment.Gateway
	mode        string
	successRate float64
	opts        Options
}

func setup(t *testing.T, fo fixtureOptions) *fixture {
	t.Helper()
	store := memdao.New()
	require.NoError(t, store.CreateUser(model.User{ID: "USER_000001"}))
	require.NoError(t, store.CreateFund(model.Fund{ID: "FUND_000001", Nav: 100}))

	oracle := price.NewSimulated(0, 1)
	require.NoError(t, oracle.UpdateNAV("FUND_000001", 100))

	gen := idgen.NewSequenceGenerator()
	sips := sipUsecase.NewSipUsecase(sipUsecase.Dependencies{
		SipDao:  store,
		UserDao: store,
		FundDao: store,
		IDGen:   gen,
		Clock:   clock.New(utils.Date(2024, 1, 1)),
	})

	gateway := fo.gateway
	if gateway == nil {
		mode := fo.mode
		if mode == "" {
			mode = payment.ModeImmediate
		}
		g, err := payment.NewSimulated(mode, fo.successRate, 0, 1)
		require.NoError(t, err)
		gateway = g
	}

	l := locker.New()
	uc := NewSchedulerUsecase(Dependencies{
		SipDao:         store,
		TransactionDao: store,
		RunDao:         store,
		Oracle:         oracle,
		Gateway:        gateway,
		Callbacks:      reconciliation.NewReconciliationUsecase(store, sips),
		IDGen:          gen,
		Locker:         l,
	}, fo.opts)

	return &fixture{store: store, oracle: oracle, sips: sips, locker: l, uc: uc, gateway: gateway}
}

func (f *fixture) createSip(t *testing.T, start string, stepUp float64) model.Sip {
	t.Helper()
	sip, err := f.sips.CreateSIP(entity.CreateSipRequest{
		UserID:           "USER_000001",
		FundID:           "FUND_000001",
		Amount:           1000,
		Frequency:        "MONTHLY",
		StartDate:        start,
		StepUpPercentage: stepUp,
	})
	require.NoError(t, err)
	return sip
}

func TestIsDue(t *testing.T) {
	f := setup(t, fixtureOptions{successRate: 1})
	asOf := utils.Date(2024, 3, 15)

	tests := []struct {
		name  string
		state int
		next  time.Time
		want  bool
	}{
		{name: "active due today", state: consts.SipStateActive, next: asOf, want: true},
		{name: "active overdue", state: consts.SipStateActive, next: utils.Date(2024, 3, 1), want: true},
		{name: "active in future", state: consts.SipStateActive, next: utils.Date(2024, 3, 16), want: false},
		{name: "paused overdue", state: consts.SipStatePaused, next: utils.Date(2024, 3, 1), want: false},
		{name: "stopped overdue", state: consts.SipStateStopped, next: utils.Date(2024, 3, 1), want: false},
		{name: "later the same day", state: consts.SipStateActive, next: asOf.Add(20 * time.Hour), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.uc.IsDue(model.Sip{State: tt.state, NextExecutionDate: tt.next}, asOf))
		})
	}
}

func TestExecuteDueSIPs_NothingDue(t *testing.T) {
	f := setup(t, fixtureOptions{successRate: 1})
	f.createSip(t, "2024-02-01", 0)
	paused := f.createSip(t, "2024-01-01", 0)
	_, err := f.sips.Pause(paused.ID)
	require.NoError(t, err)

	writes := f.store.Writes()
	n, err := f.uc.ExecuteDueSIPs(context.Background(), utils.Date(2024, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, writes, f.store.Writes())

	runs, _ := f.uc.GetExecutionRuns()
	assert.Empty(t, runs)
}

func TestExecuteDueSIPs_Success(t *testing.T) {
	f := setup(t, fixtureOptions{successRate: 1})
	sip := f.createSip(t, "2024-01-15", 0)

	n, err := f.uc.ExecuteDueSIPs(context.Background(), utils.Date(2024, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	trxs, _ := f.store.GetTransactionsBySipID(sip.ID)
	require.Len(t, trxs, 1)
	assert.Equal(t, consts.PaymentStatusSuccess, trxs[0].Status)
	assert.Equal(t, consts.TransactionTypeInstallment, trxs[0].Type)
	assert.Equal(t, 1000.0, trxs[0].Amount)
	assert.Equal(t, 10.0, trxs[0].Units)
	assert.Equal(t, utils.Date(2024, 1, 15), trxs[0].ExecutionDate)

	got, _ := f.sips.GetSIP(sip.ID)
	assert.Equal(t, 1, got.InstallmentCount)
	assert.Equal(t, utils.Date(2024, 2, 15), got.NextExecutionDate)

	// already advanced, so a second pass the same day finds nothing
	n, err = f.uc.ExecuteDueSIPs(context.Background(), utils.Date(2024, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	runs, _ := f.uc.GetExecutionRuns()
	require.Len(t, runs, 1)
	assert.Equal(t, "2024-01-15", runs[0].AsOfDate)
	assert.Equal(t, int64(1), runs[0].InitiatedCount)

	run, items, err := f.uc.GetExecutionRun(runs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, consts.StatusFinished, run.Status)
	require.Len(t, items, 1)
	assert.Equal(t, trxs[0].ID, items[0].TransactionID)
	assert.Equal(t, consts.ItemOutcomeInitiated, items[0].Outcome)
}

func TestExecuteDueSIPs_StepUpCompounds(t *testing.T) {
	f := setup(t, fixtureOptions{successRate: 1})
	sip := f.createSip(t, "2024-01-15", 10)

	for _, day := range []time.Time{utils.Date(2024, 1, 15), utils.Date(2024, 2, 15), utils.Date(2024, 3, 15)} {
		n, err := f.uc.ExecuteDueSIPs(context.Background(), day)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	}

	trxs, _ := f.store.GetTransactionsBySipID(sip.ID)
	require.Len(t, trxs, 3)
	assert.InDelta(t, 1000, trxs[0].Amount, 1e-9)
	assert.InDelta(t, 1100, trxs[1].Amount, 1e-9)
	assert.InDelta(t, 1210, trxs[2].Amount, 1e-9)
}

func TestExecuteDueSIPs_FailureKeepsSipDue(t *testing.T) {
	f := setup(t, fixtureOptions{successRate: 0, opts: Options{SkipPendingInstallments: true}})
	sip := f.createSip(t, "2024-01-15", 10)
	asOf := utils.Date(2024, 1, 20)

	n, err := f.uc.ExecuteDueSIPs(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := f.sips.GetSIP(sip.ID)
	assert.Equal(t, 0, got.InstallmentCount)
	assert.Equal(t, utils.Date(2024, 1, 15), got.NextExecutionDate)
	assert.True(t, f.uc.IsDue(got, asOf))

	n, err = f.uc.ExecuteDueSIPs(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	trxs, _ := f.store.GetTransactionsBySipID(sip.ID)
	require.Len(t, trxs, 2)
	for _, trx := range trxs {
		assert.Equal(t, consts.PaymentStatusFailure, trx.Status)
		assert.Equal(t, 1000.0, trx.Amount)
	}
}

func TestExecuteDueSIPs_PendingInstallmentIsNotChargedTwice(t *testing.T) {
	f := setup(t, fixtureOptions{mode: payment.ModeManual, successRate: 1, opts: Options{SkipPendingInstallments: true}})
	gateway := f.gateway.(*payment.Simulated)
	sip := f.createSip(t, "2024-01-15", 0)
	ctx := context.Background()

	n, err := f.uc.ExecuteDueSIPs(ctx, utils.Date(2024, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, gateway.PendingCount())

	n, err = f.uc.ExecuteDueSIPs(ctx, utils.Date(2024, 1, 16))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	trxs, _ := f.store.GetTransactionsBySipID(sip.ID)
	require.Len(t, trxs, 1)
	assert.Equal(t, consts.PaymentStatusPending, trxs[0].Status)

	runs, _ := f.uc.GetExecutionRuns()
	require.Len(t, runs, 2)
	assert.Equal(t, int64(1), runs[1].SkippedCount)

	assert.Equal(t, 1, gateway.CompleteAllPending(consts.PaymentStatusSuccess))
	assert.True(t, gateway.Redeliver(trxs[0].ID))

	got, _ := f.sips.GetSIP(sip.ID)
	assert.Equal(t, 1, got.InstallmentCount)
	assert.Equal(t, utils.Date(2024, 2, 15), got.NextExecutionDate)
}

func TestExecuteDueSIPs_PendingAllowedWhenSkipDisabled(t *testing.T) {
	f := setup(t, fixtureOptions{mode: payment.ModeManual, successRate: 1})
	sip := f.createSip(t, "2024-01-15", 0)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		n, err := f.uc.ExecuteDueSIPs(ctx, utils.Date(2024, 1, 15))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}
	trxs, _ := f.store.GetTransactionsBySipID(sip.ID)
	assert.Len(t, trxs, 2)
}

func TestExecuteDueSIPs_UnknownFundIsSkipped(t *testing.T) {
	f := setup(t, fixtureOptions{successRate: 1})
	require.NoError(t, f.store.CreateFund(model.Fund{ID: "FUND_000002", Nav: 10}))
	orphan, err := f.sips.CreateSIP(entity.CreateSipRequest{UserID: "USER_000001", FundID: "FUND_000002", Amount: 500, StartDate: "2024-01-10"})
	require.NoError(t, err)
	ok := f.createSip(t, "2024-01-10", 0)

	n, err := f.uc.ExecuteDueSIPs(context.Background(), utils.Date(2024, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	trxs, _ := f.store.GetTransactionsBySipID(orphan.ID)
	assert.Empty(t, trxs)
	trxs, _ = f.store.GetTransactionsBySipID(ok.ID)
	assert.Len(t, trxs, 1)

	runs, _ := f.uc.GetExecutionRuns()
	require.Len(t, runs, 1)
	assert.Equal(t, int64(2), runs[0].TotalDue)
	assert.Equal(t, int64(1), runs[0].SkippedCount)
}

func TestExecuteDueSIPs_InFlightSipIsSkipped(t *testing.T) {
	f := setup(t, fixtureOptions{successRate: 1})
	sip := f.createSip(t, "2024-01-15", 0)

	require.True(t, f.locker.TryLock(sip.ID))
	n, err := f.uc.ExecuteDueSIPs(context.Background(), utils.Date(2024, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	f.locker.Unlock(sip.ID)
	n, err = f.uc.ExecuteDueSIPs(context.Background(), utils.Date(2024, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestExecuteDueSIPs_ParallelWorkers(t *testing.T) {
	f := setup(t, fixtureOptions{successRate: 1, opts: Options{Workers: 4}})
	ids := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		ids = append(ids, f.createSip(t, fmt.Sprintf("2024-01-%02d", i+1), 0).ID)
	}

	n, err := f.uc.ExecuteDueSIPs(context.Background(), utils.Date(2024, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	for _, id := range ids {
		got, _ := f.sips.GetSIP(id)
		assert.Equal(t, 1, got.InstallmentCount, id)
	}
	count, _ := f.store.CountTransactions()
	assert.Equal(t, int64(20), count)
}

type failingGateway struct{ err error }

func (g failingGateway) InitiatePayment(context.Context, string, float64, payment.Callback) error {
	return g.err
}

func TestExecuteDueSIPs_GatewayError(t *testing.T) {
	f := setup(t, fixtureOptions{gateway: failingGateway{err: errors.New("connection refused")}, opts: Options{SkipPendingInstallments: true}})
	sip := f.createSip(t, "2024-01-15", 0)

	n, err := f.uc.ExecuteDueSIPs(context.Background(), utils.Date(2024, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	trxs, _ := f.store.GetTransactionsBySipID(sip.ID)
	require.Len(t, trxs, 1)
	assert.Equal(t, consts.PaymentStatusFailure, trxs[0].Status)

	runs, _ := f.uc.GetExecutionRuns()
	require.Len(t, runs, 1)
	assert.Equal(t, int64(1), runs[0].FailedCount)
	assert.Contains(t, runs[0].Result, "connection refused")
}

// flakyGateway panics on its first panics submissions, then delegates.
type flakyGateway struct {
	mu     sync.Mutex
	panics int
	next   payment.Gateway
}

func (g *flakyGateway) InitiatePayment(ctx context.Context, trxID string, amount float64, cb payment.Callback) error {
	g.mu.Lock()
	explode := g.panics > 0
	if explode {
		g.panics--
	}
	g.mu.Unlock()
	if explode {
		panic("gateway exploded")
	}
	return g.next.InitiatePayment(ctx, trxID, amount, cb)
}

func TestExecuteDueSIPs_PanicIsContained(t *testing.T) {
	next, err := payment.NewSimulated(payment.ModeImmediate, 1, 0, 1)
	require.NoError(t, err)
	gateway := &flakyGateway{panics: 2, next: next}
	f := setup(t, fixtureOptions{gateway: gateway, opts: Options{Workers: 2, SkipPendingInstallments: true}})
	first := f.createSip(t, "2024-01-15", 0)
	second := f.createSip(t, "2024-01-15", 0)

	n, err := f.uc.ExecuteDueSIPs(context.Background(), utils.Date(2024, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	runs, _ := f.uc.GetExecutionRuns()
	require.Len(t, runs, 1)
	assert.Equal(t, int64(2), runs[0].FailedCount)

	_, items, err := f.uc.GetExecutionRun(runs[0].ID)
	require.NoError(t, err)
	for _, item := range items {
		assert.Contains(t, item.Error, "gateway exploded")
	}

	for _, sip := range []model.Sip{first, second} {
		trxs, _ := f.store.GetTransactionsBySipID(sip.ID)
		require.Len(t, trxs, 1)
		assert.Equal(t, consts.PaymentStatusFailure, trxs[0].Status)
		assert.True(t, trxs[0].CallbackApplied)

		pending, err := f.store.HasPendingInstallment(sip.ID)
		require.NoError(t, err)
		assert.False(t, pending)
	}

	// the SIPs are still due and are charged once the gateway recovers
	n, err = f.uc.ExecuteDueSIPs(context.Background(), utils.Date(2024, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, sip := range []model.Sip{first, second} {
		got, err := f.sips.GetSIP(sip.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.InstallmentCount)
		assert.Equal(t, utils.Date(2024, 2, 15), got.NextExecutionDate)
	}
}

func TestGetExecutionRun_NotFound(t *testing.T) {
	f := setup(t, fixtureOptions{successRate: 1})
	_, _, err := f.uc.GetExecutionRun("RUN_404")
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}
