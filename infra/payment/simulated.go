package payment

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/radhian/sip-engine/consts"

	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"
)

const (
	// ModeImmediate delivers the outcome before InitiatePayment returns.
	ModeImmediate = "immediate"
	// ModeManual holds the payment until CompletePayment or CompleteAllPending.
	ModeManual = "manual"
	// ModeAsync delivers the outcome from a separate goroutine.
	ModeAsync = "async"
)

type pendingPayment struct {
	amount   float64
	callback Callback
}

type delivery struct {
	status   int
	callback Callback
}

type Simulated struct {
	mode        string
	limiter     *rate.Limiter
	mu          sync.Mutex
	successRate float64
	rnd         *rand.Rand

	pending      map[string]pendingPayment
	pendingOrder []string
	delivered    map[string]delivery

	wg sync.WaitGroup
}

// NewSimulated builds a gateway. ratePerSec <= 0 disables the submission limit.
func NewSimulated(mode string, successRate float64, ratePerSec float64, seed int64) (*Simulated, error) {
	switch mode {
	case ModeImmediate, ModeManual, ModeAsync:
	default:
		return nil, fmt.Errorf("unknown payment mode %q", mode)
	}

	limit := rate.Inf
	burst := 1
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
		burst = int(ratePerSec)
		if burst < 1 {
			burst = 1
		}
	}

	return &Simulated{
		mode:        mode,
		limiter:     rate.NewLimiter(limit, burst),
		successRate: clamp(successRate),
		rnd:         rand.New(rand.NewSource(seed)),
		pending:     make(map[string]pendingPayment),
		delivered:   make(map[string]delivery),
	}, nil
}

func (g *Simulated) InitiatePayment(ctx context.Context, transactionID string, amount float64, callback Callback) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("payment submission throttled: %w", err)
	}

	switch g.mode {
	case ModeManual:
		g.mu.Lock()
		g.pending[transactionID] = pendingPayment{amount: amount, callback: callback}
		g.pendingOrder = append(g.pendingOrder, transactionID)
		g.mu.Unlock()
		log.Debugf("[PaymentGateway] holding %s amount=%.2f", transactionID, amount)
	case ModeAsync:
		status := g.simulateResult()
		g.wg.Add(1)
		go func() {
			defer g.wg.Done()
			g.deliver(transactionID, status, callback)
		}()
	default:
		g.deliver(transactionID, g.simulateResult(), callback)
	}
	return nil
}

// CompletePayment delivers status for a held payment. It returns false when
// the transaction is not held.
func (g *Simulated) CompletePayment(transactionID string, status int) bool {
	g.mu.Lock()
	p, ok := g.pending[transactionID]
	if ok {
		delete(g.pending, transactionID)
		g.pendingOrder = removeID(g.pendingOrder, transactionID)
	}
	g.mu.Unlock()

	if !ok {
		return false
	}
	g.deliver(transactionID, status, p.callback)
	return true
}

// CompleteAllPending delivers status for every held payment in submission order.
func (g *Simulated) CompleteAllPending(status int) int {
	g.mu.Lock()
	ids := make([]string, len(g.pendingOrder))
	copy(ids, g.pendingOrder)
	g.mu.Unlock()

	n := 0
	for _, id := range ids {
		if g.CompletePayment(id, status) {
			n++
		}
	}
	return n
}

// Redeliver replays the last outcome delivered for transactionID.
func (g *Simulated) Redeliver(transactionID string) bool {
	g.mu.Lock()
	d, ok := g.delivered[transactionID]
	g.mu.Unlock()

	if !ok {
		return false
	}
	log.Infof("[PaymentGateway] redelivering %s status=%s", transactionID, consts.PaymentStatusName(d.status))
	d.callback(transactionID, d.status)
	return true
}

func (g *Simulated) PendingCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

func (g *Simulated) SetSuccessRate(successRate float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.successRate = clamp(successRate)
}

// Wait blocks until every asynchronous delivery has returned.
func (g *Simulated) Wait() {
	g.wg.Wait()
}

func (g *Simulated) deliver(transactionID string, status int, callback Callback) {
	g.mu.Lock()
	g.delivered[transactionID] = delivery{status: status, callback: callback}
	g.mu.Unlock()

	log.Debugf("[PaymentGateway] delivering %s status=%s", transactionID, consts.PaymentStatusName(status))
	callback(transactionID, status)
}

func (g *Simulated) simulateResult() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rnd.Float64() < g.successRate {
		return consts.PaymentStatusSuccess
	}
	return consts.PaymentStatusFailure
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
