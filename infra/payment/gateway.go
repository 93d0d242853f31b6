package payment

import "context"

// Callback receives the outcome of a payment. It may be invoked zero, one or
// many times for the same transaction.
type Callback func(transactionID string, status int)

type Gateway interface {
	InitiatePayment(ctx context.Context, transactionID string, amount float64, callback Callback) error
}
