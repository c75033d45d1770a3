package port

import "context"

// PaymentRequest is the result of the request phase of the payment
// handshake.
type PaymentRequest struct {
	Header   string
	Amount   int64
	Currency string
}

// PaymentOrder describes the transfer performed in the execution phase.
// IdempotencyKey is stable across retries for the same contract.
type PaymentOrder struct {
	Payer          string
	Payee          string
	Amount         int64
	Request        PaymentRequest
	IdempotencyKey string
}

// PaymentRail is the external service that moves funds. It is consumed
// through a two-phase handshake: CreatePaymentRequest builds the request
// without side effects and must fail when credentials are missing;
// ExecutePayment performs the transfer and returns a receipt token. Execution
// may block for a noticeable time and honours ctx cancellation.
type PaymentRail interface {
	CreatePaymentRequest(ctx context.Context, amount int64, currency string) (PaymentRequest, error)
	ExecutePayment(ctx context.Context, order PaymentOrder) (string, error)
}
