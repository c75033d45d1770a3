package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealflow/internal/config/configs"
	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

func newRail(key string, latency time.Duration) *SimulatedRail {
	return NewSimulatedRail(configs.Payment{APIKey: key, Network: "sandbox", Latency: latency})
}

func TestCreatePaymentRequestRequiresCredentials(t *testing.T) {
	_, err := newRail("", 0).CreatePaymentRequest(context.Background(), 100, "USD")
	assert.ErrorIs(t, err, domain.ErrRailNotConfigured)
	assert.ErrorIs(t, err, domain.ErrPayoutExecutionFailed)
}

func TestCreatePaymentRequestHeader(t *testing.T) {
	req, err := newRail("key", 0).CreatePaymentRequest(context.Background(), 700, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(700), req.Amount)

	raw, err := base64.StdEncoding.DecodeString(req.Header)
	require.NoError(t, err)
	var hs handshake
	require.NoError(t, json.Unmarshal(raw, &hs))
	assert.Equal(t, "exact", hs.Scheme)
	assert.Equal(t, "sandbox", hs.Network)
	assert.Equal(t, int64(700), hs.Amount)
	assert.NotEmpty(t, hs.Nonce)

	_, err = newRail("key", 0).CreatePaymentRequest(context.Background(), 0, "USD")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExecutePaymentIsIdempotent(t *testing.T) {
	rail := newRail("key", 0)
	ctx := context.Background()
	req, err := rail.CreatePaymentRequest(ctx, 500, "USD")
	require.NoError(t, err)
	order := port.PaymentOrder{Payer: "a", Payee: "b", Amount: 500, Request: req, IdempotencyKey: "settle-c1"}

	first, err := rail.ExecutePayment(ctx, order)
	require.NoError(t, err)
	second, err := rail.ExecutePayment(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	order.IdempotencyKey = "settle-c2"
	third, err := rail.ExecutePayment(ctx, order)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestExecutePaymentRejectsMismatchedOrder(t *testing.T) {
	rail := newRail("key", 0)
	req, err := rail.CreatePaymentRequest(context.Background(), 500, "USD")
	require.NoError(t, err)

	_, err = rail.ExecutePayment(context.Background(), port.PaymentOrder{Amount: 600, Request: req})
	assert.Error(t, err)
}

func TestExecutePaymentHonoursDeadline(t *testing.T) {
	rail := newRail("key", time.Second)
	req, err := rail.CreatePaymentRequest(context.Background(), 500, "USD")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = rail.ExecutePayment(ctx, port.PaymentOrder{Amount: 500, Request: req, IdempotencyKey: "k"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, rail.receipts)
}
