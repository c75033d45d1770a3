package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"dealflow/internal/config/configs"
	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

// SimulatedRail implements port.PaymentRail without moving real funds. The
// request phase encodes the handshake header, the execution
// phase sleeps for the configured latency and issues a receipt. Receipts are
// remembered per idempotency key, so a retried transfer returns the original
// receipt instead of paying twice.
type SimulatedRail struct {
	apiKey  string
	network string
	latency time.Duration

	mu       sync.Mutex
	receipts map[string]string
}

// NewSimulatedRail returns a rail configured from cfg. An empty API key is
// accepted here; it makes every payment request fail.
func NewSimulatedRail(cfg configs.Payment) *SimulatedRail {
	return &SimulatedRail{
		apiKey:   cfg.APIKey,
		network:  cfg.Network,
		latency:  cfg.Latency,
		receipts: make(map[string]string),
	}
}

type handshake struct {
	Scheme   string `json:"scheme"`
	Network  string `json:"network"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Nonce    string `json:"nonce"`
}

func (r *SimulatedRail) CreatePaymentRequest(_ context.Context, amount int64, currency string) (port.PaymentRequest, error) {
	if r.apiKey == "" {
		return port.PaymentRequest{}, domain.ErrRailNotConfigured
	}
	if amount <= 0 {
		return port.PaymentRequest{}, fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidInput)
	}
	raw, err := json.Marshal(handshake{
		Scheme:   "exact",
		Network:  r.network,
		Amount:   amount,
		Currency: currency,
		Nonce:    uuid.NewString(),
	})
	if err != nil {
		return port.PaymentRequest{}, err
	}
	return port.PaymentRequest{
		Header:   base64.StdEncoding.EncodeToString(raw),
		Amount:   amount,
		Currency: currency,
	}, nil
}

func (r *SimulatedRail) ExecutePayment(ctx context.Context, order port.PaymentOrder) (string, error) {
	if order.Request.Header == "" || order.Request.Amount != order.Amount {
		return "", errors.New("payment order does not match its request")
	}
	if order.IdempotencyKey != "" {
		r.mu.Lock()
		receipt, ok := r.receipts[order.IdempotencyKey]
		r.mu.Unlock()
		if ok {
			return receipt, nil
		}
	}

	timer := time.NewTimer(r.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	receipt := "rcpt_" + uuid.NewString()
	if order.IdempotencyKey != "" {
		r.mu.Lock()
		defer r.mu.Unlock()
		if prior, ok := r.receipts[order.IdempotencyKey]; ok {
			return prior, nil
		}
		r.receipts[order.IdempotencyKey] = receipt
	}
	return receipt, nil
}
