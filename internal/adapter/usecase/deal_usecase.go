package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

// SiblingPolicy decides what happens to the other open bids of a campaign
// once a winner has been selected.
type SiblingPolicy string

const (
	// SiblingKeep leaves sibling bids untouched; rejecting them is left to
	// the advertiser.
	SiblingKeep SiblingPolicy = "keep"
	// SiblingCancel cancels every open sibling bid after the contract is
	// formed.
	SiblingCancel SiblingPolicy = "cancel"
)

// Config holds the business constants of the engine.
type Config struct {
	// MinScore is the lowest audit score that authorizes a payout.
	MinScore float64
	// Currency is passed to the payment rail with every payout.
	Currency string
	// PaymentTimeout bounds the execution phase of the payment handshake.
	PaymentTimeout time.Duration
	SiblingPolicy  SiblingPolicy
}

// DefaultConfig returns the constants used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		MinScore:       0.5,
		Currency:       "USD",
		PaymentTimeout: 10 * time.Second,
		SiblingPolicy:  SiblingKeep,
	}
}

// DealUseCase provides business logic for the contract lifecycle: bid
// negotiation, winner selection, the contract state machine, the audit gate
// and settlement. It orchestrates the entity store, the payment rail and the
// transition hook to implement port.DealUseCase.
type DealUseCase struct {
	store  port.Store
	rail   port.PaymentRail
	events port.EventPublisher
	locker port.Locker
	cfg    Config
	logger *slog.Logger

	nowFn func() time.Time
	newID func() string
}

// NewDealUseCase creates a usecase wired to the given collaborators. Zero
// fields of cfg fall back to DefaultConfig.
func NewDealUseCase(store port.Store, rail port.PaymentRail, events port.EventPublisher, locker port.Locker, cfg Config, logger *slog.Logger) *DealUseCase {
	def := DefaultConfig()
	if cfg.MinScore <= 0 {
		cfg.MinScore = def.MinScore
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}
	if cfg.PaymentTimeout <= 0 {
		cfg.PaymentTimeout = def.PaymentTimeout
	}
	if cfg.SiblingPolicy == "" {
		cfg.SiblingPolicy = def.SiblingPolicy
	}
	return &DealUseCase{
		store:  store,
		rail:   rail,
		events: events,
		locker: locker,
		cfg:    cfg,
		logger: logger,
		nowFn:  func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// lockContract serializes every mutation of a single contract.
func (u *DealUseCase) lockContract(ctx context.Context, contractID string) (func(), error) {
	return u.locker.Lock(ctx, "contract:"+contractID)
}

// publish hands persisted transitions to the hook. The state change has
// already happened, so a failing hook is logged rather than returned.
func (u *DealUseCase) publish(ctx context.Context, evs ...domain.ContractEvent) {
	for _, ev := range evs {
		if err := u.events.Publish(ctx, ev); err != nil {
			u.logger.Warn("publish contract event",
				slog.String("contract_id", ev.ContractID),
				slog.String("to", string(ev.To)),
				slog.Any("error", err))
		}
	}
}
