package domain

import (
	"fmt"
	"sort"
)

// TierBonus is one row of a contract's conditional bonus table. Tier 0 is the
// base tier and never carries a bonus.
type TierBonus struct {
	Tier  int   `json:"tier"`
	Bonus int64 `json:"bonus"`
}

// NormalizeTiers validates a tier table and returns a copy sorted by tier.
// Tiers must be positive and unique; bonuses must not be negative.
func NormalizeTiers(tiers []TierBonus) ([]TierBonus, error) {
	out := make([]TierBonus, len(tiers))
	copy(out, tiers)
	sort.Slice(out, func(i, j int) bool { return out[i].Tier < out[j].Tier })
	for i, t := range out {
		if t.Tier < 1 {
			return nil, fmt.Errorf("%w: tier %d must be positive", ErrInvalidInput, t.Tier)
		}
		if t.Bonus < 0 {
			return nil, fmt.Errorf("%w: tier %d has negative bonus", ErrInvalidInput, t.Tier)
		}
		if i > 0 && out[i-1].Tier == t.Tier {
			return nil, fmt.Errorf("%w: duplicate tier %d", ErrInvalidInput, t.Tier)
		}
	}
	return out, nil
}

// Bonus returns the bonus for tier, or 0 for tier 0 and tiers absent from
// the table.
func Bonus(tiers []TierBonus, tier int) int64 {
	if tier <= 0 {
		return 0
	}
	for _, t := range tiers {
		if t.Tier == tier {
			return t.Bonus
		}
	}
	return 0
}

// Payout computes the total amount owed for a contract at the given audit
// tier.
func Payout(base int64, tiers []TierBonus, tier int) int64 {
	return base + Bonus(tiers, tier)
}
