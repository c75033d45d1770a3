package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

// Seed creates demo campaigns with a handful of open bids each through the
// regular usecase, so seeded data obeys the same invariants as live data.
// Every second bid carries a counter-offer round.
func Seed(ctx context.Context, svc port.DealUseCase) ([]domain.Campaign, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var out []domain.Campaign
	for i := 1; i <= 3; i++ {
		camp, err := svc.CreateCampaign(ctx, port.CreateCampaignInput{
			AdvertiserID: fmt.Sprintf("advertiser-%d", i),
			Title:        fmt.Sprintf("Campaign %d", i),
			Budget:       100000, // 1000.00 units
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *camp)
		for j := 1; j <= 5; j++ {
			bid, err := svc.PlaceBid(ctx, port.PlaceBidInput{
				CampaignID: camp.ID,
				CreatorID:  fmt.Sprintf("creator-%d", (i-1)*5+j),
				Amount:     int64(20000 + r.Intn(60000)),
				Reasoning:  "seeded offer",
			})
			if err != nil {
				return nil, err
			}
			if j%2 == 0 {
				_, err = svc.AppendRound(ctx, port.AppendRoundInput{
					BidID:      bid.ID,
					Price:      bid.Amount * 9 / 10,
					Concession: "10% discount",
					Reasoning:  "advertiser counter-offer accepted",
				})
				if err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}
