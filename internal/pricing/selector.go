package pricing

import (
	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
)

// SelectBest picks the eligible candidate yielding the strictly greatest
// amount against base. Ties keep the first-seen candidate, so callers must
// present candidates in a deterministic order (discount id ascending). It
// returns nil when no candidate is eligible or every amount computes to zero.
func SelectBest(candidates []models.Discount, base int64, octx OrderContext) (*models.Discount, int64) {
	var best *models.Discount
	var bestAmount int64
	for i := range candidates {
		candidate := &candidates[i]
		if Check(*candidate, octx) != "" {
			continue
		}
		amount := Amount(*candidate, base)
		if amount <= 0 {
			continue
		}
		if best == nil || amount > bestAmount {
			best = candidate
			bestAmount = amount
		}
	}
	return best, bestAmount
}
