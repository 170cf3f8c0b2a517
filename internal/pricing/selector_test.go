package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
)

func TestSelectBestPicksGreatestAmount(t *testing.T) {
	storeID := uuid.New()
	octx := baseContext(1000)
	octx.StoreID = storeID

	smaller := specialDiscount(storeID, nil, "0.04", nil) // 40 on base 1000
	larger := specialDiscount(storeID, nil, "0.10", int64Ptr(55))
	larger.Code = "STORE55"

	best, amount := SelectBest([]models.Discount{smaller, larger}, 1000, octx)
	require.NotNil(t, best)
	assert.Equal(t, "STORE55", best.Code)
	assert.Equal(t, int64(55), amount)
}

func TestSelectBestTieKeepsFirstSeen(t *testing.T) {
	storeID := uuid.New()
	octx := baseContext(1000)
	octx.StoreID = storeID

	first := specialDiscount(storeID, nil, "0.05", nil)
	first.Code = "FIRST"
	second := specialDiscount(storeID, nil, "0.05", nil)
	second.Code = "SECOND"

	best, amount := SelectBest([]models.Discount{first, second}, 1000, octx)
	require.NotNil(t, best)
	assert.Equal(t, "FIRST", best.Code, "stable selection on equal amounts")
	assert.Equal(t, int64(50), amount)
}

func TestSelectBestSkipsIneligible(t *testing.T) {
	storeID := uuid.New()
	octx := baseContext(1000)
	octx.StoreID = storeID

	inactive := specialDiscount(storeID, nil, "0.20", nil)
	inactive.IsActive = false
	eligible := specialDiscount(storeID, nil, "0.05", nil)
	eligible.Code = "ALIVE"

	best, amount := SelectBest([]models.Discount{inactive, eligible}, 1000, octx)
	require.NotNil(t, best)
	assert.Equal(t, "ALIVE", best.Code)
	assert.Equal(t, int64(50), amount)
}

func TestSelectBestNilWhenNoneEligible(t *testing.T) {
	storeID := uuid.New()
	octx := baseContext(1000)
	octx.StoreID = storeID

	expired := specialDiscount(storeID, nil, "0.20", nil)
	expired.EndsAt = testNow.Add(-time.Minute)

	best, _ := SelectBest([]models.Discount{expired}, 1000, octx)
	assert.Nil(t, best)
}

func TestSelectBestNilWhenAllAmountsZero(t *testing.T) {
	storeID := uuid.New()
	octx := baseContext(5)
	octx.StoreID = storeID

	tiny := specialDiscount(storeID, nil, "0.10", nil) // floor(0.5) == 0

	best, _ := SelectBest([]models.Discount{tiny}, 5, octx)
	assert.Nil(t, best)
}

func TestSelectBestEmptyCandidates(t *testing.T) {
	best, amount := SelectBest(nil, 1000, baseContext(1000))
	assert.Nil(t, best)
	assert.Zero(t, amount)
}
