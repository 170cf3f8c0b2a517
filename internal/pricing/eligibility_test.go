package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func seasonalDiscount(rate string, cap *int64) models.Discount {
	parsed := decimal.RequireFromString(rate)
	return models.Discount{
		ID:                uuid.New(),
		Code:              "SEASON10",
		Name:              "Season Sale",
		Category:          enums.DiscountCategorySeasonal,
		StartsAt:          testNow.Add(-time.Hour),
		EndsAt:            testNow.Add(time.Hour),
		IsActive:          true,
		Rate:              &parsed,
		MaxDiscountAmount: cap,
	}
}

func shippingDiscount(amount int64) models.Discount {
	return models.Discount{
		ID:                     uuid.New(),
		Code:                   "FREESHIP",
		Name:                   "Free Shipping",
		Category:               enums.DiscountCategoryShipping,
		StartsAt:               testNow.Add(-time.Hour),
		EndsAt:                 testNow.Add(time.Hour),
		IsActive:               true,
		ShippingDiscountAmount: &amount,
	}
}

func specialDiscount(storeID uuid.UUID, productTypeID *uuid.UUID, rate string, cap *int64) models.Discount {
	parsed := decimal.RequireFromString(rate)
	return models.Discount{
		ID:                uuid.New(),
		Code:              "STORE15",
		Name:              "Store Special",
		Category:          enums.DiscountCategorySpecial,
		StartsAt:          testNow.Add(-time.Hour),
		EndsAt:            testNow.Add(time.Hour),
		IsActive:          true,
		Rate:              &parsed,
		MaxDiscountAmount: cap,
		StoreID:           &storeID,
		ProductTypeID:     productTypeID,
	}
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func baseContext(subtotal int64) OrderContext {
	return OrderContext{
		Subtotal:       subtotal,
		Now:            testNow,
		StoreID:        uuid.New(),
		ProductTypeIDs: map[uuid.UUID]struct{}{},
	}
}

func TestCheckActiveFlag(t *testing.T) {
	d := seasonalDiscount("0.10", nil)
	d.IsActive = false
	assert.Equal(t, ReasonInactive, Check(d, baseContext(1000)))
}

func TestCheckTimeWindowHalfOpen(t *testing.T) {
	d := seasonalDiscount("0.10", nil)

	d.StartsAt = testNow
	d.EndsAt = testNow.Add(time.Hour)
	assert.Empty(t, Check(d, baseContext(1000)), "window start is inclusive")

	d.StartsAt = testNow.Add(-time.Hour)
	d.EndsAt = testNow
	assert.Equal(t, ReasonExpired, Check(d, baseContext(1000)), "window end is exclusive")

	d.StartsAt = testNow.Add(time.Minute)
	d.EndsAt = testNow.Add(time.Hour)
	assert.Equal(t, ReasonNotStarted, Check(d, baseContext(1000)))
}

func TestCheckUsageLimit(t *testing.T) {
	d := seasonalDiscount("0.10", nil)

	assert.Empty(t, Check(d, baseContext(1000)), "no limit set")

	d.UsageLimit = intPtr(5)
	d.UsageCount = 4
	assert.Empty(t, Check(d, baseContext(1000)))

	d.UsageCount = 5
	assert.Equal(t, ReasonUsageExhausted, Check(d, baseContext(1000)))
}

func TestCheckMinPurchaseBoundary(t *testing.T) {
	d := seasonalDiscount("0.10", nil)
	d.MinPurchase = 300

	assert.Equal(t, ReasonMinPurchase, Check(d, baseContext(299)))
	assert.Empty(t, Check(d, baseContext(300)), "eligible exactly at the minimum")
	assert.Empty(t, Check(d, baseContext(301)))
}

func TestCheckSpecialScope(t *testing.T) {
	storeID := uuid.New()
	typeID := uuid.New()

	d := specialDiscount(storeID, nil, "0.10", nil)
	octx := baseContext(1000)
	octx.StoreID = storeID
	assert.Empty(t, Check(d, octx))

	octx.StoreID = uuid.New()
	assert.Equal(t, ReasonScopeMismatch, Check(d, octx), "wrong store")

	scoped := specialDiscount(storeID, &typeID, "0.10", nil)
	octx.StoreID = storeID
	assert.Equal(t, ReasonScopeMismatch, Check(scoped, octx), "product type absent from group")

	octx.ProductTypeIDs = map[uuid.UUID]struct{}{typeID: {}}
	assert.Empty(t, Check(scoped, octx))
}

func TestCheckMalformedPayloadNeverPanics(t *testing.T) {
	d := seasonalDiscount("0.10", nil)
	d.Rate = nil
	assert.Equal(t, ReasonMalformedPayload, Check(d, baseContext(1000)))

	ship := shippingDiscount(60)
	ship.ShippingDiscountAmount = nil
	assert.Equal(t, ReasonMalformedPayload, Check(ship, baseContext(1000)))

	special := specialDiscount(uuid.New(), nil, "0.10", nil)
	special.StoreID = nil
	assert.Equal(t, ReasonMalformedPayload, Check(special, baseContext(1000)))
}

func TestCheckHasNoSideEffects(t *testing.T) {
	d := seasonalDiscount("0.10", nil)
	before := d
	_ = Check(d, baseContext(1000))
	assert.Equal(t, before, d)
}
