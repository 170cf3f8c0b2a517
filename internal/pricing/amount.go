package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

// Amount computes the discount amount against the given monetary base in
// whole currency units. Shipping discounts are flat and clamped to the base;
// rate discounts are floored (truncated toward zero, never rounded) and
// capped by MaxDiscountAmount when set. A malformed payload yields 0.
func Amount(d models.Discount, base int64) int64 {
	if base < 0 {
		return 0
	}
	switch d.Category {
	case enums.DiscountCategoryShipping:
		if d.ShippingDiscountAmount == nil {
			return 0
		}
		amount := *d.ShippingDiscountAmount
		if amount < 0 {
			return 0
		}
		if amount > base {
			amount = base
		}
		return amount
	case enums.DiscountCategorySeasonal, enums.DiscountCategorySpecial:
		if d.Rate == nil || d.Rate.IsNegative() {
			return 0
		}
		amount := decimal.NewFromInt(base).Mul(*d.Rate).Floor().IntPart()
		if d.MaxDiscountAmount != nil && amount > *d.MaxDiscountAmount {
			amount = *d.MaxDiscountAmount
		}
		if amount < 0 {
			return 0
		}
		return amount
	default:
		return 0
	}
}
