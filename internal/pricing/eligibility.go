package pricing

import (
	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

// IneligibilityReason names the rule that rejected a discount. Empty means
// eligible. The caller surfaces these so the buyer learns why a code was not
// applied.
type IneligibilityReason string

const (
	ReasonInactive         IneligibilityReason = "inactive"
	ReasonNotStarted       IneligibilityReason = "not_started"
	ReasonExpired          IneligibilityReason = "expired"
	ReasonUsageExhausted   IneligibilityReason = "usage_exhausted"
	ReasonMinPurchase      IneligibilityReason = "min_purchase_not_met"
	ReasonScopeMismatch    IneligibilityReason = "scope_mismatch"
	ReasonMalformedPayload IneligibilityReason = "malformed_payload"
	ReasonUnknownCode      IneligibilityReason = "unknown_code"
	ReasonCategoryMismatch IneligibilityReason = "category_mismatch"
	ReasonZeroAmount       IneligibilityReason = "zero_amount"
	ReasonShippingWaived   IneligibilityReason = "shipping_already_waived"
)

// Check evaluates every eligibility rule against the order context and
// returns the first rule that fails, or empty when the discount is usable.
// A malformed payload is reported as a reason, never as an error.
func Check(d models.Discount, octx OrderContext) IneligibilityReason {
	if !payloadValid(d) {
		return ReasonMalformedPayload
	}
	if !d.IsActive {
		return ReasonInactive
	}
	if octx.Now.Before(d.StartsAt) {
		return ReasonNotStarted
	}
	if !octx.Now.Before(d.EndsAt) {
		return ReasonExpired
	}
	if d.UsageLimit != nil && d.UsageCount >= *d.UsageLimit {
		return ReasonUsageExhausted
	}
	if octx.Subtotal < d.MinPurchase {
		return ReasonMinPurchase
	}
	if d.Category == enums.DiscountCategorySpecial {
		if d.StoreID == nil || *d.StoreID != octx.StoreID {
			return ReasonScopeMismatch
		}
		if d.ProductTypeID != nil {
			if _, ok := octx.ProductTypeIDs[*d.ProductTypeID]; !ok {
				return ReasonScopeMismatch
			}
		}
	}
	return ""
}

// Eligible reports whether the discount is usable in the given context.
func Eligible(d models.Discount, octx OrderContext) bool {
	return Check(d, octx) == ""
}

// payloadValid reports whether exactly the payload variant matching the
// category is populated with sane values.
func payloadValid(d models.Discount) bool {
	switch d.Category {
	case enums.DiscountCategoryShipping:
		return d.ShippingDiscountAmount != nil && *d.ShippingDiscountAmount >= 0
	case enums.DiscountCategorySeasonal:
		return d.Rate != nil && !d.Rate.IsNegative()
	case enums.DiscountCategorySpecial:
		return d.Rate != nil && !d.Rate.IsNegative() && d.StoreID != nil
	default:
		return false
	}
}
