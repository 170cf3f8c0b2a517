package pricing

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

// OrderContext is the evaluation context for discount eligibility within one
// store order group. Now must be supplied by the caller; the engine never
// reads a clock.
type OrderContext struct {
	Subtotal       int64
	Now            time.Time
	StoreID        uuid.UUID
	ProductTypeIDs map[uuid.UUID]struct{}
}

// Selections captures the buyer's chosen discount codes. At most one code per
// category; special discounts are never buyer-chosen.
type Selections struct {
	ShippingCode string
	SeasonalCode string
}

// Params carries the marketplace pricing constants and the evaluation instant.
type Params struct {
	FreeShippingThreshold int64
	BaseShippingFee       int64
	Now                   time.Time
}

// AppliedDiscount describes a discount resolved for one store order group.
type AppliedDiscount struct {
	DiscountID uuid.UUID `json:"discount_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Amount     int64     `json:"amount"`
}

// GroupResult is the priced breakdown for one store order group.
//
// Invariant: Total == Subtotal + ShippingFee - TotalDiscount (clamped at 0,
// with Anomaly set when clamping occurred). ShippingDiscount reduces
// ShippingFee directly and is not part of TotalDiscount.
type GroupResult struct {
	StoreID          uuid.UUID         `json:"store_id"`
	StoreName        string            `json:"store_name"`
	Items            []models.CartItem `json:"items"`
	Subtotal         int64             `json:"subtotal"`
	ShippingFee      int64             `json:"shipping_fee"`
	ShippingDiscount int64             `json:"shipping_discount"`
	Shipping         *AppliedDiscount  `json:"shipping,omitempty"`
	Seasonal         *AppliedDiscount  `json:"seasonal,omitempty"`
	Special          *AppliedDiscount  `json:"special,omitempty"`
	TotalDiscount    int64             `json:"total_discount"`
	Total            int64             `json:"total"`
	Anomaly          bool              `json:"anomaly,omitempty"`
}

// Diagnostic reports a discount that was considered but not applied, with the
// rule that rejected it. StoreID is Nil for catalog-wide integrity findings.
type Diagnostic struct {
	Code     string                 `json:"code"`
	Category enums.DiscountCategory `json:"category,omitempty"`
	StoreID  uuid.UUID              `json:"store_id,omitempty"`
	Reason   IneligibilityReason    `json:"reason"`
}

// Result is the full priced breakdown for a checkout.
type Result struct {
	Groups      []GroupResult `json:"groups"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
}

// TotalDiscount sums the seasonal and special discounts across groups.
func (r *Result) TotalDiscount() int64 {
	var sum int64
	for _, g := range r.Groups {
		sum += g.TotalDiscount
	}
	return sum
}

// GrandTotal sums the group totals.
func (r *Result) GrandTotal() int64 {
	var sum int64
	for _, g := range r.Groups {
		sum += g.Total
	}
	return sum
}
