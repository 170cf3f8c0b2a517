package pricing

import (
	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
)

// Price produces one priced breakdown per store order group. It is a pure
// function over its inputs: identical inputs (including Now) yield identical
// output, and it is safe to call concurrently.
//
// Business-rule non-eligibility is normal control flow reported through
// Diagnostics; Price only fails for structurally invalid input.
func Price(items []models.CartItem, catalog []models.Discount, sel Selections, storeNames map[uuid.UUID]string, p Params) (*Result, error) {
	if p.Now.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "evaluation timestamp is required")
	}
	if p.BaseShippingFee < 0 || p.FreeShippingThreshold < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping configuration must be non-negative")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart must contain at least one item")
	}
	selected := 0
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
		}
		if item.UnitPrice < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item price must be non-negative")
		}
		if item.Selected {
			selected++
		}
	}
	if selected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items selected for checkout")
	}

	result := &Result{}

	// Catalog hygiene pass: a payload that does not match its declared
	// category is a data-integrity condition. The discount is excluded and
	// the omission reported; the checkout continues.
	clean := make([]models.Discount, 0, len(catalog))
	for _, d := range catalog {
		if !payloadValid(d) {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Code:     d.Code,
				Category: d.Category,
				Reason:   ReasonMalformedPayload,
			})
			continue
		}
		clean = append(clean, d)
	}

	groups := GroupByStore(items)
	result.Groups = make([]GroupResult, 0, len(groups))
	for _, group := range groups {
		result.Groups = append(result.Groups, priceGroup(group, clean, sel, storeNames, p, result))
	}
	return result, nil
}

func priceGroup(group StoreGroup, catalog []models.Discount, sel Selections, storeNames map[uuid.UUID]string, p Params, result *Result) GroupResult {
	octx := OrderContext{
		Subtotal:       group.Subtotal,
		Now:            p.Now,
		StoreID:        group.StoreID,
		ProductTypeIDs: productTypeSet(group.Items),
	}

	priced := GroupResult{
		StoreID:   group.StoreID,
		StoreName: storeNames[group.StoreID],
		Items:     group.Items,
		Subtotal:  group.Subtotal,
	}

	// Shipping: the free-shipping waiver takes precedence over a chosen code.
	// Shipping is never discounted below zero and never discounted twice.
	if group.Subtotal >= p.FreeShippingThreshold {
		priced.ShippingFee = 0
		priced.ShippingDiscount = p.BaseShippingFee
		if sel.ShippingCode != "" {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Code:     sel.ShippingCode,
				Category: enums.DiscountCategoryShipping,
				StoreID:  group.StoreID,
				Reason:   ReasonShippingWaived,
			})
		}
	} else {
		priced.ShippingFee = p.BaseShippingFee
		if sel.ShippingCode != "" {
			if applied, diag := resolveChosen(catalog, sel.ShippingCode, enums.DiscountCategoryShipping, p.BaseShippingFee, octx); applied != nil {
				priced.Shipping = applied
				priced.ShippingFee = p.BaseShippingFee - applied.Amount
				if priced.ShippingFee < 0 {
					priced.ShippingFee = 0
				}
				priced.ShippingDiscount = applied.Amount
			} else {
				result.Diagnostics = append(result.Diagnostics, *diag)
			}
		}
	}

	// Special discounts are never buyer-chosen: the system picks the best
	// eligible one scoped to this store.
	specials := make([]models.Discount, 0)
	for _, d := range catalog {
		if d.Category == enums.DiscountCategorySpecial && d.StoreID != nil && *d.StoreID == group.StoreID {
			specials = append(specials, d)
		}
	}
	if best, amount := SelectBest(specials, group.Subtotal, octx); best != nil {
		priced.Special = &AppliedDiscount{
			DiscountID: best.ID,
			Code:       best.Code,
			Name:       best.Name,
			Amount:     amount,
		}
	}

	if sel.SeasonalCode != "" {
		if applied, diag := resolveChosen(catalog, sel.SeasonalCode, enums.DiscountCategorySeasonal, group.Subtotal, octx); applied != nil {
			priced.Seasonal = applied
		} else {
			result.Diagnostics = append(result.Diagnostics, *diag)
		}
	}

	// Shipping discount reduces the fee directly; it is a separate ledger
	// line and not part of TotalDiscount.
	if priced.Special != nil {
		priced.TotalDiscount += priced.Special.Amount
	}
	if priced.Seasonal != nil {
		priced.TotalDiscount += priced.Seasonal.Amount
	}

	priced.Total = priced.Subtotal + priced.ShippingFee - priced.TotalDiscount
	if priced.Total < 0 {
		priced.Total = 0
		priced.Anomaly = true
	}
	return priced
}

// resolveChosen restricts the candidate set to the single buyer-chosen code,
// so selection degenerates to one eligibility and amount check. It returns
// either the applied discount or a diagnostic explaining the rejection.
func resolveChosen(catalog []models.Discount, code string, category enums.DiscountCategory, base int64, octx OrderContext) (*AppliedDiscount, *Diagnostic) {
	diag := &Diagnostic{Code: code, Category: category, StoreID: octx.StoreID}
	var chosen *models.Discount
	for i := range catalog {
		if catalog[i].Code == code {
			chosen = &catalog[i]
			break
		}
	}
	if chosen == nil {
		diag.Reason = ReasonUnknownCode
		return nil, diag
	}
	if chosen.Category != category {
		diag.Reason = ReasonCategoryMismatch
		return nil, diag
	}
	if reason := Check(*chosen, octx); reason != "" {
		diag.Reason = reason
		return nil, diag
	}
	amount := Amount(*chosen, base)
	if amount <= 0 {
		diag.Reason = ReasonZeroAmount
		return nil, diag
	}
	return &AppliedDiscount{
		DiscountID: chosen.ID,
		Code:       chosen.Code,
		Name:       chosen.Name,
		Amount:     amount,
	}, nil
}
