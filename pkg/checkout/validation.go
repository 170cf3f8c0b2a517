package checkout

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
)

// LineValidationInput describes the data required to verify a cart line can be
// checked out.
type LineValidationInput struct {
	ProductID    uuid.UUID
	ProductTitle string
	Status       enums.CartItemStatus
	Quantity     int
}

// LineViolationDetail exposes the data returned to callers when a validation fails.
type LineViolationDetail struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductTitle string    `json:"product_title,omitempty"`
	Status       string    `json:"status"`
	Quantity     int       `json:"quantity"`
}

// ValidateLines ensures every provided line item is still purchasable. Items
// can go stale between being added to the cart and checkout.
func ValidateLines(items []LineValidationInput) error {
	var violations []LineViolationDetail
	for _, item := range items {
		if item.Status == enums.CartItemStatusOK && item.Quantity >= 1 {
			continue
		}
		violations = append(violations, LineViolationDetail{
			ProductID:    item.ProductID,
			ProductTitle: item.ProductTitle,
			Status:       item.Status.String(),
			Quantity:     item.Quantity,
		})
	}
	if len(violations) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("%d cart item(s) cannot be checked out", len(violations))).WithDetails(map[string]any{
		"violations": violations,
	})
}
