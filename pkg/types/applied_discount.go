package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// AppliedDiscount is the snapshot of a resolved discount frozen onto an order
// at checkout time. Later edits to the discount entity never alter it.
type AppliedDiscount struct {
	DiscountID uuid.UUID `json:"discount_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Amount     int64     `json:"amount"`
}

// Value serializes the snapshot to JSON for a JSONB column.
func (a *AppliedDiscount) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan decodes JSONB into the snapshot struct.
func (a *AppliedDiscount) Scan(value interface{}) error {
	if value == nil {
		*a = AppliedDiscount{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, a)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
