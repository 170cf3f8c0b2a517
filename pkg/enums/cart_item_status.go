package enums

import "fmt"

// CartItemStatus records what revalidation found for a persisted cart line.
// Lines that fail revalidation stay in the cart so the client can show why,
// but they never flow into checkout.
type CartItemStatus string

const (
	CartItemStatusOK           CartItemStatus = "ok"
	CartItemStatusNotAvailable CartItemStatus = "not_available"
	CartItemStatusInvalid      CartItemStatus = "invalid"
)

// String implements fmt.Stringer.
func (c CartItemStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartItemStatus.
func (c CartItemStatus) IsValid() bool {
	switch c {
	case CartItemStatusOK, CartItemStatusNotAvailable, CartItemStatusInvalid:
		return true
	}
	return false
}

// ParseCartItemStatus converts raw input into a CartItemStatus.
func ParseCartItemStatus(value string) (CartItemStatus, error) {
	status := CartItemStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid cart item status %q", value)
	}
	return status, nil
}
