package enums

import "fmt"

// DiscountCategory represents the discount_category enum in Postgres. At most
// one discount per category may apply to a store order group at checkout.
type DiscountCategory string

const (
	DiscountCategoryShipping DiscountCategory = "shipping"
	DiscountCategorySeasonal DiscountCategory = "seasonal"
	DiscountCategorySpecial  DiscountCategory = "special"
)

var validDiscountCategories = []DiscountCategory{
	DiscountCategoryShipping,
	DiscountCategorySeasonal,
	DiscountCategorySpecial,
}

// String implements fmt.Stringer.
func (d DiscountCategory) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DiscountCategory.
func (d DiscountCategory) IsValid() bool {
	for _, candidate := range validDiscountCategories {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDiscountCategory converts raw input into a DiscountCategory.
func ParseDiscountCategory(value string) (DiscountCategory, error) {
	for _, candidate := range validDiscountCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount category %q", value)
}
