package domain

import "fmt"

// Category is an access tier gating which credential pools a user may draw from.
type Category string

const (
	CategoryFree    Category = "free"
	CategoryPremium Category = "premium"
	CategoryBooster Category = "booster"
	CategoryVIP     Category = "vip"
)

// Categories lists every valid tier in display order.
var Categories = []Category{CategoryFree, CategoryPremium, CategoryBooster, CategoryVIP}

// ParseCategory validates a caller-supplied category name.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// Valid reports whether the category belongs to the closed tier set.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}
