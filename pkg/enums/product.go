package enums

import (
	"fmt"
	"strings"
)

// ProductCategory groups products on the storefront menu.
type ProductCategory string

const (
	ProductCategoryCakes    ProductCategory = "cakes"
	ProductCategoryCupcakes ProductCategory = "cupcakes"
	ProductCategoryPastries ProductCategory = "pastries"
)

var validProductCategories = []ProductCategory{
	ProductCategoryCakes,
	ProductCategoryCupcakes,
	ProductCategoryPastries,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ProductCategories returns the closed category list in menu order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// ParseProductCategory converts raw input into a ProductCategory. Matching ignores case.
func ParseProductCategory(value string) (ProductCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validProductCategories {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductSort orders the product listing.
type ProductSort string

const (
	ProductSortName      ProductSort = "name"
	ProductSortPriceLow  ProductSort = "price-low"
	ProductSortPriceHigh ProductSort = "price-high"
)

var validProductSorts = []ProductSort{
	ProductSortName,
	ProductSortPriceLow,
	ProductSortPriceHigh,
}

func (s ProductSort) String() string {
	return string(s)
}

func (s ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductSort converts raw input into a ProductSort. An empty value means name order.
func ParseProductSort(value string) (ProductSort, error) {
	if strings.TrimSpace(value) == "" {
		return ProductSortName, nil
	}
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product sort %q", value)
}
