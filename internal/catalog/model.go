package catalog

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sweetslice/storefront/pkg/enums"
)

// Product is one item on the bakery menu.
type Product struct {
	ID               int64                 `json:"id"`
	Name             string                `json:"name"`
	Description      string                `json:"description"`
	Category         enums.ProductCategory `json:"category"`
	BasePrice        decimal.Decimal       `json:"base_price"`
	Images           []string              `json:"images"`
	AvailableSizes   []string              `json:"available_sizes"`
	AvailableFlavors []string              `json:"available_flavors"`
	Customizable     bool                  `json:"customizable"`
	DietaryTags      []string              `json:"dietary_tags,omitempty"`
}

// Key is the product id in the string form cart lines carry.
func (p Product) Key() string {
	return strconv.FormatInt(p.ID, 10)
}

// OffersSize reports whether size is one of the product's sizes.
func (p Product) OffersSize(size string) bool {
	return contains(p.AvailableSizes, size)
}

// OffersFlavor reports whether flavor is one of the product's flavors.
func (p Product) OffersFlavor(flavor string) bool {
	return contains(p.AvailableFlavors, flavor)
}

func (p Product) clone() Product {
	out := p
	out.Images = append([]string(nil), p.Images...)
	out.AvailableSizes = append([]string(nil), p.AvailableSizes...)
	out.AvailableFlavors = append([]string(nil), p.AvailableFlavors...)
	if p.DietaryTags != nil {
		out.DietaryTags = append([]string{}, p.DietaryTags...)
	}
	return out
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// ParseID converts a path or cart product id into a catalog id.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
