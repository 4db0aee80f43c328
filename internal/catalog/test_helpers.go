package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/sweetslice/storefront/pkg/enums"
)

// SampleProducts returns a small fixed catalog for tests across packages.
func SampleProducts() []Product {
	return []Product{
		{
			ID: 1, Name: "Chocolate Cake", Description: "Rich chocolate layers",
			Category: enums.ProductCategoryCakes, BasePrice: decimal.RequireFromString("10.00"),
			AvailableSizes: []string{"6 inch", "8 inch"}, AvailableFlavors: []string{"Chocolate", "Vanilla"},
			Customizable: true, DietaryTags: []string{"Contains Nuts"},
		},
		{
			ID: 2, Name: "Berry Cupcakes", Description: "Fresh berry frosting",
			Category: enums.ProductCategoryCupcakes, BasePrice: decimal.RequireFromString("5.00"),
			AvailableSizes: []string{"Half Dozen", "Dozen"}, AvailableFlavors: []string{"Strawberry"},
		},
		{
			ID: 3, Name: "Almond Croissant", Description: "Flaky pastry with cake-like almond cream",
			Category: enums.ProductCategoryPastries, BasePrice: decimal.RequireFromString("7.50"),
			AvailableSizes: []string{"Box of 4"}, AvailableFlavors: []string{"Almond"},
		},
	}
}
