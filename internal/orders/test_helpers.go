package orders

import (
	"github.com/shopspring/decimal"

	"github.com/sweetslice/storefront/pkg/enums"
)

// SampleDraft returns a draft whose items total 25.00: two 10.00 units and one 5.00 unit.
func SampleDraft(method enums.DeliveryMethod) Draft {
	draft := Draft{
		CustomerName:   "Ada Baker",
		Email:          "ada@example.com",
		Phone:          "555-0199",
		DeliveryMethod: method,
		DeliveryDate:   "2026-03-02",
		DeliveryTime:   "10:00 AM",
		Items: Items{
			{LineID: "l1", ProductID: "1", ProductName: "Chocolate Cake", Quantity: 2, Size: "6 inch", Flavor: "Chocolate", Price: decimal.RequireFromString("10.00")},
			{LineID: "l2", ProductID: "2", ProductName: "Berry Cupcakes", Quantity: 1, Size: "Dozen", Flavor: "Strawberry", Price: decimal.RequireFromString("5.00")},
		},
	}
	if method.ChargesFee() {
		draft.Address = "1 Main St"
		draft.City = "Springfield"
		draft.ZipCode = "62704"
	}
	return draft
}
