package cart

import "github.com/sweetslice/storefront/pkg/types"

type LineItemDTO struct {
	LineID        string `json:"line_id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	Size          string `json:"size"`
	Flavor        string `json:"flavor"`
	CustomMessage string `json:"custom_message,omitempty"`
	Price         string `json:"price"`
	LineTotal     string `json:"line_total"`
}

// ViewDTO is the cart payload: lines plus the badge count and running total.
type ViewDTO struct {
	Session     string        `json:"session"`
	Items       []LineItemDTO `json:"items"`
	TotalAmount string        `json:"total_amount"`
	TotalItems  int           `json:"total_items"`
	LineCount   int           `json:"line_count"`
}

func NewViewDTO(v View) ViewDTO {
	items := make([]LineItemDTO, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, LineItemDTO{
			LineID:        it.LineID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			Size:          it.Size,
			Flavor:        it.Flavor,
			CustomMessage: it.CustomMessage,
			Price:         types.FormatMoney(it.Price),
			LineTotal:     types.FormatMoney(it.LineTotal()),
		})
	}
	return ViewDTO{
		Session:     v.Session,
		Items:       items,
		TotalAmount: types.FormatMoney(v.TotalAmount),
		TotalItems:  v.TotalItems,
		LineCount:   v.LineCount,
	}
}
