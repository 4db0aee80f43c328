package orders

import (
	"time"

	"github.com/sweetslice/storefront/pkg/types"
)

type ItemDTO struct {
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

// OrderDTO is the confirmation payload; money is rendered with two decimals.
type OrderDTO struct {
	ID                  int64     `json:"id"`
	OrderCode           string    `json:"order_code"`
	CustomerName        string    `json:"customer_name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	DeliveryMethod      string    `json:"delivery_method"`
	DeliveryDate        string    `json:"delivery_date"`
	DeliveryTime        string    `json:"delivery_time"`
	Address             string    `json:"address,omitempty"`
	City                string    `json:"city,omitempty"`
	ZipCode             string    `json:"zip_code,omitempty"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	Items               []ItemDTO `json:"items"`
	Subtotal            string    `json:"subtotal"`
	DeliveryFee         string    `json:"delivery_fee"`
	TotalAmount         string    `json:"total_amount"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

func NewOrderDTO(o Order) OrderDTO {
	items := make([]ItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemDTO{
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
	return OrderDTO{
		ID:                  o.ID,
		OrderCode:           o.OrderCode,
		CustomerName:        o.CustomerName,
		Email:               o.Email,
		Phone:               o.Phone,
		DeliveryMethod:      o.DeliveryMethod.String(),
		DeliveryDate:        o.DeliveryDate,
		DeliveryTime:        o.DeliveryTime,
		Address:             o.Address,
		City:                o.City,
		ZipCode:             o.ZipCode,
		SpecialInstructions: o.SpecialInstructions,
		Items:               items,
		Subtotal:            types.FormatMoney(o.Subtotal),
		DeliveryFee:         types.FormatMoney(o.DeliveryFee),
		TotalAmount:         types.FormatMoney(o.TotalAmount),
		Status:              o.Status.String(),
		CreatedAt:           o.CreatedAt,
	}
}

func NewOrderDTOs(in []Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(in))
	for _, o := range in {
		out = append(out, NewOrderDTO(o))
	}
	return out
}
