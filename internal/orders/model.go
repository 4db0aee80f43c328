package orders

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetslice/storefront/pkg/enums"
	"github.com/sweetslice/storefront/pkg/types"
)

// Item is a cart line frozen into an order.
type Item struct {
	LineID        string          `json:"line_id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	Size          string          `json:"size"`
	Flavor        string          `json:"flavor"`
	CustomMessage string          `json:"custom_message"`
	Price         decimal.Decimal `json:"price"`
}

func (i Item) LineTotal() decimal.Decimal {
	return types.LineTotal(i.Price, i.Quantity)
}

// Items is stored as a JSON text column.
type Items []Item

func (it Items) Value() (driver.Value, error) {
	if it == nil {
		it = Items{}
	}
	data, err := json.Marshal(it)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (it *Items) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*it = Items{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("orders: cannot scan %T into items", src)
	}
	return json.Unmarshal(data, it)
}

// Subtotal sums the snapshot lines, rounded to cents.
func (it Items) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range it {
		total = total.Add(item.LineTotal())
	}
	return types.RoundCurrency(total)
}

type Order struct {
	ID                  int64                `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OrderCode           string               `json:"order_code" gorm:"column:order_code"`
	CustomerName        string               `json:"customer_name"`
	Email               string               `json:"email"`
	Phone               string               `json:"phone"`
	DeliveryMethod      enums.DeliveryMethod `json:"delivery_method"`
	DeliveryDate        string               `json:"delivery_date"`
	DeliveryTime        string               `json:"delivery_time"`
	Address             string               `json:"address"`
	City                string               `json:"city"`
	ZipCode             string               `json:"zip_code"`
	SpecialInstructions string               `json:"special_instructions"`
	Items               Items                `json:"items" gorm:"type:text"`
	Subtotal            decimal.Decimal      `json:"subtotal" gorm:"type:numeric(12,2)"`
	DeliveryFee         decimal.Decimal      `json:"delivery_fee" gorm:"type:numeric(12,2)"`
	TotalAmount         decimal.Decimal      `json:"total_amount" gorm:"type:numeric(12,2)"`
	Status              enums.OrderStatus    `json:"status"`
	CreatedAt           time.Time            `json:"created_at"`
}

func (Order) TableName() string { return "orders" }

func (o Order) clone() Order {
	out := o
	out.Items = append(Items(nil), o.Items...)
	return out
}

// Draft is everything a caller supplies when placing an order. Callers validate it.
type Draft struct {
	CustomerName        string
	Email               string
	Phone               string
	DeliveryMethod      enums.DeliveryMethod
	DeliveryDate        string
	DeliveryTime        string
	Address             string
	City                string
	ZipCode             string
	SpecialInstructions string
	Items               Items
}

// Code formats the public order number, e.g. ORD-2026-007.
func Code(year int, id int64) string {
	return fmt.Sprintf("ORD-%d-%03d", year, id)
}
