package inquiries

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindContact     Kind = "contact"
	KindCustomOrder Kind = "custom_order"
)

// ContactMessage is a general question sent from the contact page.
type ContactMessage struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"notblank,max=5000"`
}

// CustomRequest asks the bakery to quote a made-to-order cake.
type CustomRequest struct {
	CustomerName    string `json:"customer_name" validate:"notblank"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"notblank"`
	EventType       string `json:"event_type" validate:"required"`
	CakeType        string `json:"cake_type"`
	ServingSize     string `json:"serving_size"`
	DeliveryDate    string `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	Budget          string `json:"budget"`
	Description     string `json:"description" validate:"notblank,max=5000"`
	SpecialRequests string `json:"special_requests" validate:"max=2000"`
}

// Inquiry is a stored submission of either kind.
type Inquiry struct {
	ID          uuid.UUID       `json:"id"`
	Kind        Kind            `json:"kind"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Contact     *ContactMessage `json:"contact,omitempty"`
	CustomOrder *CustomRequest  `json:"custom_order,omitempty"`
}
