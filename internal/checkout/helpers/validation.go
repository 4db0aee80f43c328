package helpers

import (
	"strings"
	"time"

	"github.com/sweetslice/storefront/pkg/enums"
	"github.com/sweetslice/storefront/pkg/validation"
)

const DateLayout = "2006-01-02"

// TimeSlots are the hourly pickup and delivery windows offered at checkout.
var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
	"5:00 PM", "6:00 PM", "7:00 PM",
}

// ContactInfo is checkout step 1.
type ContactInfo struct {
	CustomerName string `json:"customer_name" validate:"notblank"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"notblank"`
}

// DeliveryInfo is checkout step 2. Address fields only matter for delivery.
type DeliveryInfo struct {
	DeliveryMethod      string `json:"delivery_method" validate:"required,oneof=pickup delivery"`
	DeliveryDate        string `json:"delivery_date" validate:"required"`
	DeliveryTime        string `json:"delivery_time" validate:"required"`
	Address             string `json:"address"`
	City                string `json:"city"`
	ZipCode             string `json:"zip_code"`
	SpecialInstructions string `json:"special_instructions" validate:"max=500"`
}

// ValidateContact checks that name, email and phone are present and the email is well formed.
func ValidateContact(info ContactInfo) error {
	return validation.Struct(info)
}

// MinDeliveryDate is the first date that can be booked: the day after now.
func MinDeliveryDate(now time.Time) string {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location()).Format(DateLayout)
}

// ValidateDelivery checks date, time slot and, for delivery, the address. All failing fields
// are reported together.
func ValidateDelivery(info DeliveryInfo, now time.Time) error {
	fields := validation.Fields{}
	if err := fields.Merge(validation.Struct(info)); err != nil {
		return err
	}

	if _, ok := fields["delivery_date"]; !ok {
		date, err := time.ParseInLocation(DateLayout, info.DeliveryDate, now.Location())
		switch {
		case err != nil:
			fields.Add("delivery_date", "must be a date formatted YYYY-MM-DD")
		case date.Format(DateLayout) < MinDeliveryDate(now):
			fields.Add("delivery_date", "must be "+MinDeliveryDate(now)+" or later")
		}
	}
	if _, ok := fields["delivery_time"]; !ok && !isTimeSlot(info.DeliveryTime) {
		fields.Add("delivery_time", "must be one of the offered time slots")
	}

	if method, err := enums.ParseDeliveryMethod(info.DeliveryMethod); err == nil && method.ChargesFee() {
		required := map[string]string{
			"address":  info.Address,
			"city":     info.City,
			"zip_code": info.ZipCode,
		}
		for field, value := range required {
			if strings.TrimSpace(value) == "" {
				fields.Add(field, "is required for delivery")
			}
		}
	}
	return fields.Err()
}

func isTimeSlot(value string) bool {
	for _, slot := range TimeSlots {
		if slot == value {
			return true
		}
	}
	return false
}
