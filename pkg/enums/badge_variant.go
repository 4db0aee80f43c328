package enums

import "fmt"

// BadgeVariant is the closed set of badge styles a product response may carry.
type BadgeVariant string

const (
	BadgeVariantDefault   BadgeVariant = "default"
	BadgeVariantSecondary BadgeVariant = "secondary"
	BadgeVariantSuccess   BadgeVariant = "success"
	BadgeVariantWarning   BadgeVariant = "warning"
	BadgeVariantError     BadgeVariant = "error"
	BadgeVariantOutline   BadgeVariant = "outline"
)

var validBadgeVariants = []BadgeVariant{
	BadgeVariantDefault,
	BadgeVariantSecondary,
	BadgeVariantSuccess,
	BadgeVariantWarning,
	BadgeVariantError,
	BadgeVariantOutline,
}

var badgeClasses = map[BadgeVariant]string{
	BadgeVariantDefault:   "bg-gradient-to-r from-primary to-accent text-white",
	BadgeVariantSecondary: "bg-secondary text-gray-800 border border-primary/20",
	BadgeVariantSuccess:   "bg-gradient-to-r from-success to-success/80 text-white",
	BadgeVariantWarning:   "bg-gradient-to-r from-warning to-warning/80 text-white",
	BadgeVariantError:     "bg-gradient-to-r from-error to-error/80 text-white",
	BadgeVariantOutline:   "border-2 border-primary text-primary bg-transparent",
}

// String implements fmt.Stringer.
func (b BadgeVariant) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BadgeVariant.
func (b BadgeVariant) IsValid() bool {
	for _, candidate := range validBadgeVariants {
		if candidate == b {
			return true
		}
	}
	return false
}

// Class returns the style classes for the variant. Unknown variants render as default.
func (b BadgeVariant) Class() string {
	if class, ok := badgeClasses[b]; ok {
		return class
	}
	return badgeClasses[BadgeVariantDefault]
}

// ParseBadgeVariant converts raw input into a BadgeVariant.
func ParseBadgeVariant(value string) (BadgeVariant, error) {
	for _, candidate := range validBadgeVariants {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid badge variant %q", value)
}
