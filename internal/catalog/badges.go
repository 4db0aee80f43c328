package catalog

import "github.com/sweetslice/storefront/pkg/enums"

// Badge is a labelled marker rendered on a product card.
type Badge struct {
	Label   string             `json:"label"`
	Variant enums.BadgeVariant `json:"variant"`
	Class   string             `json:"class"`
}

func newBadge(label string, variant enums.BadgeVariant) Badge {
	return Badge{Label: label, Variant: variant, Class: variant.Class()}
}

// BadgesFor derives a product's badges: customizable, then category, then each dietary tag.
func BadgesFor(p Product) []Badge {
	badges := make([]Badge, 0, 2+len(p.DietaryTags))
	if p.Customizable {
		badges = append(badges, newBadge("Customizable", enums.BadgeVariantDefault))
	}
	badges = append(badges, newBadge(p.Category.String(), enums.BadgeVariantSecondary))
	for _, tag := range p.DietaryTags {
		badges = append(badges, newBadge(tag, enums.BadgeVariantOutline))
	}
	return badges
}
