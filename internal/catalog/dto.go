package catalog

import "github.com/sweetslice/storefront/pkg/types"

// ProductDTO is the product payload returned to clients.
type ProductDTO struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	BasePrice        string   `json:"base_price"`
	Images           []string `json:"images"`
	AvailableSizes   []string `json:"available_sizes"`
	AvailableFlavors []string `json:"available_flavors"`
	Customizable     bool     `json:"customizable"`
	DietaryTags      []string `json:"dietary_tags"`
	Badges           []Badge  `json:"badges"`
}

func NewProductDTO(p Product) ProductDTO {
	tags := p.DietaryTags
	if tags == nil {
		tags = []string{}
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductDTO{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Category:         p.Category.String(),
		BasePrice:        types.FormatMoney(p.BasePrice),
		Images:           images,
		AvailableSizes:   p.AvailableSizes,
		AvailableFlavors: p.AvailableFlavors,
		Customizable:     p.Customizable,
		DietaryTags:      tags,
		Badges:           BadgesFor(p),
	}
}

func NewProductDTOs(products []Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductDTO(p))
	}
	return out
}
