package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetslice/storefront/pkg/enums"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/validation"
)

const DefaultFeaturedLimit = 6

// Service exposes read access to the catalog plus the admin mutations.
type Service interface {
	List(ctx context.Context, category *enums.ProductCategory) ([]Product, error)
	Find(ctx context.Context, id int64) (*Product, error)
	Search(ctx context.Context, text string, includeCategory bool) ([]Product, error)
	Featured(ctx context.Context, limit int) ([]Product, error)
	Browse(ctx context.Context, input BrowseInput) ([]Product, error)
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id int64) (*Product, error)
}

// BrowseInput drives the product listing: optional category, free text and ordering.
type BrowseInput struct {
	Category *enums.ProductCategory
	Query    string
	Sort     enums.ProductSort
}

type CreateProductInput struct {
	Name             string                `json:"name" validate:"notblank"`
	Description      string                `json:"description"`
	Category         enums.ProductCategory `json:"category" validate:"required,oneof=cakes cupcakes pastries"`
	BasePrice        decimal.Decimal       `json:"base_price"`
	Images           []string              `json:"images"`
	AvailableSizes   []string              `json:"available_sizes" validate:"min=1,dive,notblank"`
	AvailableFlavors []string              `json:"available_flavors" validate:"min=1,dive,notblank"`
	Customizable     bool                  `json:"customizable"`
	DietaryTags      []string              `json:"dietary_tags"`
}

// UpdateProductInput carries optional replacements; nil fields keep their value.
type UpdateProductInput struct {
	Name             *string                `json:"name"`
	Description      *string                `json:"description"`
	Category         *enums.ProductCategory `json:"category"`
	BasePrice        *decimal.Decimal       `json:"base_price"`
	Images           *[]string              `json:"images"`
	AvailableSizes   *[]string              `json:"available_sizes"`
	AvailableFlavors *[]string              `json:"available_flavors"`
	Customizable     *bool                  `json:"customizable"`
	DietaryTags      *[]string              `json:"dietary_tags"`
}

type Options struct {
	SimulatedLatency time.Duration
	FeaturedLimit    int
}

type service struct {
	repo          Repository
	latency       time.Duration
	featuredLimit int
}

func NewService(repo Repository, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if opts.SimulatedLatency < 0 {
		return nil, fmt.Errorf("simulated latency must not be negative")
	}
	limit := opts.FeaturedLimit
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return &service{repo: repo, latency: opts.SimulatedLatency, featuredLimit: limit}, nil
}

func (s *service) List(ctx context.Context, category *enums.ProductCategory) ([]Product, error) {
	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return products, nil
	}
	return filterCategory(products, *category), nil
}

func (s *service) Find(ctx context.Context, id int64) (*Product, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	product, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

// Search matches name and description case-insensitively, and category when asked.
// Empty text returns the whole catalog.
func (s *service) Search(ctx context.Context, text string, includeCategory bool) ([]Product, error) {
	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return filterText(products, text, includeCategory), nil
}

func (s *service) Featured(ctx context.Context, limit int) ([]Product, error) {
	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.featuredLimit
	}
	if limit < len(products) {
		products = products[:limit]
	}
	return products, nil
}

func (s *service) Browse(ctx context.Context, input BrowseInput) ([]Product, error) {
	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if input.Category != nil {
		products = filterCategory(products, *input.Category)
	}
	products = filterText(products, input.Query, false)
	sortProducts(products, input.Sort)
	return products, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	product := Product{
		Name:             strings.TrimSpace(input.Name),
		Description:      strings.TrimSpace(input.Description),
		Category:         input.Category,
		BasePrice:        input.BasePrice,
		Images:           input.Images,
		AvailableSizes:   input.AvailableSizes,
		AvailableFlavors: input.AvailableFlavors,
		Customizable:     input.Customizable,
		DietaryTags:      input.DietaryTags,
	}
	if err := checkProduct(product); err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductInput) (*Product, error) {
	current, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	applyUpdate(current, input)
	if err := checkProduct(*current); err != nil {
		return nil, err
	}
	updated, ok, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) (*Product, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	deleted, ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return deleted, nil
}

func (s *service) load(ctx context.Context) ([]Product, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return products, nil
}

// wait applies the configured artificial delay, returning early on cancellation.
func (s *service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func applyUpdate(p *Product, input UpdateProductInput) {
	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		p.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.BasePrice != nil {
		p.BasePrice = *input.BasePrice
	}
	if input.Images != nil {
		p.Images = append([]string(nil), (*input.Images)...)
	}
	if input.AvailableSizes != nil {
		p.AvailableSizes = append([]string(nil), (*input.AvailableSizes)...)
	}
	if input.AvailableFlavors != nil {
		p.AvailableFlavors = append([]string(nil), (*input.AvailableFlavors)...)
	}
	if input.Customizable != nil {
		p.Customizable = *input.Customizable
	}
	if input.DietaryTags != nil {
		p.DietaryTags = append([]string{}, (*input.DietaryTags)...)
	}
}

// checkProduct enforces the catalog invariants shared by seeding and admin writes.
func checkProduct(p Product) error {
	fields := validation.Fields{}
	if strings.TrimSpace(p.Name) == "" {
		fields.Add("name", "is required")
	}
	if !p.Category.IsValid() {
		fields.Add("category", "must be one of cakes cupcakes pastries")
	}
	if p.BasePrice.IsNegative() {
		fields.Add("base_price", "must not be negative")
	}
	if len(p.AvailableSizes) == 0 {
		fields.Add("available_sizes", "must list at least one size")
	}
	if len(p.AvailableFlavors) == 0 {
		fields.Add("available_flavors", "must list at least one flavor")
	}
	return fields.Err()
}

func filterCategory(products []Product, category enums.ProductCategory) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func filterText(products []Product, text string, includeCategory bool) []Product {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			(includeCategory && strings.Contains(strings.ToLower(p.Category.String()), needle)) {
			out = append(out, p)
		}
	}
	return out
}

func sortProducts(products []Product, order enums.ProductSort) {
	switch order {
	case enums.ProductSortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].BasePrice.LessThan(products[j].BasePrice)
		})
	case enums.ProductSortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].BasePrice.GreaterThan(products[j].BasePrice)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	}
}
