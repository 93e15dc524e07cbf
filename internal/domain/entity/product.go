package entity

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is the stock level at or below which a product counts as low stock.
const DefaultLowStockThreshold = 5

// ProductStatus is the publication state of a product.
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusInactive   ProductStatus = "inactive"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// IsValid checks if the status is one of the known values.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusOutOfStock:
		return true
	default:
		return false
	}
}

// ProductImage is an upload handle embedded into a product.
type ProductImage struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Alt  string `json:"alt,omitempty"`
}

// Product is a catalog item owned by exactly one identity.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Stock       int            `json:"stock"`
	Categories  []string       `json:"categories"`          // Category names. Never empty for a valid product.
	Color       string         `json:"color"`
	Size        string         `json:"size,omitempty"`
	Brand       string         `json:"brand,omitempty"`
	Images      []ProductImage `json:"images"`
	MainImage   *ProductImage  `json:"mainImage,omitempty"`
	Status      ProductStatus  `json:"status"`
	UserID      string         `json:"userId"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// HasCategory reports whether the product is filed under the given category.
func (p *Product) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}

	return false
}

// ProductPatch lists the fields an update may change. Nil fields are left untouched.
// The owner is deliberately absent: it is never patchable.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	Categories  *[]string
	Color       *string
	Size        *string
	Brand       *string
	Images      *[]ProductImage
	MainImage   *ProductImage
	Status      *ProductStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Stock == nil &&
		p.Categories == nil && p.Color == nil && p.Size == nil && p.Brand == nil &&
		p.Images == nil && p.MainImage == nil && p.Status == nil
}

// LegacyProductFields carries the fields of the earlier product schema, where a product
// had a single category and its images were bare URLs.
type LegacyProductFields struct {
	Category  string
	ImageURLs []string
}

// UpgradeLegacyProduct maps a record read in the earlier schema onto the canonical model.
// Canonical fields win when both shapes are present.
func UpgradeLegacyProduct(p *Product, legacy LegacyProductFields) *Product {
	if len(p.Categories) == 0 && legacy.Category != "" {
		p.Categories = []string{legacy.Category}
	}

	if len(legacy.ImageURLs) > 0 {
		images := make([]ProductImage, 0, len(legacy.ImageURLs)+len(p.Images))
		for _, url := range legacy.ImageURLs {
			if url == "" {
				continue
			}
			images = append(images, ProductImage{URL: url})
		}
		p.Images = append(images, p.Images...)
	}

	if p.Categories == nil {
		p.Categories = []string{}
	}

	return p
}

// ProductFilters narrows a product snapshot. Zero values disable a filter.
type ProductFilters struct {
	Category string
	Status   ProductStatus
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
	Search   string
}

// StatusCount is the number of products per status in a snapshot.
type StatusCount struct {
	Active     int `json:"active"`
	Inactive   int `json:"inactive"`
	OutOfStock int `json:"out_of_stock"`
	Total      int `json:"total"`
}

// Products is a snapshot of products with derived views. None of them touch the network.
type Products []*Product

// Filter returns the products matching every set filter.
func (ps Products) Filter(f ProductFilters) Products {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make(Products, 0, len(ps))
	for _, p := range ps {
		if f.Category != "" && !p.HasCategory(f.Category) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.InStock && p.Stock <= 0 {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}

	return out
}

// ByID returns the product with the given id, or nil.
func (ps Products) ByID(id string) *Product {
	for _, p := range ps {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// ByCategory returns the products filed under category.
func (ps Products) ByCategory(category string) Products {
	return ps.Filter(ProductFilters{Category: category})
}

// Active returns the published products.
func (ps Products) Active() Products {
	return ps.Filter(ProductFilters{Status: ProductStatusActive})
}

// LowStock returns the products whose stock is at or below threshold.
func (ps Products) LowStock(threshold int) Products {
	out := make(Products, 0)
	for _, p := range ps {
		if p.Stock <= threshold {
			out = append(out, p)
		}
	}

	return out
}

// CountByStatus tallies the snapshot by status.
func (ps Products) CountByStatus() StatusCount {
	count := StatusCount{Total: len(ps)}
	for _, p := range ps {
		switch p.Status {
		case ProductStatusActive:
			count.Active++
		case ProductStatusInactive:
			count.Inactive++
		case ProductStatusOutOfStock:
			count.OutOfStock++
		}
	}

	return count
}

// TotalStockValue sums price times stock across the snapshot.
func (ps Products) TotalStockValue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range ps {
		total = total.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Stock))))
	}

	return total
}

// ProductStats bundles the aggregates served to the dashboard.
type ProductStats struct {
	Counts          StatusCount     `json:"counts"`
	TotalStockValue decimal.Decimal `json:"totalStockValue"`
	LowStock        int             `json:"lowStock"`
	LowStockLimit   int             `json:"lowStockThreshold"`
}

// Stats computes the snapshot aggregates with the given low-stock threshold.
func (ps Products) Stats(lowStockThreshold int) ProductStats {
	return ProductStats{
		Counts:          ps.CountByStatus(),
		TotalStockValue: ps.TotalStockValue(),
		LowStock:        len(ps.LowStock(lowStockThreshold)),
		LowStockLimit:   lowStockThreshold,
	}
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	c := *p
	c.Categories = slices.Clone(p.Categories)
	c.Images = slices.Clone(p.Images)
	if p.MainImage != nil {
		img := *p.MainImage
		c.MainImage = &img
	}

	return &c
}

// Apply copies the fields set in patch onto the product and stamps UpdatedAt.
func (p *Product) Apply(patch ProductPatch, now time.Time) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Categories != nil {
		p.Categories = slices.Clone(*patch.Categories)
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Size != nil {
		p.Size = *patch.Size
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Images != nil {
		p.Images = slices.Clone(*patch.Images)
	}
	if patch.MainImage != nil {
		img := *patch.MainImage
		p.MainImage = &img
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	p.UpdatedAt = now
}
