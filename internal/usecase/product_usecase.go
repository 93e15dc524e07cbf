package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/realtime"
)

// ProductUsecase defines the catalog store of the acting identity.
type ProductUsecase interface {
	// Subscribe opens a live query over the owner's products.
	Subscribe(ctx context.Context, ownerID string) (realtime.Subscription[*entity.Product], error)

	Create(ctx context.Context, actor *entity.Identity, input *CreateProductInput) (string, error)
	Update(ctx context.Context, actor *entity.Identity, id string, input *UpdateProductInput) error
	Delete(ctx context.Context, actor *entity.Identity, id string) error
	UpdateStock(ctx context.Context, actor *entity.Identity, id string, input *UpdateStockInput) error
	UpdateStatus(ctx context.Context, actor *entity.Identity, id string, input *UpdateStatusInput) error
}

// --- Input DTOs ---

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Name        string                `json:"name" validate:"notblank,min=2"`
	Description string                `json:"description" validate:"notblank,min=10"`
	Price       float64               `json:"price" validate:"gt=0"`
	Stock       int                   `json:"stock" validate:"gte=0"`
	Categories  []string              `json:"categories" validate:"required,min=1,dive,notblank"`
	Color       string                `json:"color"`
	Size        string                `json:"size"`
	Brand       string                `json:"brand"`
	Images      []entity.ProductImage `json:"images"`
	MainImage   *entity.ProductImage  `json:"mainImage"`
	Status      entity.ProductStatus  `json:"status" validate:"omitempty,oneof=active inactive out_of_stock"`
}

// Product builds the entity owned by ownerID. Status defaults to active.
func (in *CreateProductInput) Product(ownerID string) *entity.Product {
	status := in.Status
	if status == "" {
		status = entity.ProductStatusActive
	}

	return &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Categories:  in.Categories,
		Color:       in.Color,
		Size:        in.Size,
		Brand:       in.Brand,
		Images:      in.Images,
		MainImage:   in.MainImage,
		Status:      status,
		UserID:      ownerID,
	}
}

// UpdateProductInput lists the fields of a partial product update. Omitted fields are left untouched.
type UpdateProductInput struct {
	Name        *string                `json:"name,omitempty" validate:"omitempty,notblank,min=2"`
	Description *string                `json:"description,omitempty" validate:"omitempty,notblank,min=10"`
	Price       *float64               `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock       *int                   `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Categories  *[]string              `json:"categories,omitempty" validate:"omitempty,min=1,dive,notblank"`
	Color       *string                `json:"color,omitempty"`
	Size        *string                `json:"size,omitempty"`
	Brand       *string                `json:"brand,omitempty"`
	Images      *[]entity.ProductImage `json:"images,omitempty"`
	MainImage   *entity.ProductImage   `json:"mainImage,omitempty"`
	Status      *entity.ProductStatus  `json:"status,omitempty" validate:"omitempty,oneof=active inactive out_of_stock"`
}

// Patch converts the input to a document patch.
func (in *UpdateProductInput) Patch() entity.ProductPatch {
	return entity.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Categories:  in.Categories,
		Color:       in.Color,
		Size:        in.Size,
		Brand:       in.Brand,
		Images:      in.Images,
		MainImage:   in.MainImage,
		Status:      in.Status,
	}
}

// UpdateStockInput sets the stock of a product.
type UpdateStockInput struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

// UpdateStatusInput sets the status of a product.
type UpdateStatusInput struct {
	Status entity.ProductStatus `json:"status" validate:"required,oneof=active inactive out_of_stock"`
}
