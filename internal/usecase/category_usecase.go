package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/realtime"
)

// CategoryUsecase defines the category store of the acting identity.
type CategoryUsecase interface {
	// Subscribe opens a live query over the owner's categories.
	Subscribe(ctx context.Context, ownerID string) (realtime.Subscription[*entity.Category], error)

	Create(ctx context.Context, actor *entity.Identity, input *CreateCategoryInput) (string, error)
	Update(ctx context.Context, actor *entity.Identity, id string, input *UpdateCategoryInput) error
	Delete(ctx context.Context, actor *entity.Identity, id string) error

	// Templates lists the business types whose suggested categories can be applied.
	Templates() []entity.BusinessTemplate

	// ApplyTemplate creates the template's categories the owner does not have yet and
	// returns how many were created.
	ApplyTemplate(ctx context.Context, actor *entity.Identity, templateID string) (int, error)
}

// --- Input DTOs ---

// CreateCategoryInput defines the data required to create a category.
type CreateCategoryInput struct {
	Name        string `json:"name" validate:"notblank,min=2,max=50"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor6"`
}

// Category builds the entity owned by ownerID. User-created categories are never default.
func (in *CreateCategoryInput) Category(ownerID string) *entity.Category {
	color := in.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}

	return &entity.Category{
		Name:        in.Name,
		Description: in.Description,
		Color:       color,
		IsDefault:   false,
		UserID:      ownerID,
	}
}

// UpdateCategoryInput lists the fields of a partial category update.
type UpdateCategoryInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,notblank,min=2,max=50"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor6"`
}

// Patch converts the input to a document patch.
func (in *UpdateCategoryInput) Patch() entity.CategoryPatch {
	return entity.CategoryPatch{
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
	}
}
