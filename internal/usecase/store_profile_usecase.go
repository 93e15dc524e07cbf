package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/realtime"
)

// StoreProfileUsecase defines the store-profile store of the acting identity.
type StoreProfileUsecase interface {
	// Subscribe follows the owner's settings document. A missing document is an empty snapshot.
	Subscribe(ctx context.Context, ownerID string) (realtime.Subscription[*entity.StoreSettings], error)

	// Get reads the settings once. A missing document is ErrStoreNotFound.
	Get(ctx context.Context, ownerID string) (*entity.StoreSettings, error)

	// Save creates the document on first use and patches the supplied fields afterwards.
	Save(ctx context.Context, actor *entity.Identity, input *SaveStoreSettingsInput) (*entity.StoreSettings, error)

	// StoreLink returns the public storefront URL of the owner.
	StoreLink(ownerID string) string

	// StoreLinkQR renders the public storefront URL as a PNG QR code.
	StoreLinkQR(ownerID string) ([]byte, error)
}

// --- Input DTOs ---

// SaveStoreSettingsInput lists the store-profile fields. On first save every required field
// must be present; later saves change only the fields supplied.
type SaveStoreSettingsInput struct {
	Name        *string            `json:"name,omitempty" validate:"omitempty,notblank,min=2"`
	Description *string            `json:"description,omitempty" validate:"omitempty,notblank,min=5"`
	Phone       *string            `json:"phone,omitempty" validate:"omitempty,notblank,min=10"`
	Email       *string            `json:"email,omitempty" validate:"omitempty,email"`
	Address     *string            `json:"address,omitempty" validate:"omitempty,notblank,min=10"`
	OpeningTime *string            `json:"openingTime,omitempty" validate:"omitempty,clock"`
	ClosingTime *string            `json:"closingTime,omitempty" validate:"omitempty,clock"`
	WorkingDays *[]string          `json:"workingDays,omitempty" validate:"omitempty,min=1,dive,notblank"`
	Logo        *entity.StoreImage `json:"logo,omitempty"`
	BannerImage *entity.StoreImage `json:"bannerImage,omitempty"`
}

// Patch converts the input to a document patch.
func (in *SaveStoreSettingsInput) Patch() entity.StoreSettingsPatch {
	return entity.StoreSettingsPatch{
		Name:        in.Name,
		Description: in.Description,
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
		OpeningTime: in.OpeningTime,
		ClosingTime: in.ClosingTime,
		WorkingDays: in.WorkingDays,
		Logo:        in.Logo,
		BannerImage: in.BannerImage,
	}
}

// NewStoreSettingsInput is the complete form required to create the settings document.
type NewStoreSettingsInput struct {
	Name        string   `json:"name" validate:"notblank,min=2"`
	Description string   `json:"description" validate:"notblank,min=5"`
	Phone       string   `json:"phone" validate:"notblank,min=10"`
	Email       string   `json:"email" validate:"required,email"`
	Address     string   `json:"address" validate:"notblank,min=10"`
	OpeningTime string   `json:"openingTime" validate:"required,clock"`
	ClosingTime string   `json:"closingTime" validate:"required,clock"`
	WorkingDays []string `json:"workingDays" validate:"required,min=1,dive,notblank"`
}

// Complete returns the full form view of the input, with unset fields left zero.
func (in *SaveStoreSettingsInput) Complete() *NewStoreSettingsInput {
	form := &NewStoreSettingsInput{}
	if in.Name != nil {
		form.Name = *in.Name
	}
	if in.Description != nil {
		form.Description = *in.Description
	}
	if in.Phone != nil {
		form.Phone = *in.Phone
	}
	if in.Email != nil {
		form.Email = *in.Email
	}
	if in.Address != nil {
		form.Address = *in.Address
	}
	if in.OpeningTime != nil {
		form.OpeningTime = *in.OpeningTime
	}
	if in.ClosingTime != nil {
		form.ClosingTime = *in.ClosingTime
	}
	if in.WorkingDays != nil {
		form.WorkingDays = *in.WorkingDays
	}

	return form
}
