package entity

import (
	"slices"
	"time"
)

// StoreImage is an upload handle embedded into the store profile.
type StoreImage struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Alt  string `json:"alt,omitempty"`
}

// StoreSettings is the single store-profile document of an identity. Its ID equals UserID.
type StoreSettings struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	Address     string      `json:"address"`
	OpeningTime string      `json:"openingTime"`
	ClosingTime string      `json:"closingTime"`
	WorkingDays []string    `json:"workingDays"`
	Logo        *StoreImage `json:"logo,omitempty"`
	BannerImage *StoreImage `json:"bannerImage,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// StoreSettingsPatch lists the fields an upsert may change. Nil fields are left untouched.
type StoreSettingsPatch struct {
	Name        *string
	Description *string
	Phone       *string
	Email       *string
	Address     *string
	OpeningTime *string
	ClosingTime *string
	WorkingDays *[]string
	Logo        *StoreImage
	BannerImage *StoreImage
}

// IsEmpty reports whether the patch changes nothing.
func (p StoreSettingsPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Phone == nil && p.Email == nil &&
		p.Address == nil && p.OpeningTime == nil && p.ClosingTime == nil &&
		p.WorkingDays == nil && p.Logo == nil && p.BannerImage == nil
}

// Clone returns a deep copy of the settings.
func (s *StoreSettings) Clone() *StoreSettings {
	c := *s
	c.WorkingDays = slices.Clone(s.WorkingDays)
	if s.Logo != nil {
		logo := *s.Logo
		c.Logo = &logo
	}
	if s.BannerImage != nil {
		banner := *s.BannerImage
		c.BannerImage = &banner
	}

	return &c
}

// Apply copies the fields set in patch onto the settings and stamps UpdatedAt.
func (s *StoreSettings) Apply(patch StoreSettingsPatch, now time.Time) {
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.Phone != nil {
		s.Phone = *patch.Phone
	}
	if patch.Email != nil {
		s.Email = *patch.Email
	}
	if patch.Address != nil {
		s.Address = *patch.Address
	}
	if patch.OpeningTime != nil {
		s.OpeningTime = *patch.OpeningTime
	}
	if patch.ClosingTime != nil {
		s.ClosingTime = *patch.ClosingTime
	}
	if patch.WorkingDays != nil {
		s.WorkingDays = slices.Clone(*patch.WorkingDays)
	}
	if patch.Logo != nil {
		logo := *patch.Logo
		s.Logo = &logo
	}
	if patch.BannerImage != nil {
		banner := *patch.BannerImage
		s.BannerImage = &banner
	}
	s.UpdatedAt = now
}
