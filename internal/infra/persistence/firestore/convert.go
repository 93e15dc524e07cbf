package firestore

import (
	"storefront/internal/domain/entity"
	"storefront/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
)

func toProductDomain(m *model.ProductModel) *entity.Product {
	p := &entity.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		Categories:  m.Categories,
		Color:       m.Color,
		Size:        m.Size,
		Brand:       m.Brand,
		Status:      entity.ProductStatus(m.Status),
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.MainImage != nil {
		img := toImageDomain(*m.MainImage)
		p.MainImage = &img
	}

	var legacyURLs []string
	for _, raw := range m.Images {
		switch v := raw.(type) {
		case string:
			legacyURLs = append(legacyURLs, v)
		case map[string]any:
			p.Images = append(p.Images, entity.ProductImage{
				URL:  stringField(v, "url"),
				Path: stringField(v, "path"),
				Alt:  stringField(v, "alt"),
			})
		}
	}
	if p.Images == nil {
		p.Images = []entity.ProductImage{}
	}

	return entity.UpgradeLegacyProduct(p, entity.LegacyProductFields{
		Category:  m.Category,
		ImageURLs: legacyURLs,
	})
}

// fromProductDomain always writes the canonical shape; the legacy category field is never written.
func fromProductDomain(p *entity.Product) *model.ProductModel {
	m := &model.ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Categories:  p.Categories,
		Color:       p.Color,
		Size:        p.Size,
		Brand:       p.Brand,
		Images:      imagesToAny(p.Images),
		Status:      string(p.Status),
		UserID:      p.UserID,
	}
	if m.Categories == nil {
		m.Categories = []string{}
	}
	if p.MainImage != nil {
		img := fromImageDomain(*p.MainImage)
		m.MainImage = &img
	}

	return m
}

func productUpdates(patch entity.ProductPatch) []firestore.Update {
	var updates []firestore.Update
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *patch.Description})
	}
	if patch.Price != nil {
		updates = append(updates, firestore.Update{Path: "price", Value: *patch.Price})
	}
	if patch.Stock != nil {
		updates = append(updates, firestore.Update{Path: "stock", Value: *patch.Stock})
	}
	if patch.Categories != nil {
		updates = append(updates,
			firestore.Update{Path: "categories", Value: *patch.Categories},
			firestore.Update{Path: "category", Value: firestore.Delete},
		)
	}
	if patch.Color != nil {
		updates = append(updates, firestore.Update{Path: "color", Value: *patch.Color})
	}
	if patch.Size != nil {
		updates = append(updates, firestore.Update{Path: "size", Value: *patch.Size})
	}
	if patch.Brand != nil {
		updates = append(updates, firestore.Update{Path: "brand", Value: *patch.Brand})
	}
	if patch.Images != nil {
		updates = append(updates, firestore.Update{Path: "images", Value: imagesToAny(*patch.Images)})
	}
	if patch.MainImage != nil {
		updates = append(updates, firestore.Update{Path: "mainImage", Value: fromImageDomain(*patch.MainImage)})
	}
	if patch.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: string(*patch.Status)})
	}

	return append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
}

func toCategoryDomain(m *model.CategoryModel) *entity.Category {
	return &entity.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Color:       m.Color,
		IsDefault:   m.IsDefault,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromCategoryDomain(c *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		IsDefault:   c.IsDefault,
		UserID:      c.UserID,
	}
}

func categoryUpdates(patch entity.CategoryPatch) []firestore.Update {
	var updates []firestore.Update
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *patch.Description})
	}
	if patch.Color != nil {
		updates = append(updates, firestore.Update{Path: "color", Value: *patch.Color})
	}

	return append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
}

func toStoreSettingsDomain(m *model.StoreSettingsModel) *entity.StoreSettings {
	s := &entity.StoreSettings{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		OpeningTime: m.OpeningTime,
		ClosingTime: m.ClosingTime,
		WorkingDays: m.WorkingDays,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if s.WorkingDays == nil {
		s.WorkingDays = []string{}
	}
	if m.Logo != nil {
		logo := entity.StoreImage(*m.Logo)
		s.Logo = &logo
	}
	if m.BannerImage != nil {
		banner := entity.StoreImage(*m.BannerImage)
		s.BannerImage = &banner
	}

	return s
}

func fromStoreSettingsDomain(s *entity.StoreSettings) *model.StoreSettingsModel {
	m := &model.StoreSettingsModel{
		ID:          s.ID,
		UserID:      s.UserID,
		Name:        s.Name,
		Description: s.Description,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		OpeningTime: s.OpeningTime,
		ClosingTime: s.ClosingTime,
		WorkingDays: s.WorkingDays,
	}
	if m.WorkingDays == nil {
		m.WorkingDays = []string{}
	}
	if s.Logo != nil {
		logo := model.ImageModel(*s.Logo)
		m.Logo = &logo
	}
	if s.BannerImage != nil {
		banner := model.ImageModel(*s.BannerImage)
		m.BannerImage = &banner
	}

	return m
}

func storeSettingsUpdates(patch entity.StoreSettingsPatch) []firestore.Update {
	var updates []firestore.Update
	add := func(path string, value *string) {
		if value != nil {
			updates = append(updates, firestore.Update{Path: path, Value: *value})
		}
	}
	add("name", patch.Name)
	add("description", patch.Description)
	add("phone", patch.Phone)
	add("email", patch.Email)
	add("address", patch.Address)
	add("openingTime", patch.OpeningTime)
	add("closingTime", patch.ClosingTime)
	if patch.WorkingDays != nil {
		updates = append(updates, firestore.Update{Path: "workingDays", Value: *patch.WorkingDays})
	}
	if patch.Logo != nil {
		updates = append(updates, firestore.Update{Path: "logo", Value: model.ImageModel(*patch.Logo)})
	}
	if patch.BannerImage != nil {
		updates = append(updates, firestore.Update{Path: "bannerImage", Value: model.ImageModel(*patch.BannerImage)})
	}

	return append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
}

func toImageDomain(m model.ImageModel) entity.ProductImage {
	return entity.ProductImage{URL: m.URL, Path: m.Path, Alt: m.Alt}
}

func fromImageDomain(img entity.ProductImage) model.ImageModel {
	return model.ImageModel{URL: img.URL, Path: img.Path, Alt: img.Alt}
}

func imagesToAny(images []entity.ProductImage) []any {
	out := make([]any, 0, len(images))
	for _, img := range images {
		out = append(out, fromImageDomain(img))
	}

	return out
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)

	return s
}
