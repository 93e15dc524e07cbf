package firestore

import (
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToProductDomain_UpgradesLegacyRecord(t *testing.T) {
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	legacy := &model.ProductModel{
		ID:        "p1",
		Name:      "Camiseta",
		Price:     49.9,
		Stock:     3,
		Category:  "Roupas",
		Images:    []any{"https://img/1.png", "https://img/2.png"},
		Status:    "active",
		UserID:    "owner-1",
		CreatedAt: created,
	}

	p := toProductDomain(legacy)

	assert.Equal(t, []string{"Roupas"}, p.Categories)
	assert.Equal(t, []entity.ProductImage{{URL: "https://img/1.png"}, {URL: "https://img/2.png"}}, p.Images)
	assert.Equal(t, entity.ProductStatusActive, p.Status)
	assert.Equal(t, created, p.CreatedAt)
}

func TestToProductDomain_CanonicalRecord(t *testing.T) {
	canonical := &model.ProductModel{
		ID:         "p1",
		Categories: []string{"Roupas", "Promoções"},
		Category:   "Ignored",
		Images: []any{
			map[string]any{"url": "https://img/1.png", "path": "products/owner-1/1_a.png", "alt": "frente"},
		},
		MainImage: &model.ImageModel{URL: "https://img/1.png", Path: "products/owner-1/1_a.png"},
	}

	p := toProductDomain(canonical)

	assert.Equal(t, []string{"Roupas", "Promoções"}, p.Categories)
	require.Len(t, p.Images, 1)
	assert.Equal(t, "frente", p.Images[0].Alt)
	require.NotNil(t, p.MainImage)
	assert.Equal(t, "products/owner-1/1_a.png", p.MainImage.Path)
}

func TestToProductDomain_NoCategoryYieldsEmptySlice(t *testing.T) {
	p := toProductDomain(&model.ProductModel{ID: "p1"})

	assert.NotNil(t, p.Categories)
	assert.Empty(t, p.Categories)
	assert.NotNil(t, p.Images)
}

func TestFromProductDomain_WritesCanonicalShape(t *testing.T) {
	p := &entity.Product{
		Name:       "Boné",
		Categories: []string{"Acessórios"},
		Images:     []entity.ProductImage{{URL: "u", Path: "p"}},
		Status:     entity.ProductStatusInactive,
		UserID:     "owner-1",
	}

	m := fromProductDomain(p)

	assert.Empty(t, m.Category)
	assert.Equal(t, []any{model.ImageModel{URL: "u", Path: "p"}}, m.Images)
	assert.Equal(t, "inactive", m.Status)
	assert.True(t, m.CreatedAt.IsZero(), "server assigns timestamps")
}

func TestProductUpdates_OnlySuppliedFields(t *testing.T) {
	stock := 7
	categories := []string{"Roupas"}

	updates := productUpdates(entity.ProductPatch{Stock: &stock, Categories: &categories})

	assert.Equal(t, []firestore.Update{
		{Path: "stock", Value: 7},
		{Path: "categories", Value: []string{"Roupas"}},
		{Path: "category", Value: firestore.Delete},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}, updates)
}

func TestCategoryUpdates(t *testing.T) {
	name := "Novidades"

	updates := categoryUpdates(entity.CategoryPatch{Name: &name})

	assert.Equal(t, []firestore.Update{
		{Path: "name", Value: "Novidades"},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}, updates)
}

func TestStoreSettingsConversions(t *testing.T) {
	s := &entity.StoreSettings{
		ID:     "owner-1",
		UserID: "owner-1",
		Name:   "Loja",
		Logo:   &entity.StoreImage{URL: "u", Path: "store/owner-1/1_logo.png"},
	}

	m := fromStoreSettingsDomain(s)
	assert.Equal(t, []string{}, m.WorkingDays)
	require.NotNil(t, m.Logo)

	back := toStoreSettingsDomain(m)
	assert.Equal(t, s.Logo, back.Logo)
	assert.Nil(t, back.BannerImage)

	phone := "11999999999"
	updates := storeSettingsUpdates(entity.StoreSettingsPatch{Phone: &phone})
	assert.Equal(t, []firestore.Update{
		{Path: "phone", Value: "11999999999"},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}, updates)
}

func TestStatusErrors(t *testing.T) {
	assert.True(t, isNotFound(status.Error(codes.NotFound, "missing")))
	assert.False(t, isNotFound(status.Error(codes.Internal, "boom")))
	assert.True(t, isAlreadyExists(status.Error(codes.AlreadyExists, "dup")))
	assert.True(t, isStreamEnd(status.Error(codes.Canceled, "stop")))
	assert.False(t, isStreamEnd(status.Error(codes.Unavailable, "down")))
}
