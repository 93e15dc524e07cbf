package impl

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/infra/persistence/memory"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storefrontServiceFixtures holds all test dependencies for storefront service tests.
type storefrontServiceFixtures struct {
	service      usecase.StorefrontUsecase
	productRepo  *memory.ProductRepository
	settingsRepo *memory.StoreSettingsRepository
}

func createTestStorefrontService(t *testing.T) storefrontServiceFixtures {
	clock := clockwork.NewFakeClockAt(testNow)
	productRepo := memory.NewProductRepository(clock)
	settingsRepo := memory.NewStoreSettingsRepository(clock)

	service := NewStorefrontService(StorefrontServiceParams{
		ProductRepo:  productRepo,
		SettingsRepo: settingsRepo,
		Validator:    validator.New(),
		Config: &config.Config{
			Storefront: &config.StorefrontConfig{MessagingHost: "wa.me", CountryCode: "55"},
		},
		Logger: testLogger(),
	})

	return storefrontServiceFixtures{
		service:      service,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
	}
}

func (fx storefrontServiceFixtures) seedStore(t *testing.T) {
	t.Helper()

	require.NoError(t, fx.settingsRepo.Create(context.Background(), &entity.StoreSettings{
		UserID: "owner-1",
		Name:   "Loja da Ana",
		Phone:  "(11) 98765-4321",
	}))

	seed := []*entity.Product{
		{ID: "p-1", Name: "Camiseta", Price: 49.9, Stock: 5, Status: entity.ProductStatusActive, UserID: "owner-1", CreatedAt: testNow},
		{ID: "p-2", Name: "Boné", Price: 25, Stock: 2, Status: entity.ProductStatusActive, UserID: "owner-1", CreatedAt: testNow.Add(time.Minute)},
		{ID: "p-3", Name: "Jaqueta", Price: 199, Stock: 1, Status: entity.ProductStatusInactive, UserID: "owner-1", CreatedAt: testNow},
		{ID: "p-4", Name: "Caneca", Price: 15, Stock: 9, Status: entity.ProductStatusActive, UserID: "owner-2", CreatedAt: testNow},
	}
	for _, p := range seed {
		fx.productRepo.Seed(p)
	}
}

func TestStorefrontService_Open_ActiveProductsOnly(t *testing.T) {
	fx := createTestStorefrontService(t)
	fx.seedStore(t)

	store, err := fx.service.Open(context.Background(), "owner-1")
	require.NoError(t, err)
	defer store.Close()

	require.True(t, store.Found())
	assert.Equal(t, "Loja da Ana", store.StoreSettings().Name)

	ids := make([]string, 0)
	for _, p := range store.Products.Items() {
		ids = append(ids, p.ID)
	}
	// Newest first
	assert.Equal(t, []string{"p-2", "p-1"}, ids)
}

func TestStorefrontService_Open_MissingSettings(t *testing.T) {
	fx := createTestStorefrontService(t)

	store, err := fx.service.Open(context.Background(), "nobody")
	require.NoError(t, err)
	defer store.Close()

	assert.False(t, store.Found())
	assert.Empty(t, store.Products.Items())
}

func TestStorefrontService_Open_ClosesQueries(t *testing.T) {
	fx := createTestStorefrontService(t)
	fx.seedStore(t)

	store, err := fx.service.Open(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, fx.productRepo.Watchers())
	assert.Equal(t, 1, fx.settingsRepo.Watchers())

	store.Close()
	assert.Eventually(t, func() bool {
		return fx.productRepo.Watchers() == 0 && fx.settingsRepo.Watchers() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestStorefrontService_Checkout(t *testing.T) {
	fx := createTestStorefrontService(t)
	fx.seedStore(t)

	out, err := fx.service.Checkout(context.Background(), "owner-1", &usecase.CheckoutInput{
		Items: []usecase.CheckoutLine{
			{ProductID: "p-1", Quantity: 2},
			{ProductID: "p-2", Quantity: 1},
			{ProductID: "p-1", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, out.TotalItems)
	assert.Equal(t, "174.70", out.TotalPrice)
	assert.Contains(t, out.Message, "🛍️ *Loja da Ana* - Novo Pedido")
	assert.Contains(t, out.Message, "• 3x Camiseta - R$ 49.90")
	assert.Contains(t, out.Message, "• 1x Boné - R$ 25.00")
	assert.Contains(t, out.Message, "*Total: R$ 174.70*")

	require.True(t, strings.HasPrefix(out.URL, "https://wa.me/5511987654321?text="))
	u, err := url.Parse(out.URL)
	require.NoError(t, err)
	assert.Equal(t, out.Message, u.Query().Get("text"))
}

func TestStorefrontService_Checkout_Errors(t *testing.T) {
	fx := createTestStorefrontService(t)
	fx.seedStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		ownerID string
		input   *usecase.CheckoutInput
		want    error
	}{
		{"empty cart", "owner-1", &usecase.CheckoutInput{}, domainerrors.ErrValidationFailed},
		{"bad quantity", "owner-1", &usecase.CheckoutInput{Items: []usecase.CheckoutLine{{ProductID: "p-1", Quantity: 0}}}, domainerrors.ErrValidationFailed},
		{"inactive product", "owner-1", &usecase.CheckoutInput{Items: []usecase.CheckoutLine{{ProductID: "p-3", Quantity: 1}}}, domainerrors.ErrProductNotFound},
		{"foreign product", "owner-1", &usecase.CheckoutInput{Items: []usecase.CheckoutLine{{ProductID: "p-4", Quantity: 1}}}, domainerrors.ErrProductNotFound},
		{"unknown store", "nobody", &usecase.CheckoutInput{Items: []usecase.CheckoutLine{{ProductID: "p-1", Quantity: 1}}}, domainerrors.ErrStoreNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.Checkout(ctx, tt.ownerID, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
