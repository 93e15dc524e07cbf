package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/memory"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testActor(id string) *entity.Identity {
	return entity.NewIdentity(id, id+"@example.com", "")
}

// eventOf matches a published catalog event by type and entity.
func eventOf(eventType, entityID string) any {
	return mock.MatchedBy(func(e *service.CatalogEvent) bool {
		return e.Type == eventType && (entityID == "" || e.EntityID == entityID)
	})
}

// productServiceFixtures holds all test dependencies for product service tests.
type productServiceFixtures struct {
	service     usecase.ProductUsecase
	productRepo *memory.ProductRepository
	publisher   *mockSvc.MockEventPublisher
	clock       *clockwork.FakeClock
}

func createTestProductService(t *testing.T) productServiceFixtures {
	clock := clockwork.NewFakeClockAt(testNow)
	productRepo := memory.NewProductRepository(clock)
	publisher := mockSvc.NewMockEventPublisher(t)

	service := NewProductService(productRepo, publisher, validator.New(), clock, testLogger())

	return productServiceFixtures{
		service:     service,
		productRepo: productRepo,
		publisher:   publisher,
		clock:       clock,
	}
}

func validProductInput() *usecase.CreateProductInput {
	return &usecase.CreateProductInput{
		Name:        "Camiseta básica",
		Description: "Camiseta de algodão 100%",
		Price:       49.9,
		Stock:       10,
		Categories:  []string{"cat-1"},
	}
}

func TestProductService_Create_Success(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.publisher.EXPECT().
		PublishCatalogEvent(mock.Anything, eventOf(constants.EventProductCreated, "")).
		Return(nil).
		Once()

	id, err := fx.service.Create(ctx, testActor("owner-1"), validProductInput())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	product, err := fx.productRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", product.UserID)
	assert.Equal(t, entity.ProductStatusActive, product.Status)
	assert.Equal(t, testNow, product.CreatedAt)
}

func TestProductService_Create_ValidationFailed(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	input := validProductInput()
	input.Price = 0
	input.Categories = nil

	_, err := fx.service.Create(ctx, testActor("owner-1"), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProductService_Create_Unauthenticated(t *testing.T) {
	fx := createTestProductService(t)

	_, err := fx.service.Create(context.Background(), nil, validProductInput())
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestProductService_Create_PublishFailureDoesNotFailWrite(t *testing.T) {
	fx := createTestProductService(t)

	fx.publisher.EXPECT().
		PublishCatalogEvent(mock.Anything, mock.Anything).
		Return(errors.New("broker down"))

	id, err := fx.service.Create(context.Background(), testActor("owner-1"), validProductInput())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestProductService_Update_PartialPatch(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()
	fx.publisher.EXPECT().PublishCatalogEvent(mock.Anything, mock.Anything).Return(nil)

	actor := testActor("owner-1")
	id, err := fx.service.Create(ctx, actor, validProductInput())
	require.NoError(t, err)

	fx.clock.Advance(time.Hour)
	price := 59.9
	require.NoError(t, fx.service.Update(ctx, actor, id, &usecase.UpdateProductInput{Price: &price}))

	product, err := fx.productRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 59.9, product.Price, 1e-9)
	assert.Equal(t, "Camiseta básica", product.Name)
	assert.Equal(t, testNow, product.CreatedAt)
	assert.Equal(t, testNow.Add(time.Hour), product.UpdatedAt)
}

func TestProductService_Update_EmptyPatch(t *testing.T) {
	fx := createTestProductService(t)

	err := fx.service.Update(context.Background(), testActor("owner-1"), "p-1", &usecase.UpdateProductInput{})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProductService_Update_NotFound(t *testing.T) {
	fx := createTestProductService(t)

	name := "Outro nome"
	err := fx.service.Update(context.Background(), testActor("owner-1"), "missing", &usecase.UpdateProductInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_Mutations_OwnershipViolation(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.productRepo.Seed(&entity.Product{
		ID:        "p-1",
		Name:      "Caneca",
		Price:     20,
		Stock:     3,
		Status:    entity.ProductStatusActive,
		UserID:    "owner-1",
		CreatedAt: testNow,
		UpdatedAt: testNow,
	})

	intruder := testActor("owner-2")
	name := "Roubada"
	stock := 0

	tests := []struct {
		name string
		call func() error
	}{
		{"update", func() error {
			return fx.service.Update(ctx, intruder, "p-1", &usecase.UpdateProductInput{Name: &name})
		}},
		{"stock", func() error {
			return fx.service.UpdateStock(ctx, intruder, "p-1", &usecase.UpdateStockInput{Stock: &stock})
		}},
		{"status", func() error {
			return fx.service.UpdateStatus(ctx, intruder, "p-1", &usecase.UpdateStatusInput{Status: entity.ProductStatusInactive})
		}},
		{"delete", func() error {
			return fx.service.Delete(ctx, intruder, "p-1")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.ErrorIs(t, err, domainerrors.ErrOwnershipViolation)
			assert.ErrorIs(t, err, domainerrors.ErrForbidden)
		})
	}

	product, err := fx.productRepo.FindByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Caneca", product.Name)
	assert.Equal(t, 3, product.Stock)
	assert.Equal(t, entity.ProductStatusActive, product.Status)
}

func TestProductService_UpdateStockAndStatus(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()
	fx.publisher.EXPECT().PublishCatalogEvent(mock.Anything, mock.Anything).Return(nil)

	actor := testActor("owner-1")
	id, err := fx.service.Create(ctx, actor, validProductInput())
	require.NoError(t, err)

	stock := 0
	require.NoError(t, fx.service.UpdateStock(ctx, actor, id, &usecase.UpdateStockInput{Stock: &stock}))
	require.NoError(t, fx.service.UpdateStatus(ctx, actor, id, &usecase.UpdateStatusInput{Status: entity.ProductStatusOutOfStock}))

	product, err := fx.productRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)
	assert.Equal(t, entity.ProductStatusOutOfStock, product.Status)

	err = fx.service.UpdateStock(ctx, actor, id, &usecase.UpdateStockInput{})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	err = fx.service.UpdateStatus(ctx, actor, id, &usecase.UpdateStatusInput{Status: "archived"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProductService_Delete_Success(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	actor := testActor("owner-1")
	fx.publisher.EXPECT().PublishCatalogEvent(mock.Anything, eventOf(constants.EventProductCreated, "")).Return(nil)

	id, err := fx.service.Create(ctx, actor, validProductInput())
	require.NoError(t, err)

	fx.publisher.EXPECT().PublishCatalogEvent(mock.Anything, eventOf(constants.EventProductDeleted, id)).Return(nil).Once()

	require.NoError(t, fx.service.Delete(ctx, actor, id))

	_, err = fx.productRepo.FindByID(ctx, id)
	require.Error(t, err)
}

func TestProductService_Subscribe(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	_, err := fx.service.Subscribe(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	sub, err := fx.service.Subscribe(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, fx.productRepo.Watchers())

	sub.Cancel()
	assert.Eventually(t, func() bool { return fx.productRepo.Watchers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestProductService_RepositoryFailures(t *testing.T) {
	ctx := context.Background()
	actor := testActor("owner-1")
	owned := &entity.Product{ID: "p1", Name: "Vestido", UserID: "owner-1", Status: entity.ProductStatusActive}

	t.Run("create failure is upstream and publishes nothing", func(t *testing.T) {
		productRepo := mockRepo.NewMockProductRepository(t)
		publisher := mockSvc.NewMockEventPublisher(t)
		service := NewProductService(productRepo, publisher, validator.New(), clockwork.NewFakeClockAt(testNow), testLogger())

		productRepo.EXPECT().
			Create(mock.Anything, mock.MatchedBy(func(p *entity.Product) bool { return p.UserID == "owner-1" })).
			Return("", errors.New("deadline exceeded")).
			Once()

		_, err := service.Create(ctx, actor, validProductInput())
		assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
		publisher.AssertNotCalled(t, "PublishCatalogEvent", mock.Anything, mock.Anything)
	})

	t.Run("deleted between read and write is not found", func(t *testing.T) {
		productRepo := mockRepo.NewMockProductRepository(t)
		service := NewProductService(productRepo, nil, validator.New(), clockwork.NewFakeClockAt(testNow), testLogger())

		productRepo.EXPECT().FindByID(mock.Anything, "p1").Return(owned.Clone(), nil).Once()
		productRepo.EXPECT().Update(mock.Anything, "p1", mock.Anything).Return(repository.ErrProductNotFound).Once()

		stock := 3
		err := service.UpdateStock(ctx, actor, "p1", &usecase.UpdateStockInput{Stock: &stock})
		assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	})

	t.Run("foreign product is never written", func(t *testing.T) {
		productRepo := mockRepo.NewMockProductRepository(t)
		service := NewProductService(productRepo, nil, validator.New(), clockwork.NewFakeClockAt(testNow), testLogger())

		productRepo.EXPECT().FindByID(mock.Anything, "p1").Return(owned.Clone(), nil).Once()

		err := service.Delete(ctx, testActor("owner-2"), "p1")
		assert.ErrorIs(t, err, domainerrors.ErrOwnershipViolation)
		productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("watch failure is upstream", func(t *testing.T) {
		productRepo := mockRepo.NewMockProductRepository(t)
		service := NewProductService(productRepo, nil, validator.New(), clockwork.NewFakeClockAt(testNow), testLogger())

		productRepo.EXPECT().
			Watch(mock.Anything, repository.ProductQuery{OwnerID: "owner-1"}).
			Return(nil, errors.New("permission denied")).
			Once()

		_, err := service.Subscribe(ctx, "owner-1")
		assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
	})
}
