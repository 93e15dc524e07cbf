package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
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

// categoryServiceFixtures holds all test dependencies for category service tests.
type categoryServiceFixtures struct {
	service      usecase.CategoryUsecase
	categoryRepo *memory.CategoryRepository
	publisher    *mockSvc.MockEventPublisher
}

func createTestCategoryService(t *testing.T) categoryServiceFixtures {
	clock := clockwork.NewFakeClockAt(testNow)
	categoryRepo := memory.NewCategoryRepository(clock)
	publisher := mockSvc.NewMockEventPublisher(t)

	service := NewCategoryService(categoryRepo, publisher, validator.New(), clock, testLogger())

	return categoryServiceFixtures{
		service:      service,
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

func TestCategoryService_Create_DefaultsColor(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()

	fx.publisher.EXPECT().
		PublishCatalogEvent(mock.Anything, eventOf(constants.EventCategoryCreated, "")).
		Return(nil)

	id, err := fx.service.Create(ctx, testActor("owner-1"), &usecase.CreateCategoryInput{Name: "Camisetas"})
	require.NoError(t, err)

	category, err := fx.categoryRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCategoryColor, category.Color)
	assert.False(t, category.IsDefault)
	assert.Equal(t, "owner-1", category.UserID)
}

func TestCategoryService_Create_ValidationFailed(t *testing.T) {
	fx := createTestCategoryService(t)

	tests := []struct {
		name  string
		input *usecase.CreateCategoryInput
	}{
		{"short name", &usecase.CreateCategoryInput{Name: "A"}},
		{"blank name", &usecase.CreateCategoryInput{Name: "   "}},
		{"bad color", &usecase.CreateCategoryInput{Name: "Camisetas", Color: "red"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.Create(context.Background(), testActor("owner-1"), tt.input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestCategoryService_DefaultCategoryProtected(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()

	fx.categoryRepo.Seed(&entity.Category{ID: "c-default", Name: "Geral", IsDefault: true, UserID: "owner-1"})

	actor := testActor("owner-1")
	name := "Renomeada"

	err := fx.service.Update(ctx, actor, "c-default", &usecase.UpdateCategoryInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrDefaultCategoryProtected)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	err = fx.service.Delete(ctx, actor, "c-default")
	assert.ErrorIs(t, err, domainerrors.ErrDefaultCategoryProtected)

	category, err := fx.categoryRepo.FindByID(ctx, "c-default")
	require.NoError(t, err)
	assert.Equal(t, "Geral", category.Name)
}

func TestCategoryService_OwnershipViolation(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()

	fx.categoryRepo.Seed(&entity.Category{ID: "c-1", Name: "Camisetas", UserID: "owner-1"})

	intruder := testActor("owner-2")
	name := "Renomeada"

	err := fx.service.Update(ctx, intruder, "c-1", &usecase.UpdateCategoryInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrOwnershipViolation)

	err = fx.service.Delete(ctx, intruder, "c-1")
	assert.ErrorIs(t, err, domainerrors.ErrOwnershipViolation)

	_, err = fx.categoryRepo.FindByID(ctx, "c-1")
	require.NoError(t, err)
}

func TestCategoryService_UpdateAndDelete(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()
	fx.publisher.EXPECT().PublishCatalogEvent(mock.Anything, mock.Anything).Return(nil)

	actor := testActor("owner-1")
	id, err := fx.service.Create(ctx, actor, &usecase.CreateCategoryInput{Name: "Camisetas", Color: "#112233"})
	require.NoError(t, err)

	color := "#AABBCC"
	require.NoError(t, fx.service.Update(ctx, actor, id, &usecase.UpdateCategoryInput{Color: &color}))

	category, err := fx.categoryRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "#AABBCC", category.Color)
	assert.Equal(t, "Camisetas", category.Name)

	err = fx.service.Update(ctx, actor, id, &usecase.UpdateCategoryInput{})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	require.NoError(t, fx.service.Delete(ctx, actor, id))

	err = fx.service.Delete(ctx, actor, id)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestCategoryService_ApplyTemplate_SkipsExistingNames(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()
	fx.publisher.EXPECT().PublishCatalogEvent(mock.Anything, mock.Anything).Return(nil)

	template, ok := entity.FindBusinessTemplate("fashion")
	require.True(t, ok)
	require.NotEmpty(t, template.Categories)

	// The owner already has the first template category, spelled differently
	first := template.Categories[0]
	fx.categoryRepo.Seed(&entity.Category{ID: "c-existing", Name: " " + first.Name + " ", UserID: "owner-1"})

	actor := testActor("owner-1")
	created, err := fx.service.ApplyTemplate(ctx, actor, "fashion")
	require.NoError(t, err)
	assert.Equal(t, len(template.Categories)-1, created)

	categories, err := fx.categoryRepo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, categories, len(template.Categories))
	for _, c := range categories {
		assert.False(t, c.IsDefault, c.Name)
	}

	// Applying again creates nothing
	created, err = fx.service.ApplyTemplate(ctx, actor, "fashion")
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestCategoryService_ApplyTemplate_UnknownTemplate(t *testing.T) {
	fx := createTestCategoryService(t)

	_, err := fx.service.ApplyTemplate(context.Background(), testActor("owner-1"), "spaceships")
	assert.ErrorIs(t, err, domainerrors.ErrUnknownTemplate)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCategoryService_ApplyTemplate_PartialFailure(t *testing.T) {
	ctx := context.Background()
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	service := NewCategoryService(categoryRepo, nil, validator.New(), clockwork.NewFakeClockAt(testNow), testLogger())

	template, ok := entity.FindBusinessTemplate("generic")
	require.True(t, ok)
	require.Greater(t, len(template.Categories), 1)
	failing := template.Categories[0].Name

	categoryRepo.EXPECT().ListByOwner(mock.Anything, "owner-1").Return(entity.Categories{}, nil).Once()
	categoryRepo.EXPECT().
		Create(mock.Anything, mock.MatchedBy(func(c *entity.Category) bool { return c.Name == failing })).
		Return("", errors.New("deadline exceeded")).
		Once()
	categoryRepo.EXPECT().
		Create(mock.Anything, mock.MatchedBy(func(c *entity.Category) bool { return c.Name != failing && c.UserID == "owner-1" })).
		Return("c-new", nil).
		Times(len(template.Categories) - 1)

	created, err := service.ApplyTemplate(ctx, testActor("owner-1"), "generic")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
	assert.Equal(t, len(template.Categories)-1, created)
}

func TestCategoryService_Templates(t *testing.T) {
	fx := createTestCategoryService(t)

	ids := make([]string, 0)
	for _, tpl := range fx.service.Templates() {
		ids = append(ids, tpl.ID)
	}

	assert.ElementsMatch(t, []string{"fashion", "beauty", "electronics", "home", "food", "sports", "books", "generic"}, ids)
}
