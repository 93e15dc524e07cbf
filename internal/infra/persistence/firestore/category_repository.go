package firestore

import (
	"context"
	"log/slog"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"
	"storefront/internal/realtime"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// categoryRepository implements the repository.CategoryRepository interface.
type categoryRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(client *firestore.Client, logger *slog.Logger) repository.CategoryRepository {
	return &categoryRepository{
		client: client,
		logger: logger,
	}
}

func (repo *categoryRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionCategories)
}

// FindByID retrieves a category by its document id.
func (repo *categoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	doc, err := repo.collection().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by ID")
	}

	return decodeCategory(doc)
}

// ListByOwner reads the owner's categories once.
func (repo *categoryRepository) ListByOwner(ctx context.Context, ownerID string) (entity.Categories, error) {
	docs, err := repo.collection().Where("userId", "==", ownerID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories by owner")
	}

	categories := make(entity.Categories, 0, len(docs))
	for _, doc := range docs {
		category, err := decodeCategory(doc)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, nil
}

// Create adds a category document and returns the generated id.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) (string, error) {
	ref, _, err := repo.collection().Add(ctx, fromCategoryDomain(category))
	if err != nil {
		return "", errors.Wrap(err, "failed to create category")
	}

	return ref.ID, nil
}

// Update applies a partial patch.
func (repo *categoryRepository) Update(ctx context.Context, id string, patch entity.CategoryPatch) error {
	if _, err := repo.collection().Doc(id).Update(ctx, categoryUpdates(patch)); err != nil {
		if isNotFound(err) {
			return repository.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to update category")
	}

	return nil
}

// Delete removes a category document. Products filed under it keep the name.
func (repo *categoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := repo.collection().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return repository.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to delete category")
	}

	return nil
}

// Watch opens a live query over the owner's categories.
func (repo *categoryRepository) Watch(ctx context.Context, ownerID string) (realtime.Subscription[*entity.Category], error) {
	if ownerID == "" {
		return nil, errors.New("category query requires an owner")
	}

	return watchQuery(ctx, repo.collection().Where("userId", "==", ownerID), decodeCategory, repo.logger), nil
}

func decodeCategory(doc *firestore.DocumentSnapshot) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := doc.DataTo(&categoryM); err != nil {
		return nil, errors.Wrapf(err, "decode category %s", doc.Ref.ID)
	}
	categoryM.ID = doc.Ref.ID

	return toCategoryDomain(&categoryM), nil
}
