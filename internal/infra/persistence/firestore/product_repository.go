// Package firestore contains the concrete implementation of the persistence layer using Cloud Firestore.
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

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(client *firestore.Client, logger *slog.Logger) repository.ProductRepository {
	return &productRepository{
		client: client,
		logger: logger,
	}
}

func (repo *productRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionProducts)
}

// FindByID retrieves a product by its document id.
func (repo *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := repo.collection().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return decodeProduct(doc)
}

// Create adds a product document and returns the generated id.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) (string, error) {
	ref, _, err := repo.collection().Add(ctx, fromProductDomain(product))
	if err != nil {
		return "", errors.Wrap(err, "failed to create product")
	}

	return ref.ID, nil
}

// Update applies a partial patch.
func (repo *productRepository) Update(ctx context.Context, id string, patch entity.ProductPatch) error {
	if _, err := repo.collection().Doc(id).Update(ctx, productUpdates(patch)); err != nil {
		if isNotFound(err) {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to update product")
	}

	return nil
}

// Delete removes a product document.
func (repo *productRepository) Delete(ctx context.Context, id string) error {
	if _, err := repo.collection().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// Watch opens a live query over the owner's products, filtered by status at the query when set.
func (repo *productRepository) Watch(ctx context.Context, query repository.ProductQuery) (realtime.Subscription[*entity.Product], error) {
	if query.OwnerID == "" {
		return nil, errors.New("product query requires an owner")
	}

	q := repo.collection().Where("userId", "==", query.OwnerID)
	if query.Status != "" {
		q = q.Where("status", "==", string(query.Status))
	}

	return watchQuery(ctx, q, decodeProduct, repo.logger), nil
}

func decodeProduct(doc *firestore.DocumentSnapshot) (*entity.Product, error) {
	var productM model.ProductModel
	if err := doc.DataTo(&productM); err != nil {
		return nil, errors.Wrapf(err, "decode product %s", doc.Ref.ID)
	}
	productM.ID = doc.Ref.ID

	return toProductDomain(&productM), nil
}
