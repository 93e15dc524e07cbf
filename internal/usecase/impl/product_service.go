package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/realtime"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	validator   *validator.Validator
	events      eventNotifier
	logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(
	productRepo repository.ProductRepository,
	publisher service.EventPublisher,
	validator *validator.Validator,
	clock clockwork.Clock,
	logger *slog.Logger,
) usecase.ProductUsecase {
	return &productService{
		productRepo: productRepo,
		validator:   validator,
		events:      eventNotifier{publisher: publisher, clock: clock},
		logger:      logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Subscribe opens the owner-scoped live product query.
func (srv *productService) Subscribe(ctx context.Context, ownerID string) (realtime.Subscription[*entity.Product], error) {
	if ownerID == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "subscribe products")
	}

	srv.log(ctx).Debug("Subscribing to products", slog.String("owner_id", ownerID))

	sub, err := srv.productRepo.Watch(ctx, repository.ProductQuery{OwnerID: ownerID})
	if err != nil {
		return nil, upstream(err, "failed to subscribe products")
	}

	return sub, nil
}

// Create validates the input and stores a product owned by the actor.
func (srv *productService) Create(ctx context.Context, actor *entity.Identity, input *usecase.CreateProductInput) (string, error) {
	if err := requireActor(actor); err != nil {
		return "", err
	}
	if err := srv.validator.Validate(input); err != nil {
		return "", errors.Wrap(err, "invalid product")
	}

	srv.log(ctx).Info("Creating product", slog.String("owner_id", actor.ID), slog.String("name", input.Name))

	id, err := srv.productRepo.Create(ctx, input.Product(actor.ID))
	if err != nil {
		return "", upstream(err, "failed to create product")
	}

	srv.events.notify(ctx, srv.log(ctx), constants.EventProductCreated, actor.ID, id)

	return id, nil
}

// Update applies the supplied fields after checking the actor owns the product.
func (srv *productService) Update(ctx context.Context, actor *entity.Identity, id string, input *usecase.UpdateProductInput) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if err := srv.validator.Validate(input); err != nil {
		return errors.Wrap(err, "invalid product update")
	}

	patch := input.Patch()
	if patch.IsEmpty() {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("nenhum campo para atualizar"), "empty product update")
	}

	return srv.update(ctx, actor, id, patch)
}

// UpdateStock replaces the stock of an owned product.
func (srv *productService) UpdateStock(ctx context.Context, actor *entity.Identity, id string, input *usecase.UpdateStockInput) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if err := srv.validator.Validate(input); err != nil {
		return errors.Wrap(err, "invalid stock")
	}

	return srv.update(ctx, actor, id, entity.ProductPatch{Stock: input.Stock})
}

// UpdateStatus replaces the status of an owned product.
func (srv *productService) UpdateStatus(ctx context.Context, actor *entity.Identity, id string, input *usecase.UpdateStatusInput) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if err := srv.validator.Validate(input); err != nil {
		return errors.Wrap(err, "invalid status")
	}

	status := input.Status

	return srv.update(ctx, actor, id, entity.ProductPatch{Status: &status})
}

func (srv *productService) update(ctx context.Context, actor *entity.Identity, id string, patch entity.ProductPatch) error {
	srv.log(ctx).Info("Updating product", slog.String("owner_id", actor.ID), slog.String("product_id", id))

	// 1. Load and check ownership
	if _, err := srv.loadOwned(ctx, actor, id); err != nil {
		return err
	}

	// 2. Write only the supplied fields
	if err := srv.productRepo.Update(ctx, id, patch); err != nil {
		return srv.mapWriteError(err, "failed to update product")
	}

	srv.events.notify(ctx, srv.log(ctx), constants.EventProductUpdated, actor.ID, id)

	return nil
}

// Delete removes an owned product.
func (srv *productService) Delete(ctx context.Context, actor *entity.Identity, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	srv.log(ctx).Info("Deleting product", slog.String("owner_id", actor.ID), slog.String("product_id", id))

	if _, err := srv.loadOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return srv.mapWriteError(err, "failed to delete product")
	}

	srv.events.notify(ctx, srv.log(ctx), constants.EventProductDeleted, actor.ID, id)

	return nil
}

// loadOwned fetches the product and fails unless the actor owns it.
func (srv *productService) loadOwned(ctx context.Context, actor *entity.Identity, id string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.mapWriteError(err, "failed to find product")
	}

	if product.UserID != actor.ID {
		srv.log(ctx).Warn("Product ownership check failed",
			slog.String("product_id", id),
			slog.String("actor_id", actor.ID),
		)

		return nil, errors.Wrap(domainerrors.ErrOwnershipViolation, "product belongs to another owner")
	}

	return product, nil
}

func (srv *productService) mapWriteError(err error, message string) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return errors.Wrap(domainerrors.ErrProductNotFound, message)
	}

	return upstream(err, message)
}
