package impl

import (
	"context"
	"log/slog"
	"sync/atomic"

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
	"golang.org/x/sync/errgroup"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	validator    *validator.Validator
	events       eventNotifier
	logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	publisher service.EventPublisher,
	validator *validator.Validator,
	clock clockwork.Clock,
	logger *slog.Logger,
) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: categoryRepo,
		validator:    validator,
		events:       eventNotifier{publisher: publisher, clock: clock},
		logger:       logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Subscribe opens the owner-scoped live category query.
func (srv *categoryService) Subscribe(ctx context.Context, ownerID string) (realtime.Subscription[*entity.Category], error) {
	if ownerID == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "subscribe categories")
	}

	srv.log(ctx).Debug("Subscribing to categories", slog.String("owner_id", ownerID))

	sub, err := srv.categoryRepo.Watch(ctx, ownerID)
	if err != nil {
		return nil, upstream(err, "failed to subscribe categories")
	}

	return sub, nil
}

// Create stores a user-defined category. It is never a default category.
func (srv *categoryService) Create(ctx context.Context, actor *entity.Identity, input *usecase.CreateCategoryInput) (string, error) {
	if err := requireActor(actor); err != nil {
		return "", err
	}
	if err := srv.validator.Validate(input); err != nil {
		return "", errors.Wrap(err, "invalid category")
	}

	srv.log(ctx).Info("Creating category", slog.String("owner_id", actor.ID), slog.String("name", input.Name))

	id, err := srv.categoryRepo.Create(ctx, input.Category(actor.ID))
	if err != nil {
		return "", upstream(err, "failed to create category")
	}

	srv.events.notify(ctx, srv.log(ctx), constants.EventCategoryCreated, actor.ID, id)

	return id, nil
}

// Update applies the supplied fields to an owned, non-default category.
func (srv *categoryService) Update(ctx context.Context, actor *entity.Identity, id string, input *usecase.UpdateCategoryInput) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if err := srv.validator.Validate(input); err != nil {
		return errors.Wrap(err, "invalid category update")
	}

	patch := input.Patch()
	if patch.IsEmpty() {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("nenhum campo para atualizar"), "empty category update")
	}

	srv.log(ctx).Info("Updating category", slog.String("owner_id", actor.ID), slog.String("category_id", id))

	if _, err := srv.loadMutable(ctx, actor, id); err != nil {
		return err
	}

	if err := srv.categoryRepo.Update(ctx, id, patch); err != nil {
		return srv.mapWriteError(err, "failed to update category")
	}

	srv.events.notify(ctx, srv.log(ctx), constants.EventCategoryUpdated, actor.ID, id)

	return nil
}

// Delete removes an owned, non-default category.
func (srv *categoryService) Delete(ctx context.Context, actor *entity.Identity, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	srv.log(ctx).Info("Deleting category", slog.String("owner_id", actor.ID), slog.String("category_id", id))

	if _, err := srv.loadMutable(ctx, actor, id); err != nil {
		return err
	}

	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		return srv.mapWriteError(err, "failed to delete category")
	}

	srv.events.notify(ctx, srv.log(ctx), constants.EventCategoryDeleted, actor.ID, id)

	return nil
}

// Templates lists every business template.
func (srv *categoryService) Templates() []entity.BusinessTemplate {
	return entity.BusinessTemplates()
}

// ApplyTemplate creates the template's categories concurrently and waits for all of them.
// Names the owner already has are skipped, so retrying after a partial failure completes
// the template without duplicates.
func (srv *categoryService) ApplyTemplate(ctx context.Context, actor *entity.Identity, templateID string) (int, error) {
	if err := requireActor(actor); err != nil {
		return 0, err
	}

	template, ok := entity.FindBusinessTemplate(templateID)
	if !ok {
		return 0, errors.Wrapf(domainerrors.ErrUnknownTemplate, "template %q", templateID)
	}

	srv.log(ctx).Info("Applying business template",
		slog.String("owner_id", actor.ID),
		slog.String("template_id", template.ID),
	)

	// 1. Read the owner's current categories once
	existing, err := srv.categoryRepo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return 0, upstream(err, "failed to list categories")
	}

	// 2. Issue the missing creates as independent writes
	var (
		g       errgroup.Group
		created atomic.Int64
	)
	for _, seed := range template.Categories {
		if existing.HasName(seed.Name) {
			continue
		}

		g.Go(func() error {
			id, err := srv.categoryRepo.Create(ctx, &entity.Category{
				Name:        seed.Name,
				Description: seed.Description,
				Color:       seed.Color,
				IsDefault:   false,
				UserID:      actor.ID,
			})
			if err != nil {
				return errors.Wrapf(err, "create %q", seed.Name)
			}
			created.Add(1)
			srv.events.notify(ctx, srv.log(ctx), constants.EventCategoryCreated, actor.ID, id)

			return nil
		})
	}

	// 3. All must succeed; a partial failure is left in place
	if err := g.Wait(); err != nil {
		srv.log(ctx).Error("Business template partially applied",
			slog.String("template_id", template.ID),
			slog.Int64("created", created.Load()),
			slog.Any("error", err),
		)

		return int(created.Load()), upstream(err, "failed to apply template")
	}

	return int(created.Load()), nil
}

// loadMutable fetches the category and fails unless the actor owns it and it is not a default category.
func (srv *categoryService) loadMutable(ctx context.Context, actor *entity.Identity, id string) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.mapWriteError(err, "failed to find category")
	}

	if category.IsDefault {
		return nil, errors.Wrap(domainerrors.ErrDefaultCategoryProtected, "default category")
	}
	if category.UserID != actor.ID {
		srv.log(ctx).Warn("Category ownership check failed",
			slog.String("category_id", id),
			slog.String("actor_id", actor.ID),
		)

		return nil, errors.Wrap(domainerrors.ErrOwnershipViolation, "category belongs to another owner")
	}

	return category, nil
}

func (srv *categoryService) mapWriteError(err error, message string) error {
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return errors.Wrap(domainerrors.ErrCategoryNotFound, message)
	}

	return upstream(err, message)
}
