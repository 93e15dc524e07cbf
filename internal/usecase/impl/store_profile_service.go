package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"storefront/config"
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
	"go.uber.org/fx"
)

// storeProfileService implements the StoreProfileUsecase interface.
type storeProfileService struct {
	settingsRepo  repository.StoreSettingsRepository
	qrCodeService service.QRCodeService
	validator     *validator.Validator
	events        eventNotifier
	clock         clockwork.Clock
	publicBaseURL string
	logger        *slog.Logger
}

// StoreProfileServiceParams holds dependencies for StoreProfileService, injected by Fx.
type StoreProfileServiceParams struct {
	fx.In

	SettingsRepo  repository.StoreSettingsRepository
	QRCodeService service.QRCodeService
	Publisher     service.EventPublisher
	Validator     *validator.Validator
	Clock         clockwork.Clock
	Config        *config.Config
	Logger        *slog.Logger
}

// NewStoreProfileService is the constructor for storeProfileService.
func NewStoreProfileService(params StoreProfileServiceParams) usecase.StoreProfileUsecase {
	publicBaseURL := ""
	if params.Config != nil && params.Config.Storefront != nil {
		publicBaseURL = params.Config.Storefront.PublicBaseURL
	}

	return &storeProfileService{
		settingsRepo:  params.SettingsRepo,
		qrCodeService: params.QRCodeService,
		validator:     params.Validator,
		events:        eventNotifier{publisher: params.Publisher, clock: params.Clock},
		clock:         params.Clock,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *storeProfileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Subscribe follows the owner's settings document.
func (srv *storeProfileService) Subscribe(ctx context.Context, ownerID string) (realtime.Subscription[*entity.StoreSettings], error) {
	if ownerID == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "subscribe store settings")
	}

	srv.log(ctx).Debug("Subscribing to store settings", slog.String("owner_id", ownerID))

	sub, err := srv.settingsRepo.Watch(ctx, ownerID)
	if err != nil {
		return nil, upstream(err, "failed to subscribe store settings")
	}

	return sub, nil
}

// Get reads the owner's settings once.
func (srv *storeProfileService) Get(ctx context.Context, ownerID string) (*entity.StoreSettings, error) {
	settings, err := srv.settingsRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreSettingsNotFound) {
			return nil, errors.Wrap(domainerrors.ErrStoreNotFound, "store settings not found")
		}

		return nil, upstream(err, "failed to find store settings")
	}

	return settings, nil
}

// Save upserts the actor's settings document.
func (srv *storeProfileService) Save(ctx context.Context, actor *entity.Identity, input *usecase.SaveStoreSettingsInput) (*entity.StoreSettings, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := srv.validator.Validate(input); err != nil {
		return nil, errors.Wrap(err, "invalid store settings")
	}

	srv.log(ctx).Info("Saving store settings", slog.String("owner_id", actor.ID))

	// 1. Read the current document, if any
	existing, err := srv.settingsRepo.FindByOwner(ctx, actor.ID)
	switch {
	case errors.Is(err, repository.ErrStoreSettingsNotFound):
		return srv.create(ctx, actor, input)
	case err != nil:
		return nil, upstream(err, "failed to find store settings")
	}

	// 2. Patch only the supplied fields
	patch := input.Patch()
	if patch.IsEmpty() {
		return existing, nil
	}
	if err := srv.settingsRepo.Update(ctx, actor.ID, patch); err != nil {
		return nil, upstream(err, "failed to update store settings")
	}
	existing.Apply(patch, srv.clock.Now())

	srv.events.notify(ctx, srv.log(ctx), constants.EventStoreSaved, actor.ID, actor.ID)

	return existing, nil
}

// create writes the first settings document, which needs the complete form.
func (srv *storeProfileService) create(ctx context.Context, actor *entity.Identity, input *usecase.SaveStoreSettingsInput) (*entity.StoreSettings, error) {
	form := input.Complete()
	if err := srv.validator.Validate(form); err != nil {
		return nil, errors.Wrap(err, "incomplete store settings")
	}

	now := srv.clock.Now()
	settings := &entity.StoreSettings{
		ID:          actor.ID,
		UserID:      actor.ID,
		Name:        form.Name,
		Description: form.Description,
		Phone:       form.Phone,
		Email:       form.Email,
		Address:     form.Address,
		OpeningTime: form.OpeningTime,
		ClosingTime: form.ClosingTime,
		WorkingDays: form.WorkingDays,
		Logo:        input.Logo,
		BannerImage: input.BannerImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := srv.settingsRepo.Create(ctx, settings)
	switch {
	case errors.Is(err, repository.ErrStoreSettingsExist):
		// Another save created the document first; apply this one as a patch and return
		// the merged document, which may keep fields of the other save.
		if err := srv.settingsRepo.Update(ctx, actor.ID, input.Patch()); err != nil {
			return nil, upstream(err, "failed to update store settings")
		}
		if settings, err = srv.settingsRepo.FindByOwner(ctx, actor.ID); err != nil {
			return nil, upstream(err, "failed to read merged store settings")
		}
	case err != nil:
		return nil, upstream(err, "failed to create store settings")
	}

	srv.events.notify(ctx, srv.log(ctx), constants.EventStoreSaved, actor.ID, actor.ID)

	return settings, nil
}

// StoreLink renders {publicBaseURL}/store/{ownerID}.
func (srv *storeProfileService) StoreLink(ownerID string) string {
	return srv.publicBaseURL + "/store/" + url.PathEscape(ownerID)
}

// StoreLinkQR renders the store link as a PNG QR code.
func (srv *storeProfileService) StoreLinkQR(ownerID string) ([]byte, error) {
	png, err := srv.qrCodeService.GenerateStoreLinkQR(srv.StoreLink(ownerID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate store link QR code")
	}

	return png, nil
}
