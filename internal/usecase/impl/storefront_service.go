package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/cart"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/realtime"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const storefrontReadyTimeout = 10 * time.Second

// storefrontService implements the StorefrontUsecase interface.
type storefrontService struct {
	productRepo  repository.ProductRepository
	settingsRepo repository.StoreSettingsRepository
	validator    *validator.Validator
	composer     cart.Composer
	readyTimeout time.Duration
	logger       *slog.Logger
}

// StorefrontServiceParams holds dependencies for StorefrontService, injected by Fx.
type StorefrontServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	SettingsRepo repository.StoreSettingsRepository
	Validator    *validator.Validator
	Config       *config.Config
	Logger       *slog.Logger
}

// NewStorefrontService is the constructor for storefrontService.
func NewStorefrontService(params StorefrontServiceParams) usecase.StorefrontUsecase {
	var host, countryCode string
	if params.Config != nil && params.Config.Storefront != nil {
		host = params.Config.Storefront.MessagingHost
		countryCode = params.Config.Storefront.CountryCode
	}

	return &storefrontService{
		productRepo:  params.ProductRepo,
		settingsRepo: params.SettingsRepo,
		validator:    params.Validator,
		composer:     cart.NewComposer(host, countryCode),
		readyTimeout: storefrontReadyTimeout,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *storefrontService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Open starts the store's active-product and settings views and waits for both first snapshots.
func (srv *storefrontService) Open(ctx context.Context, ownerID string) (*usecase.PublicStore, error) {
	if ownerID == "" {
		return nil, errors.Wrap(domainerrors.ErrStoreNotFound, "empty store id")
	}

	logger := srv.log(ctx).With(slog.String("store_id", ownerID))
	logger.Debug("Opening public store")

	store := &usecase.PublicStore{
		OwnerID: ownerID,
		Products: realtime.NewView[*entity.Product](
			realtime.SourceFunc[*entity.Product](func(ctx context.Context, key string) (realtime.Subscription[*entity.Product], error) {
				return srv.productRepo.Watch(ctx, repository.ProductQuery{OwnerID: key, Status: entity.ProductStatusActive})
			}),
			realtime.NewestFirst(func(p *entity.Product) time.Time { return p.CreatedAt }),
			logger,
		),
		Settings: realtime.NewView[*entity.StoreSettings](
			realtime.SourceFunc[*entity.StoreSettings](srv.settingsRepo.Watch),
			realtime.NewestFirst(func(s *entity.StoreSettings) time.Time { return s.CreatedAt }),
			logger,
		),
	}

	if err := srv.start(ctx, store); err != nil {
		store.Close()

		return nil, err
	}

	return store, nil
}

func (srv *storefrontService) start(ctx context.Context, store *usecase.PublicStore) error {
	if err := store.Products.Switch(ctx, store.OwnerID); err != nil {
		return upstream(err, "failed to open store products")
	}
	if err := store.Settings.Switch(ctx, store.OwnerID); err != nil {
		return upstream(err, "failed to open store settings")
	}

	readyCtx, cancel := context.WithTimeout(ctx, srv.readyTimeout)
	defer cancel()

	if err := store.Products.Ready(readyCtx); err != nil {
		return upstream(err, "store products not ready")
	}
	if err := store.Settings.Ready(readyCtx); err != nil {
		return upstream(err, "store settings not ready")
	}

	return nil
}

// Checkout prices the submitted lines with the store's current active catalog.
func (srv *storefrontService) Checkout(ctx context.Context, ownerID string, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	if input == nil || len(input.Items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrEmptyCart, "checkout")
	}
	if err := srv.validator.Validate(input); err != nil {
		return nil, errors.Wrap(err, "invalid checkout")
	}

	// 1. Read the store once
	store, err := srv.Open(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	settings := store.StoreSettings()
	if settings == nil {
		return nil, errors.Wrap(domainerrors.ErrStoreNotFound, "store has no settings")
	}

	// 2. Resolve every line against the active catalog
	catalog := entity.Products(store.Products.Items())
	c := cart.New()
	for _, line := range input.Items {
		product := catalog.ByID(line.ProductID)
		if product == nil {
			return nil, errors.Wrapf(domainerrors.ErrProductNotFound, "product %q not available", line.ProductID)
		}
		c.Add(product)
		c.UpdateQuantity(product.ID, quantityOf(c, product.ID)+line.Quantity-1)
	}

	if c.IsEmpty() {
		return nil, errors.Wrap(domainerrors.ErrEmptyCart, "checkout")
	}

	// 3. Compose the order message
	srv.log(ctx).Info("Checkout composed",
		slog.String("store_id", ownerID),
		slog.Int("items", c.TotalItems()),
	)

	return &usecase.CheckoutOutput{
		URL:        srv.composer.URL(c, settings),
		Message:    srv.composer.Message(c, settings),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice().StringFixed(2),
	}, nil
}

// quantityOf returns the current quantity of a cart line, or zero.
func quantityOf(c *cart.Cart, productID string) int {
	for _, item := range c.Items() {
		if item.Product.ID == productID {
			return item.Quantity
		}
	}

	return 0
}
