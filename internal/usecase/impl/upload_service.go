package impl

import (
	"context"
	"encoding/base64"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultUploadTimeout = 5 * time.Second
	defaultUploadMaxSize = 5 * 1024 * 1024
)

var defaultAllowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

// uploadService implements the UploadUsecase interface.
type uploadService struct {
	objectStore  service.ObjectStore
	clock        clockwork.Clock
	timeout      time.Duration
	maxSize      int64
	allowedTypes []string
	logger       *slog.Logger
}

// UploadServiceParams holds dependencies for UploadService, injected by Fx.
type UploadServiceParams struct {
	fx.In

	ObjectStore service.ObjectStore
	Clock       clockwork.Clock
	Config      *config.Config
	Logger      *slog.Logger
}

// NewUploadService is the constructor for uploadService.
func NewUploadService(params UploadServiceParams) usecase.UploadUsecase {
	srv := &uploadService{
		objectStore:  params.ObjectStore,
		clock:        params.Clock,
		timeout:      defaultUploadTimeout,
		maxSize:      defaultUploadMaxSize,
		allowedTypes: defaultAllowedTypes,
		logger:       params.Logger,
	}

	if params.Config != nil && params.Config.Upload != nil {
		cfg := params.Config.Upload
		if cfg.Timeout > 0 {
			srv.timeout = cfg.Timeout
		}
		if cfg.MaxSizeBytes > 0 {
			srv.maxSize = cfg.MaxSizeBytes
		}
		if len(cfg.AllowedTypes) > 0 {
			srv.allowedTypes = cfg.AllowedTypes
		}
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *uploadService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UploadImage stores file under {folder}/{ownerId}/{unixMillis}_{name}. When the object store
// fails or does not answer within the timeout the image is returned as a data URI instead.
func (srv *uploadService) UploadImage(ctx context.Context, actor *entity.Identity, file entity.UploadFile, folder string) (*entity.UploadResult, error) {
	// 1. Validate before any network activity
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if folder == "" {
		folder = entity.UploadFolderProducts
	}
	if err := srv.validate(file, folder); err != nil {
		return nil, err
	}

	key := srv.objectKey(folder, actor.ID, file.Name)

	srv.log(ctx).Info("Uploading image",
		slog.String("key", key),
		slog.String("content_type", file.ContentType),
		slog.String("size", util.FormatBytes(file.Size())),
	)

	// 2. Race the remote put against the timeout
	url, err := util.FirstOf(ctx, srv.clock, srv.timeout, func(ctx context.Context) (string, error) {
		return srv.objectStore.Put(ctx, key, file.ContentType, file.Data)
	})
	if err == nil {
		return &entity.UploadResult{URL: url, Path: key}, nil
	}

	// 3. Fall back to a self-contained encoding
	srv.log(ctx).Warn("Image upload failed, falling back to local encoding",
		slog.String("key", key),
		slog.Any("error", err),
	)

	return &entity.UploadResult{
		URL:  dataURI(file.ContentType, file.Data),
		Path: entity.FallbackPathPrefix + key,
	}, nil
}

// DeleteImage removes an uploaded image. Fallback handles succeed without a remote call.
func (srv *uploadService) DeleteImage(ctx context.Context, actor *entity.Identity, objectPath string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if strings.TrimSpace(objectPath) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("path: obrigatório"), "delete image")
	}

	if entity.IsFallbackPath(objectPath) {
		srv.log(ctx).Debug("Skipping remote delete of local-only image", slog.String("path", objectPath))

		return nil
	}

	if !ownsObject(objectPath, actor.ID) {
		return errors.Wrap(domainerrors.ErrForbidden, "image belongs to another owner")
	}

	srv.log(ctx).Info("Deleting image", slog.String("path", objectPath))

	if err := srv.objectStore.Delete(ctx, objectPath); err != nil {
		srv.log(ctx).Error("Failed to delete image", slog.String("path", objectPath), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrImageDeleteFailed.WithDetails(err.Error()), "delete image")
	}

	return nil
}

func (srv *uploadService) validate(file entity.UploadFile, folder string) error {
	if folder != entity.UploadFolderProducts && folder != entity.UploadFolderStore {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("folder: deve ser um de [products store]"), "invalid upload folder")
	}
	if !slices.Contains(srv.allowedTypes, strings.ToLower(file.ContentType)) {
		return errors.Wrapf(domainerrors.ErrUnsupportedFileType, "content type %q", file.ContentType)
	}
	if file.Size() > srv.maxSize {
		return errors.Wrapf(domainerrors.ErrFileTooLarge, "%s", util.FormatBytes(file.Size()))
	}
	if file.Size() == 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("file: arquivo vazio"), "empty upload")
	}
	if strings.TrimSpace(file.Name) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("file: nome obrigatório"), "unnamed upload")
	}

	return nil
}

func (srv *uploadService) objectKey(folder, ownerID, fileName string) string {
	millis := strconv.FormatInt(srv.clock.Now().UnixMilli(), 10)

	return folder + "/" + ownerID + "/" + millis + "_" + path.Base(fileName)
}

// ownsObject reports whether key has the shape {folder}/{ownerID}/...
func ownsObject(key, ownerID string) bool {
	parts := strings.SplitN(key, "/", 3)

	return len(parts) == 3 && parts[1] == ownerID && parts[2] != ""
}

func dataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
