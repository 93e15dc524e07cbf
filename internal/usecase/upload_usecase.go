package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// UploadUsecase stores images for the acting identity. Uploads never fail because of the
// object store; they fall back to a local encoding instead.
type UploadUsecase interface {
	// UploadImage validates file, then stores it under folder. An empty folder means products.
	UploadImage(ctx context.Context, actor *entity.Identity, file entity.UploadFile, folder string) (*entity.UploadResult, error)

	// DeleteImage removes a previously uploaded image. Fallback handles are never deleted remotely.
	DeleteImage(ctx context.Context, actor *entity.Identity, path string) error
}
