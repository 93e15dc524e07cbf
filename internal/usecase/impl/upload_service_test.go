package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// uploadServiceFixtures holds all test dependencies for upload service tests.
type uploadServiceFixtures struct {
	service     usecase.UploadUsecase
	objectStore *mockSvc.MockObjectStore
	clock       *clockwork.FakeClock
}

func createTestUploadService(t *testing.T) uploadServiceFixtures {
	clock := clockwork.NewFakeClockAt(testNow)
	objectStore := mockSvc.NewMockObjectStore(t)

	service := NewUploadService(UploadServiceParams{
		ObjectStore: objectStore,
		Clock:       clock,
		Config: &config.Config{
			Upload: &config.UploadConfig{
				MaxSizeBytes: 1024,
				Timeout:      5 * time.Second,
				AllowedTypes: []string{"image/jpeg", "image/png"},
			},
		},
		Logger: testLogger(),
	})

	return uploadServiceFixtures{
		service:     service,
		objectStore: objectStore,
		clock:       clock,
	}
}

func pngFile(size int) entity.UploadFile {
	return entity.UploadFile{
		Name:        "foto.png",
		ContentType: "image/png",
		Data:        []byte(strings.Repeat("x", size)),
	}
}

func TestUploadService_UploadImage_Success(t *testing.T) {
	fx := createTestUploadService(t)
	ctx := context.Background()

	key := "products/owner-1/" + "1740830400000" + "_foto.png"
	fx.objectStore.EXPECT().
		Put(mock.Anything, key, "image/png", mock.Anything).
		Return("https://cdn.example.com/"+key, nil).
		Once()

	result, err := fx.service.UploadImage(ctx, testActor("owner-1"), pngFile(10), "")
	require.NoError(t, err)
	assert.Equal(t, key, result.Path)
	assert.Equal(t, "https://cdn.example.com/"+key, result.URL)
}

func TestUploadService_UploadImage_ValidationMakesNoRemoteCall(t *testing.T) {
	fx := createTestUploadService(t)
	actor := testActor("owner-1")

	tests := []struct {
		name   string
		file   entity.UploadFile
		folder string
		want   error
	}{
		{"unsupported type", entity.UploadFile{Name: "doc.pdf", ContentType: "application/pdf", Data: []byte("x")}, "", domainerrors.ErrUnsupportedFileType},
		{"too large", pngFile(1025), "", domainerrors.ErrFileTooLarge},
		{"empty", pngFile(0), "", domainerrors.ErrValidationFailed},
		{"unknown folder", pngFile(10), "secrets", domainerrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.UploadImage(context.Background(), actor, tt.file, tt.folder)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}

	_, err := fx.service.UploadImage(context.Background(), nil, pngFile(10), "")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	fx.objectStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_UploadImage_FallbackOnError(t *testing.T) {
	fx := createTestUploadService(t)

	fx.objectStore.EXPECT().
		Put(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("permission denied"))

	result, err := fx.service.UploadImage(context.Background(), testActor("owner-1"), pngFile(3), entity.UploadFolderStore)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,eHh4", result.URL)
	assert.Equal(t, "base64/store/owner-1/1740830400000_foto.png", result.Path)
	assert.True(t, entity.IsFallbackPath(result.Path))
}

func TestUploadService_UploadImage_FallbackOnTimeout(t *testing.T) {
	fx := createTestUploadService(t)

	release := make(chan struct{})
	defer close(release)
	entered := make(chan struct{})

	fx.objectStore.EXPECT().
		Put(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _, _ string, _ []byte) (string, error) {
			close(entered)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-release:
				return "https://late.example.com", nil
			}
		})

	done := make(chan *entity.UploadResult, 1)
	go func() {
		result, err := fx.service.UploadImage(context.Background(), testActor("owner-1"), pngFile(3), "")
		assert.NoError(t, err)
		done <- result
	}()

	// Advance only once the put is in flight and the timer is armed.
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("object store put was never started")
	}
	require.NoError(t, fx.clock.BlockUntilContext(context.Background(), 1))
	fx.clock.Advance(5 * time.Second)

	select {
	case result := <-done:
		assert.True(t, strings.HasPrefix(result.URL, "data:image/png;base64,"))
		assert.True(t, entity.IsFallbackPath(result.Path))
	case <-time.After(time.Second):
		t.Fatal("upload did not fall back after the timeout")
	}
}

func TestUploadService_DeleteImage(t *testing.T) {
	fx := createTestUploadService(t)
	ctx := context.Background()
	actor := testActor("owner-1")

	t.Run("fallback path needs no remote call", func(t *testing.T) {
		require.NoError(t, fx.service.DeleteImage(ctx, actor, "base64/products/owner-1/1_foto.png"))
		fx.objectStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("foreign path is forbidden", func(t *testing.T) {
		err := fx.service.DeleteImage(ctx, actor, "products/owner-2/1_foto.png")
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("empty path", func(t *testing.T) {
		err := fx.service.DeleteImage(ctx, actor, " ")
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("owned path", func(t *testing.T) {
		fx.objectStore.EXPECT().Delete(mock.Anything, "products/owner-1/1_foto.png").Return(nil).Once()

		require.NoError(t, fx.service.DeleteImage(ctx, actor, "products/owner-1/1_foto.png"))
	})

	t.Run("remote failure", func(t *testing.T) {
		fx.objectStore.EXPECT().Delete(mock.Anything, "store/owner-1/2_logo.png").Return(errors.New("unavailable")).Once()

		err := fx.service.DeleteImage(ctx, actor, "store/owner-1/2_logo.png")
		assert.ErrorIs(t, err, domainerrors.ErrImageDeleteFailed)
		assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
	})
}
