package storage

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets for local development
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets with service account credentials
	_ "gocloud.dev/blob/memblob"  // mem:// buckets for tests
	"gocloud.dev/gcerrors"
)

// BlobStore stores objects in any gocloud bucket with the service's own credentials.
type BlobStore struct {
	bucket          *blob.Bucket
	publicURLFormat string
	logger          *slog.Logger
}

var _ service.ObjectStore = (*BlobStore)(nil)

// OpenBlobStore opens bucketURL. publicURLFormat renders the fetchable URL of a key with one %s verb.
func OpenBlobStore(ctx context.Context, bucketURL, publicURLFormat string, logger *slog.Logger) (*BlobStore, error) {
	if publicURLFormat == "" {
		return nil, errors.New("blob store requires a public URL format")
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}

	return &BlobStore{
		bucket:          bucket,
		publicURLFormat: publicURLFormat,
		logger:          logger,
	}, nil
}

// Put writes data under key.
func (s *BlobStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return "", errors.Wrapf(err, "write %s", key)
	}

	return fmt.Sprintf(s.publicURLFormat, key), nil
}

// Delete removes key. A missing object is reported as an error.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return errors.Wrapf(err, "object %s not found", key)
		}

		return errors.Wrapf(err, "delete %s", key)
	}

	return nil
}

// Exists reports whether key is stored.
func (s *BlobStore) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.bucket.Exists(ctx, key)

	return ok, errors.WithStack(err)
}

// Close releases the bucket.
func (s *BlobStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}
