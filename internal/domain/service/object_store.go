package service

import "context"

// ObjectStore stores binary objects by key.
type ObjectStore interface {
	// Put stores data under key and returns a fetchable URL.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
}
