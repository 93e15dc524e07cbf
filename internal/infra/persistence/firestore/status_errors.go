package firestore

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Helper functions for Firestore error checking
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// isStreamEnd reports whether a snapshot iterator stopped because it was cancelled or stopped.
func isStreamEnd(err error) bool {
	return errors.Is(err, iterator.Done) ||
		errors.Is(err, context.Canceled) ||
		status.Code(err) == codes.Canceled
}
