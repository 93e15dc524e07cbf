package firestore

import (
	"context"
	"log/slog"

	"storefront/internal/realtime"

	"cloud.google.com/go/firestore"
)

// watchQuery turns a live Firestore query into a realtime subscription. Documents that fail to
// decode are skipped with a warning so one malformed record cannot blank the whole view.
func watchQuery[T any](
	ctx context.Context,
	query firestore.Query,
	decode func(*firestore.DocumentSnapshot) (T, error),
	logger *slog.Logger,
) realtime.Subscription[T] {
	stream := realtime.NewStream[T](ctx)
	it := query.Snapshots(stream.Context())

	go func() {
		defer stream.Close()
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if !isStreamEnd(err) && stream.Context().Err() == nil {
					stream.Send(realtime.Snapshot[T]{Err: err})
				}

				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				if !stream.Send(realtime.Snapshot[T]{Err: err}) {
					return
				}

				continue
			}

			items := make([]T, 0, len(docs))
			for _, doc := range docs {
				item, err := decode(doc)
				if err != nil {
					logger.Warn("Skipping undecodable document",
						slog.String("path", doc.Ref.Path),
						slog.Any("error", err),
					)

					continue
				}
				items = append(items, item)
			}

			if !stream.Send(realtime.Snapshot[T]{Items: items}) {
				return
			}
		}
	}()

	return stream
}

// watchDocument follows a single document. A missing document is an empty snapshot.
func watchDocument[T any](
	ctx context.Context,
	ref *firestore.DocumentRef,
	decode func(*firestore.DocumentSnapshot) (T, error),
) realtime.Subscription[T] {
	stream := realtime.NewStream[T](ctx)
	it := ref.Snapshots(stream.Context())

	go func() {
		defer stream.Close()
		defer it.Stop()

		for {
			doc, err := it.Next()
			if err != nil {
				if !isStreamEnd(err) && stream.Context().Err() == nil {
					stream.Send(realtime.Snapshot[T]{Err: err})
				}

				return
			}

			items := []T{}
			if doc.Exists() {
				item, err := decode(doc)
				if err != nil {
					if !stream.Send(realtime.Snapshot[T]{Err: err}) {
						return
					}

					continue
				}
				items = append(items, item)
			}

			if !stream.Send(realtime.Snapshot[T]{Items: items}) {
				return
			}
		}
	}()

	return stream
}
