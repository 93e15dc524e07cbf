package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/realtime"
)

// Workspace is the set of live views of one session, all keyed by the session's identity.
type Workspace struct {
	SessionID  string
	OwnerID    string
	Products   *realtime.View[*entity.Product]
	Categories *realtime.View[*entity.Category]
	Settings   *realtime.View[*entity.StoreSettings]
}

// Close cancels every live query of the workspace.
func (w *Workspace) Close() {
	w.Products.Close()
	w.Categories.Close()
	w.Settings.Close()
}

// WorkspaceUsecase opens and closes the per-session workspaces.
type WorkspaceUsecase interface {
	// Open creates the workspace of sessionID, or switches an existing one to ownerID.
	Open(ctx context.Context, sessionID, ownerID string) (*Workspace, error)

	// Get returns the open workspace of sessionID, or ErrUnauthenticated.
	Get(sessionID string) (*Workspace, error)

	// Close tears the workspace down. Closing an unknown session is a no-op.
	Close(sessionID string)

	// CloseAll tears every workspace down.
	CloseAll()
}
