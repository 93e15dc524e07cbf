package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/realtime"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

// workspaceService implements the WorkspaceUsecase interface.
type workspaceService struct {
	products   usecase.ProductUsecase
	categories usecase.CategoryUsecase
	profiles   usecase.StoreProfileUsecase
	logger     *slog.Logger

	mu         sync.Mutex
	workspaces map[string]*usecase.Workspace
}

// NewWorkspaceService is the constructor for workspaceService.
func NewWorkspaceService(
	products usecase.ProductUsecase,
	categories usecase.CategoryUsecase,
	profiles usecase.StoreProfileUsecase,
	logger *slog.Logger,
) usecase.WorkspaceUsecase {
	return &workspaceService{
		products:   products,
		categories: categories,
		profiles:   profiles,
		logger:     logger,
		workspaces: make(map[string]*usecase.Workspace),
	}
}

// Open returns the session's workspace, creating it and pointing every view at ownerID.
func (srv *workspaceService) Open(ctx context.Context, sessionID, ownerID string) (*usecase.Workspace, error) {
	if ownerID == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "open workspace")
	}

	srv.mu.Lock()
	ws, ok := srv.workspaces[sessionID]
	if !ok {
		logger := srv.logger.With(slog.String("session_id", sessionID))
		ws = &usecase.Workspace{
			SessionID: sessionID,
			OwnerID:   ownerID,
			Products: realtime.NewView[*entity.Product](
				realtime.SourceFunc[*entity.Product](srv.products.Subscribe),
				realtime.NewestFirst(func(p *entity.Product) time.Time { return p.CreatedAt }),
				logger,
			),
			Categories: realtime.NewView[*entity.Category](
				realtime.SourceFunc[*entity.Category](srv.categories.Subscribe),
				realtime.NewestFirst(func(c *entity.Category) time.Time { return c.CreatedAt }),
				logger,
			),
			Settings: realtime.NewView[*entity.StoreSettings](
				realtime.SourceFunc[*entity.StoreSettings](srv.profiles.Subscribe),
				realtime.NewestFirst(func(s *entity.StoreSettings) time.Time { return s.CreatedAt }),
				logger,
			),
		}
		srv.workspaces[sessionID] = ws
	}
	srv.mu.Unlock()

	// The identity of a session never changes, so switching an existing workspace is a no-op.
	if err := ws.Products.Switch(ctx, ownerID); err != nil {
		srv.Close(sessionID)

		return nil, errors.Wrap(err, "failed to open product view")
	}
	if err := ws.Categories.Switch(ctx, ownerID); err != nil {
		srv.Close(sessionID)

		return nil, errors.Wrap(err, "failed to open category view")
	}
	if err := ws.Settings.Switch(ctx, ownerID); err != nil {
		srv.Close(sessionID)

		return nil, errors.Wrap(err, "failed to open store settings view")
	}

	if !ok {
		srv.logger.Debug("Workspace opened", slog.String("session_id", sessionID), slog.String("owner_id", ownerID))
	}

	return ws, nil
}

// Get returns the open workspace of sessionID.
func (srv *workspaceService) Get(sessionID string) (*usecase.Workspace, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	ws, ok := srv.workspaces[sessionID]
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "workspace not open")
	}

	return ws, nil
}

// Close cancels the workspace's live queries and forgets it.
func (srv *workspaceService) Close(sessionID string) {
	srv.mu.Lock()
	ws, ok := srv.workspaces[sessionID]
	delete(srv.workspaces, sessionID)
	srv.mu.Unlock()

	if ok {
		ws.Close()
		srv.logger.Debug("Workspace closed", slog.String("session_id", sessionID))
	}
}

// CloseAll closes every workspace.
func (srv *workspaceService) CloseAll() {
	srv.mu.Lock()
	workspaces := srv.workspaces
	srv.workspaces = make(map[string]*usecase.Workspace)
	srv.mu.Unlock()

	for _, ws := range workspaces {
		ws.Close()
	}
}
