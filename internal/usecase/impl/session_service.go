package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/session"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
)

const defaultSessionTokenTTL = 24 * time.Hour

// sessionService implements the SessionUsecase interface. It is the registry of live
// Session Managers, keyed by session id.
type sessionService struct {
	authProvider service.AuthProvider
	tokenService service.TokenService
	cache        service.CredentialCache
	workspaces   usecase.WorkspaceUsecase
	validator    *validator.Validator
	options      session.Options
	tokenTTL     time.Duration
	logger       *slog.Logger
	restores     singleflight.Group

	mu       sync.Mutex
	sessions map[string]*session.Manager
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Lc           fx.Lifecycle `optional:"true"`
	AuthProvider service.AuthProvider
	TokenService service.TokenService
	Cache        service.CredentialCache
	Workspaces   usecase.WorkspaceUsecase
	Validator    *validator.Validator
	Clock        clockwork.Clock
	Config       *config.Config
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	srv := &sessionService{
		authProvider: params.AuthProvider,
		tokenService: params.TokenService,
		cache:        params.Cache,
		workspaces:   params.Workspaces,
		validator:    params.Validator,
		options: session.Options{
			Clock:  params.Clock,
			Cache:  params.Cache,
			Logger: params.Logger,
		},
		tokenTTL: defaultSessionTokenTTL,
		logger:   params.Logger,
		sessions: make(map[string]*session.Manager),
	}

	if params.Config != nil && params.Config.Session != nil {
		srv.options.RefreshThreshold = params.Config.Session.RefreshThreshold
		srv.options.IdleTimeout = params.Config.Session.IdleTimeout
		if params.Config.Session.TokenTTL > 0 {
			srv.tokenTTL = params.Config.Session.TokenTTL
		}
	}

	if params.Lc != nil {
		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				srv.workspaces.CloseAll()

				return nil
			},
		})
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login signs in through a new Session Manager and issues the session token for it.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if err := srv.validator.Validate(input); err != nil {
		return nil, errors.Wrap(err, "invalid login")
	}

	srv.log(ctx).Info("Signing in", slog.String("email", input.Email))

	// 1. Sign in with a fresh manager
	manager := session.NewManager(uuid.NewString(), srv.authProvider, srv.options)
	identity, err := manager.Login(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to login")
	}

	// 2. Issue the token naming the session
	token, err := srv.tokenService.GenerateSessionToken(manager.ID(), identity.ID, identity.Roles().ToStrings(), srv.tokenTTL)
	if err != nil {
		manager.Logout(ctx)

		return nil, errors.Wrap(domainerrors.ErrInternalError.WithDetails(err.Error()), "failed to issue session token")
	}

	// 3. Register the session and open its live views
	if err := srv.register(ctx, manager); err != nil {
		manager.Logout(ctx)

		return nil, err
	}

	return &usecase.LoginOutput{
		SessionToken:    token,
		Identity:        identity,
		TokenExpiryTime: manager.TokenExpiryTime(),
	}, nil
}

// Resolve returns the live session, restoring it from the credential cache after a restart.
func (srv *sessionService) Resolve(ctx context.Context, sessionID string) (*session.Manager, error) {
	if manager, ok := srv.lookup(sessionID); ok {
		if !manager.IsAuthenticated() {
			return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "session ended")
		}
		manager.Touch()

		return manager, nil
	}

	v, err, _ := srv.restores.Do(sessionID, func() (any, error) {
		return srv.restore(context.WithoutCancel(ctx), sessionID)
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // restore returns domain errors
	}

	return v.(*session.Manager), nil
}

func (srv *sessionService) restore(ctx context.Context, sessionID string) (*session.Manager, error) {
	if manager, ok := srv.lookup(sessionID); ok {
		return manager, nil
	}

	cached, err := srv.cache.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrCredentialNotCached) {
			return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "session not found")
		}

		return nil, upstream(err, "failed to load cached session")
	}

	manager := session.NewManager(sessionID, srv.authProvider, srv.options)
	manager.Resume(ctx, cached.Identity, cached.Credential)
	if err := srv.register(ctx, manager); err != nil {
		manager.Logout(ctx)

		return nil, err
	}

	srv.log(ctx).Info("Session restored from cache",
		slog.String("session_id", sessionID),
		slog.String("user_id", cached.Identity.ID),
	)

	return manager, nil
}

// register keeps the manager until it ends and opens its workspace.
func (srv *sessionService) register(ctx context.Context, manager *session.Manager) error {
	sessionID := manager.ID()
	manager.OnChange(func(state session.State) {
		if state == session.StateUnauthenticated {
			srv.forget(sessionID)
		}
	})

	srv.mu.Lock()
	srv.sessions[sessionID] = manager
	srv.mu.Unlock()

	if _, err := srv.workspaces.Open(ctx, sessionID, manager.Identity().ID); err != nil {
		return errors.Wrap(err, "failed to open workspace")
	}

	return nil
}

func (srv *sessionService) forget(sessionID string) {
	srv.mu.Lock()
	delete(srv.sessions, sessionID)
	srv.mu.Unlock()

	srv.workspaces.Close(sessionID)
}

func (srv *sessionService) lookup(sessionID string) (*session.Manager, bool) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	manager, ok := srv.sessions[sessionID]

	return manager, ok
}

// Logout ends the session. Unknown sessions only have their cached credential cleared.
func (srv *sessionService) Logout(ctx context.Context, sessionID string) error {
	srv.log(ctx).Info("Signing out", slog.String("session_id", sessionID))

	if manager, ok := srv.lookup(sessionID); ok {
		manager.Logout(ctx)

		return nil
	}

	if err := srv.cache.Delete(ctx, sessionID); err != nil {
		return upstream(err, "failed to clear cached session")
	}

	return nil
}

// LogoutEverywhere ends the session and revokes the identity's other sessions.
func (srv *sessionService) LogoutEverywhere(ctx context.Context, sessionID string) error {
	manager, err := srv.Resolve(ctx, sessionID)
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Signing out everywhere",
		slog.String("session_id", sessionID),
		slog.String("user_id", manager.Identity().ID),
	)

	return manager.LogoutEverywhere(ctx) //nolint:wrapcheck // already a domain error
}

// Refresh force-renews the session credential.
func (srv *sessionService) Refresh(ctx context.Context, sessionID string) (*usecase.SessionInfo, error) {
	manager, err := srv.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := manager.RefreshToken(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to refresh session")
	}

	return sessionInfo(manager), nil
}

// Info describes the session.
func (srv *sessionService) Info(ctx context.Context, sessionID string) (*usecase.SessionInfo, error) {
	manager, err := srv.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return sessionInfo(manager), nil
}

func sessionInfo(manager *session.Manager) *usecase.SessionInfo {
	return &usecase.SessionInfo{
		SessionID:       manager.ID(),
		State:           manager.State().String(),
		Identity:        manager.Identity(),
		TokenExpiryTime: manager.TokenExpiryTime(),
	}
}
