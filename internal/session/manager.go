// Package session owns the lifecycle of one authenticated identity: sign-in, credential
// expiry tracking, proactive refresh, idle timeout and sign-out.
package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultRefreshThreshold is how long before expiry the credential is renewed.
	DefaultRefreshThreshold = 5 * time.Minute
	// DefaultIdleTimeout is how long a session survives without user interaction.
	DefaultIdleTimeout = time.Hour
)

// State is the externally observable session state. Refreshing is not a state.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}

	return "unauthenticated"
}

// Options configures a Manager. Zero values fall back to the defaults.
type Options struct {
	RefreshThreshold time.Duration
	IdleTimeout      time.Duration
	Clock            clockwork.Clock
	Cache            service.CredentialCache // optional
	Logger           *slog.Logger
}

// Manager is a finite-state machine over one identity with two cancellable deferred tasks:
// the refresh at expiry minus the threshold, and the idle logout.
type Manager struct {
	id               string
	provider         service.AuthProvider
	cache            service.CredentialCache
	clock            clockwork.Clock
	refreshThreshold time.Duration
	idleTimeout      time.Duration
	logger           *slog.Logger
	flight           singleflight.Group

	mu           sync.Mutex
	state        State
	identity     *entity.Identity
	credential   *entity.Credential
	epoch        uint64 // bumped on every login and logout
	seq          uint64 // bumped on every timer schedule
	refreshSeq   uint64
	idleSeq      uint64
	refreshTimer clockwork.Timer
	idleTimer    clockwork.Timer
	listeners    []func(State)
}

// NewManager creates an unauthenticated session with the given id.
func NewManager(id string, provider service.AuthProvider, opts Options) *Manager {
	if opts.RefreshThreshold <= 0 {
		opts.RefreshThreshold = DefaultRefreshThreshold
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Manager{
		id:               id,
		provider:         provider,
		cache:            opts.Cache,
		clock:            opts.Clock,
		refreshThreshold: opts.RefreshThreshold,
		idleTimeout:      opts.IdleTimeout,
		logger:           opts.Logger.With(slog.String("session_id", id)),
	}
}

// ID returns the session id.
func (m *Manager) ID() string {
	return m.id
}

// Login signs in and starts both timers. A login on an authenticated session replaces it.
func (m *Manager) Login(ctx context.Context, email, password string) (*entity.Identity, error) {
	result, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		m.logger.Info("Sign-in failed", slog.String("email", email), slog.Any("error", err))

		switch {
		case errors.Is(err, service.ErrSignInRejected):
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "sign in")
		case errors.Is(err, service.ErrTooManyAttempts):
			return nil, errors.Wrap(domainerrors.ErrTooManyAttempts, "sign in")
		default:
			return nil, errors.Wrap(domainerrors.ErrUpstreamFailure.WithDetails(err.Error()), "sign in")
		}
	}

	identity := entity.NewIdentity(result.UserID, result.Email, result.DisplayName)
	credential := result.Credential
	m.start(ctx, identity, &credential)

	m.logger.Info("Session authenticated",
		slog.String("user_id", identity.ID),
		slog.Time("expires_at", credential.ExpiresAt),
	)

	return m.Identity(), nil
}

// Resume restores a session from a cached credential without contacting the auth provider.
func (m *Manager) Resume(ctx context.Context, identity entity.Identity, credential entity.Credential) {
	m.start(ctx, &identity, &credential)

	m.logger.Info("Session resumed",
		slog.String("user_id", identity.ID),
		slog.Time("expires_at", credential.ExpiresAt),
	)
}

func (m *Manager) start(ctx context.Context, identity *entity.Identity, credential *entity.Credential) {
	m.mu.Lock()
	m.stopTimersLocked()
	m.epoch++
	wasAuthenticated := m.state == StateAuthenticated
	m.state = StateAuthenticated
	m.identity = identity
	m.credential = credential
	m.scheduleRefreshLocked()
	m.scheduleIdleLocked()
	listeners := m.listenersLocked()
	m.mu.Unlock()

	m.persist(ctx, identity, credential)

	if !wasAuthenticated {
		notify(listeners, StateAuthenticated)
	}
}

// Logout clears both timers and the credential cache. Logging out twice is a no-op.
// Other sessions of the same identity are not affected.
func (m *Manager) Logout(ctx context.Context) {
	m.logout(ctx, "explicit", 0, false)
}

// LogoutEverywhere revokes the identity's refresh tokens at the provider, which ends its
// sessions on every device at their next refresh, then ends this session. This session
// ends even when the revocation fails.
func (m *Manager) LogoutEverywhere(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()

		return errors.Wrap(domainerrors.ErrUnauthenticated, "logout everywhere")
	}
	userID := m.identity.ID
	m.mu.Unlock()

	err := m.provider.RevokeSessions(ctx, userID)
	m.logout(ctx, "everywhere", 0, false)
	if err != nil {
		return errors.Wrap(domainerrors.ErrUpstreamFailure.WithDetails(err.Error()), "revoke sessions")
	}

	return nil
}

func (m *Manager) logout(ctx context.Context, reason string, epoch uint64, matchEpoch bool) {
	m.mu.Lock()
	if m.state == StateUnauthenticated || (matchEpoch && epoch != m.epoch) {
		m.mu.Unlock()

		return
	}

	m.stopTimersLocked()
	m.epoch++
	userID := m.identity.ID
	m.state = StateUnauthenticated
	m.identity = nil
	m.credential = nil
	listeners := m.listenersLocked()
	m.mu.Unlock()

	if m.cache != nil {
		if err := m.cache.Delete(ctx, m.id); err != nil {
			m.logger.Warn("Failed to clear cached credential", slog.Any("error", err))
		}
	}

	m.logger.Info("Session ended", slog.String("user_id", userID), slog.String("reason", reason))

	notify(listeners, StateUnauthenticated)
}

// RefreshToken force-renews the credential. Concurrent calls share one provider round trip.
// A failed renewal ends the session.
func (m *Manager) RefreshToken(ctx context.Context) error {
	_, err, _ := m.flight.Do("refresh", func() (any, error) {
		return nil, m.refresh(context.WithoutCancel(ctx))
	})

	return err //nolint:wrapcheck // errors are wrapped inside refresh
}

func (m *Manager) refresh(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()

		return errors.Wrap(domainerrors.ErrUnauthenticated, "refresh token")
	}
	epoch := m.epoch
	refreshToken := m.credential.RefreshToken
	m.mu.Unlock()

	credential, err := m.provider.Refresh(ctx, refreshToken)
	if err != nil {
		m.logger.Error("Credential refresh failed, signing out", slog.Any("error", err))
		m.logout(ctx, "refresh_failed", epoch, true)

		return errors.Wrap(domainerrors.ErrSessionExpired, "refresh token")
	}

	m.mu.Lock()
	if m.state != StateAuthenticated || epoch != m.epoch {
		m.mu.Unlock()

		return errors.Wrap(domainerrors.ErrUnauthenticated, "refresh token")
	}
	m.credential = credential
	m.scheduleRefreshLocked()
	identity := m.identity
	m.mu.Unlock()

	m.persist(ctx, identity, credential)

	m.logger.Debug("Credential refreshed", slog.Time("expires_at", credential.ExpiresAt))

	return nil
}

// Touch records user interaction and restarts the idle timer.
func (m *Manager) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated {
		return
	}
	m.scheduleIdleLocked()
}

// IsAuthenticated reports whether the session holds an identity.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state == StateAuthenticated
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Identity returns a copy of the signed-in identity, or nil.
func (m *Manager) Identity() *entity.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.identity == nil {
		return nil
	}
	identity := *m.identity

	return &identity
}

// TokenExpiryTime returns the credential expiry, or the zero time when unauthenticated.
func (m *Manager) TokenExpiryTime() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.credential == nil {
		return time.Time{}
	}

	return m.credential.ExpiresAt
}

// Token returns a copy of the current credential.
func (m *Manager) Token(_ context.Context) (*entity.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.credential == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "token")
	}
	credential := *m.credential

	return &credential, nil
}

// Now returns the manager's clock reading.
func (m *Manager) Now() time.Time {
	return m.clock.Now()
}

// OnChange registers fn to run after every transition between states.
func (m *Manager) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)
}

// scheduleRefreshLocked arms the refresh timer only when expiry minus the threshold lies in the future.
func (m *Manager) scheduleRefreshLocked() {
	if m.refreshTimer != nil {
		m.refreshTimer.Stop()
		m.refreshTimer = nil
	}
	m.seq++
	m.refreshSeq = m.seq

	delay := m.credential.ExpiresAt.Add(-m.refreshThreshold).Sub(m.clock.Now())
	if delay <= 0 {
		return
	}

	seq := m.refreshSeq
	m.refreshTimer = m.clock.AfterFunc(delay, func() { m.onRefreshDue(seq) })
}

func (m *Manager) scheduleIdleLocked() {
	if m.idleTimer != nil {
		m.idleTimer.Stop()
	}
	m.seq++
	m.idleSeq = m.seq

	seq := m.idleSeq
	m.idleTimer = m.clock.AfterFunc(m.idleTimeout, func() { m.onIdle(seq) })
}

func (m *Manager) stopTimersLocked() {
	if m.refreshTimer != nil {
		m.refreshTimer.Stop()
		m.refreshTimer = nil
	}
	if m.idleTimer != nil {
		m.idleTimer.Stop()
		m.idleTimer = nil
	}
	m.seq++
	m.refreshSeq = 0
	m.idleSeq = 0
}

func (m *Manager) onRefreshDue(seq uint64) {
	m.mu.Lock()
	stale := seq != m.refreshSeq || m.state != StateAuthenticated
	m.mu.Unlock()
	if stale {
		return
	}

	m.logger.Debug("Refresh timer fired")
	// A failure has already ended the session inside refresh.
	_ = m.RefreshToken(context.Background())
}

func (m *Manager) onIdle(seq uint64) {
	m.mu.Lock()
	stale := seq != m.idleSeq || m.state != StateAuthenticated
	epoch := m.epoch
	m.mu.Unlock()
	if stale {
		return
	}

	m.logout(context.Background(), "idle_timeout", epoch, true)
}

func (m *Manager) persist(ctx context.Context, identity *entity.Identity, credential *entity.Credential) {
	if m.cache == nil {
		return
	}

	ttl := credential.ExpiresAt.Sub(m.clock.Now())
	if ttl <= 0 {
		return
	}

	cached := &entity.CachedSession{
		SessionID:  m.id,
		Identity:   *identity,
		Credential: *credential,
	}
	if err := m.cache.Save(ctx, cached, ttl); err != nil {
		m.logger.Warn("Failed to cache credential", slog.Any("error", err))
	}
}

func (m *Manager) listenersLocked() []func(State) {
	return slices.Clone(m.listeners)
}

func notify(listeners []func(State), state State) {
	for _, fn := range listeners {
		fn(state)
	}
}
