package session

import "context"

type managerKey struct{}

// WithManager returns a copy of ctx carrying the request's session.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerKey{}, m)
}

// FromContext returns the session carried by ctx.
func FromContext(ctx context.Context) (*Manager, bool) {
	m, ok := ctx.Value(managerKey{}).(*Manager)

	return m, ok && m != nil
}
