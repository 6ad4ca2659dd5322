package handlers

import "context"

// contextKey тип для ключей контекста
type contextKey string

const (
	// LoginKey ключ для логина аутентифицированного пользователя
	LoginKey contextKey = "login"
	// AuthoritiesKey ключ для ролей аутентифицированного пользователя
	AuthoritiesKey contextKey = "authorities"
)

// WithPrincipal stores the authenticated login and roles in the context.
func WithPrincipal(ctx context.Context, login string, authorities []string) context.Context {
	ctx = context.WithValue(ctx, LoginKey, login)
	return context.WithValue(ctx, AuthoritiesKey, authorities)
}

// LoginFromContext returns the authenticated login or "".
func LoginFromContext(ctx context.Context) string {
	login, _ := ctx.Value(LoginKey).(string)
	return login
}

// AuthoritiesFromContext returns the roles of the authenticated user.
func AuthoritiesFromContext(ctx context.Context) []string {
	authorities, _ := ctx.Value(AuthoritiesKey).([]string)
	return authorities
}
