package routes

import (
	"fmt"
	"log/slog"
	"sync"
)

// AuthorityChecker reports granted authorities; *storage.SessionData implements it.
type AuthorityChecker interface {
	HasAuthority(authority string) bool
}

// Router хранит состояние основного и popup outlet и проверяет права доступа.
type Router struct {
	session AuthorityChecker
	logger  *slog.Logger
	primary *Match
	popup   *Match
	mu      sync.Mutex
}

// NewRouter creates a router with no session.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Router{logger: logger}
}

// SetSession sets the session used for authority checks; nil logs out.
func (r *Router) SetSession(session AuthorityChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = session
}

// Navigate resolves path and activates it. Popup routes render on top of the
// current primary route, which defaults to the list; primary routes close any popup.
func (r *Router) Navigate(path string) (Match, error) {
	m, err := Resolve(path)
	if err != nil {
		return Match{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(m.Route); err != nil {
		return Match{}, err
	}

	if m.Route.Outlet == OutletPopup {
		if r.primary == nil {
			list, _ := Resolve(ListPath(""))
			r.primary = &list
		}
		r.popup = &m
	} else {
		r.primary = &m
		r.popup = nil
	}
	r.logger.Debug("navigated", slog.String("route", m.Route.Name), slog.String("path", m.Path))
	return m, nil
}

// authorize must be called with r.mu held.
func (r *Router) authorize(route Route) error {
	if len(route.Authorities) == 0 {
		return nil
	}
	if r.session == nil {
		return ErrNotAuthenticated
	}
	for _, authority := range route.Authorities {
		if r.session.HasAuthority(authority) {
			return nil
		}
	}
	return fmt.Errorf("%w: route %s requires %v", ErrForbidden, route.Name, route.Authorities)
}

// ClearPopup closes the popup outlet and returns to the primary route.
func (r *Router) ClearPopup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.popup != nil {
		r.logger.Debug("popup cleared", slog.String("route", r.popup.Route.Name))
	}
	r.popup = nil
}

// Primary returns the active primary route.
func (r *Router) Primary() (Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.primary == nil {
		return Match{}, false
	}
	return *r.primary, true
}

// Popup returns the active popup route.
func (r *Router) Popup() (Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.popup == nil {
		return Match{}, false
	}
	return *r.popup, true
}

// Location renders the combined state, e.g. "credential(popup:credential/5/edit)".
func (r *Router) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc := ""
	if r.primary != nil {
		loc = r.primary.Path
	}
	if r.popup != nil {
		loc += "(popup:" + r.popup.Path + ")"
	}
	return loc
}
