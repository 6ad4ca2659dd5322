// Package routes описывает навигационные маршруты администрирования credentials:
// основной outlet (список, карточка) и popup outlet (new/edit/delete поверх списка).
package routes

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/iudanet/credadmin/internal/models"
)

// Route names.
const (
	NameList   = "credential"
	NameDetail = "credential-detail"
	NameNew    = "credential-new"
	NameEdit   = "credential-edit"
	NameDelete = "credential-delete"
)

var (
	// ErrNoRoute is returned for a path that matches no route.
	ErrNoRoute = errors.New("no route matches path")

	// ErrForbidden is returned when the session lacks a required authority.
	ErrForbidden = errors.New("access denied")

	// ErrNotAuthenticated is returned when a protected route is opened without a session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Outlet is where a route renders.
type Outlet int

const (
	OutletPrimary Outlet = iota
	OutletPopup
)

// Route is one entry of the navigation table.
type Route struct {
	Name        string
	Pattern     string
	PageTitle   string
	Authorities []string
	Outlet      Outlet
}

// Table is the credential route table.
var Table = []Route{
	{Name: NameList, Pattern: "credential", PageTitle: "Credentials", Authorities: []string{models.RoleUser}, Outlet: OutletPrimary},
	{Name: NameDetail, Pattern: "credential/{id}", PageTitle: "Credential", Authorities: []string{models.RoleUser}, Outlet: OutletPrimary},
	{Name: NameNew, Pattern: "credential-new", PageTitle: "Create a new Credential", Authorities: []string{models.RoleUser}, Outlet: OutletPopup},
	{Name: NameEdit, Pattern: "credential/{id}/edit", PageTitle: "Edit Credential", Authorities: []string{models.RoleUser}, Outlet: OutletPopup},
	{Name: NameDelete, Pattern: "credential/{id}/delete", PageTitle: "Delete Credential", Authorities: []string{models.RoleUser}, Outlet: OutletPopup},
}

// Match is a resolved route with its path and query parameters.
type Match struct {
	Params map[string]string
	Path   string
	Route  Route
}

// Param returns a path or query parameter, or "".
func (m Match) Param(name string) string {
	return m.Params[name]
}

// Resolve matches path (with an optional query string) against Table.
func Resolve(path string) (Match, error) {
	u, err := url.Parse(strings.TrimSpace(path))
	if err != nil {
		return Match{}, fmt.Errorf("%w: %q", ErrNoRoute, path)
	}
	clean := strings.Trim(u.Path, "/")
	segments := strings.Split(clean, "/")

	for _, route := range Table {
		params, ok := matchPattern(route.Pattern, segments)
		if !ok {
			continue
		}
		for key, values := range u.Query() {
			if _, exists := params[key]; !exists && len(values) > 0 {
				params[key] = values[0]
			}
		}
		return Match{Route: route, Params: params, Path: clean}, nil
	}
	return Match{}, fmt.Errorf("%w: %q", ErrNoRoute, path)
}

func matchPattern(pattern string, segments []string) (map[string]string, bool) {
	parts := strings.Split(pattern, "/")
	if len(parts) != len(segments) {
		return nil, false
	}
	params := make(map[string]string)
	for i, part := range parts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			if segments[i] == "" {
				return nil, false
			}
			params[part[1:len(part)-1]] = segments[i]
			continue
		}
		if part != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// ListPath returns the list route, in search mode when query is not empty.
func ListPath(query string) string {
	if query == "" {
		return "credential"
	}
	return "credential?" + url.Values{"search": {query}}.Encode()
}

// DetailPath returns the detail route for id.
func DetailPath(id int64) string {
	return fmt.Sprintf("credential/%d", id)
}

// NewPath returns the popup route of the create dialog.
func NewPath() string {
	return "credential-new"
}

// EditPath returns the popup route of the edit dialog.
func EditPath(id int64) string {
	return fmt.Sprintf("credential/%d/edit", id)
}

// DeletePath returns the popup route of the delete dialog.
func DeletePath(id int64) string {
	return fmt.Sprintf("credential/%d/delete", id)
}
