package api

import (
	"net/http"

	"github.com/minimal-api/internal/auth"
	"github.com/minimal-api/internal/model"
)

// Route declares one endpoint together with the access rule the guard
// enforces for it.
type Route struct {
	Method      string
	Path        string
	Requirement auth.Requirement
	Handler     http.HandlerFunc
}

// Pattern is the ServeMux pattern for the route. "/" is anchored so it does
// not swallow unknown paths.
func (rt Route) Pattern() string {
	if rt.Path == "/" {
		return rt.Method + " /{$}"
	}
	return rt.Method + " " + rt.Path
}

// Routes returns the service's route table.
func Routes(h *Handler, vh *VehicleHandler) []Route {
	adminOnly := auth.RoleIn(model.RoleAdmin)
	adminOrEditor := auth.RoleIn(model.RoleAdmin, model.RoleEditor)

	return []Route{
		{http.MethodGet, "/", auth.Public(), h.Home},
		{http.MethodGet, "/health", auth.Public(), h.Health},

		{http.MethodPost, "/administradores/login", auth.Public(), h.Login},
		{http.MethodGet, "/administradores", adminOnly, h.ListAdministrators},
		{http.MethodGet, "/administradores/{id}", adminOnly, h.GetAdministrator},
		{http.MethodPost, "/administradores", adminOnly, h.CreateAdministrator},

		{http.MethodPost, "/veiculos", adminOrEditor, vh.CreateVehicle},
		{http.MethodGet, "/veiculos", auth.Public(), vh.ListVehicles},
		{http.MethodGet, "/veiculos/{id}", adminOrEditor, vh.GetVehicle},
		{http.MethodPut, "/veiculos/{id}", adminOnly, vh.UpdateVehicle},
		{http.MethodDelete, "/veiculos/{id}", adminOnly, vh.DeleteVehicle},
	}
}
