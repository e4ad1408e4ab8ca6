package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/minimal-api/internal/logging"
	"github.com/minimal-api/internal/model"
	"github.com/minimal-api/internal/storage"
	"github.com/minimal-api/internal/validation"
)

// VehicleHandler handles the /veiculos endpoints
type VehicleHandler struct {
	vehicles storage.VehicleStore
	log      *logging.Logger
}

func NewVehicleHandler(vehicles storage.VehicleStore, log *logging.Logger) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, log: log}
}

// CreateVehicle godoc
// @Summary Create a vehicle
// @Description ano must be 1950 or later
// @Tags Veiculos
// @Accept json
// @Produce json
// @Param request body model.VehicleRequest true "New vehicle"
// @Success 201 {object} model.Vehicle
// @Header 201 {string} Location "/veiculos/{id}"
// @Failure 400 {object} model.ValidationErrors "Validation failed"
// @Failure 401 "Unauthorized"
// @Failure 403 "Forbidden"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /veiculos [post]
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req model.VehicleRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidation(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if msgs := validation.Vehicle(req); len(msgs) > 0 {
		respondValidation(w, http.StatusBadRequest, msgs...)
		return
	}

	var vehicle model.Vehicle
	vehicle.Apply(req)
	if err := h.vehicles.Create(r.Context(), &vehicle); err != nil {
		respondInternal(w, r, h.log, "failed to create vehicle", err)
		return
	}

	w.Header().Set("Location", "/veiculos/"+strconv.FormatInt(vehicle.ID, 10))
	respondJSON(w, http.StatusCreated, vehicle)
}

// ListVehicles godoc
// @Summary List vehicles
// @Description Returns vehicles ordered by id, 10 per page. Without pagina every record is returned.
// @Tags Veiculos
// @Produce json
// @Param pagina query int false "Page number, starting at 1"
// @Success 200 {array} model.Vehicle
// @Failure 400 {object} model.ValidationErrors "Invalid page"
// @Failure 500 {object} map[string]string "Server error"
// @Router /veiculos [get]
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	page, ok := queryPage(r)
	if !ok {
		respondValidation(w, http.StatusBadRequest, msgInvalidPage)
		return
	}

	vehicles, err := h.vehicles.FindPage(r.Context(), page)
	if err != nil {
		respondInternal(w, r, h.log, "failed to list vehicles", err)
		return
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}

	respondJSON(w, http.StatusOK, vehicles)
}

// GetVehicle godoc
// @Summary Get a vehicle
// @Tags Veiculos
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} model.Vehicle
// @Failure 400 {object} model.ValidationErrors "Invalid id"
// @Failure 401 "Unauthorized"
// @Failure 403 "Forbidden"
// @Failure 404 "Not found"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /veiculos/{id} [get]
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	vehicle, err := h.vehicles.FindByID(r.Context(), id)
	if err != nil {
		respondInternal(w, r, h.log, "failed to get vehicle", err)
		return
	}
	if vehicle == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

// UpdateVehicle godoc
// @Summary Replace a vehicle
// @Description Existence is checked before the payload is validated
// @Tags Veiculos
// @Accept json
// @Produce json
// @Param id path int true "Vehicle ID"
// @Param request body model.VehicleRequest true "Vehicle fields"
// @Success 200 {object} model.Vehicle
// @Failure 400 {object} model.ValidationErrors "Validation failed"
// @Failure 401 "Unauthorized"
// @Failure 403 "Forbidden"
// @Failure 404 "Not found"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /veiculos/{id} [put]
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	vehicle, err := h.vehicles.FindByID(r.Context(), id)
	if err != nil {
		respondInternal(w, r, h.log, "failed to get vehicle", err)
		return
	}
	if vehicle == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var req model.VehicleRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidation(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if msgs := validation.Vehicle(req); len(msgs) > 0 {
		respondValidation(w, http.StatusBadRequest, msgs...)
		return
	}

	vehicle.Apply(req)
	err = h.vehicles.Update(r.Context(), vehicle)
	if errors.Is(err, storage.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		respondInternal(w, r, h.log, "failed to update vehicle", err)
		return
	}

	h.log.InfoContext(r.Context(), "vehicle updated", append([]any{"id", vehicle.ID}, callerAttrs(r)...)...)
	respondJSON(w, http.StatusOK, vehicle)
}

// DeleteVehicle godoc
// @Summary Delete a vehicle
// @Tags Veiculos
// @Param id path int true "Vehicle ID"
// @Success 204
// @Failure 400 {object} model.ValidationErrors "Invalid id"
// @Failure 401 "Unauthorized"
// @Failure 403 "Forbidden"
// @Failure 404 "Not found"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /veiculos/{id} [delete]
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	err := h.vehicles.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		respondInternal(w, r, h.log, "failed to delete vehicle", err)
		return
	}

	h.log.InfoContext(r.Context(), "vehicle deleted", append([]any{"id", id}, callerAttrs(r)...)...)
	w.WriteHeader(http.StatusNoContent)
}
