package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *handlers) listVehicles(w http.ResponseWriter, r *http.Request) {
	vs, err := h.svc.Vehicles.List(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"vehicles": vs})
}

func (h *handlers) getVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Vehicles.Get(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"vehicle": v})
}

func (h *handlers) createVehicle(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[vehicleCreateRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	v, err := h.svc.Vehicles.Create(r.Context(), userIDFrom(r.Context()), req.model())
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusCreated, map[string]any{"vehicle": v})
}

func (h *handlers) updateVehicle(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[vehicleUpdateRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	v, err := h.svc.Vehicles.Update(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"], req.patch())
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"vehicle": v})
}

func (h *handlers) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Vehicles.Delete(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "Vehicle deleted successfully")
}
