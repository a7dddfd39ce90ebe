package httpserver

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/autokeeper/internal/server/models"
	"github.com/gorilla/mux"
)

// pageFrom reads ?page= and ?limit=; unparsable values fall back to the
// defaults.
func pageFrom(r *http.Request) models.Page {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return models.NewPage(page, limit)
}

func respondWithPage[T any](w http.ResponseWriter, key string, p *models.PageOf[T]) {
	respondWithJSON(w, http.StatusOK, envelope{
		Success:    true,
		Data:       map[string]any{key: p.Items},
		Pagination: &p.Pagination,
	})
}

func (h *handlers) listFuelLogs(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.FuelLogs.List(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["vehicleId"], pageFrom(r))
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithPage(w, "fuelLogs", p)
}

func (h *handlers) getFuelLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	l, err := h.svc.FuelLogs.Get(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"])
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"fuelLog": l})
}

func (h *handlers) createFuelLog(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[fuelLogCreateRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	l, err := h.svc.FuelLogs.Create(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["vehicleId"], req.model())
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusCreated, map[string]any{"fuelLog": l})
}

func (h *handlers) updateFuelLog(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[fuelLogUpdateRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	vars := mux.Vars(r)
	l, err := h.svc.FuelLogs.Update(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"], req.patch())
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"fuelLog": l})
}

func (h *handlers) deleteFuelLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.FuelLogs.Delete(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"]); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "Fuel log deleted successfully")
}

func (h *handlers) listServiceLogs(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.ServiceLogs.List(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["vehicleId"], pageFrom(r))
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithPage(w, "serviceLogs", p)
}

func (h *handlers) getServiceLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	l, err := h.svc.ServiceLogs.Get(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"])
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"serviceLog": l})
}

func (h *handlers) createServiceLog(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[serviceLogCreateRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	l, err := h.svc.ServiceLogs.Create(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["vehicleId"], req.model())
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusCreated, map[string]any{"serviceLog": l})
}

func (h *handlers) updateServiceLog(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[serviceLogUpdateRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	vars := mux.Vars(r)
	l, err := h.svc.ServiceLogs.Update(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"], req.patch())
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"serviceLog": l})
}

func (h *handlers) deleteServiceLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.ServiceLogs.Delete(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"]); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "Service log deleted successfully")
}

func (h *handlers) receiptUploadURL(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	u, err := h.svc.ServiceLogs.ReceiptUploadURL(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"])
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"receipt": u})
}

func (h *handlers) receiptDownloadURL(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	u, err := h.svc.ServiceLogs.ReceiptDownloadURL(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"])
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"receipt": u})
}
