package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/autokeeper/internal/server/models"
	"github.com/gorilla/mux"
)

func (h *handlers) listReminders(w http.ResponseWriter, r *http.Request) {
	filter := models.ParseReminderFilter(r.URL.Query().Get("filter"))
	p, err := h.svc.Reminders.List(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["vehicleId"], pageFrom(r), filter)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithPage(w, "reminders", p)
}

func (h *handlers) getReminder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rem, err := h.svc.Reminders.Get(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"])
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"reminder": rem})
}

func (h *handlers) createReminder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[reminderCreateRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	rem, err := h.svc.Reminders.Create(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["vehicleId"], req.model())
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusCreated, map[string]any{"reminder": rem})
}

func (h *handlers) updateReminder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[reminderUpdateRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	vars := mux.Vars(r)
	rem, err := h.svc.Reminders.Update(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"], req.patch())
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"reminder": rem})
}

func (h *handlers) deleteReminder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.Reminders.Delete(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"]); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "Reminder deleted successfully")
}

func (h *handlers) completeReminder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rem, err := h.svc.Reminders.MarkCompleted(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"])
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]any{"reminder": rem}, Message: "Reminder marked as completed"})
}

func (h *handlers) incompleteReminder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rem, err := h.svc.Reminders.MarkIncomplete(r.Context(), userIDFrom(r.Context()), vars["vehicleId"], vars["id"])
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]any{"reminder": rem}, Message: "Reminder marked as incomplete"})
}
