package httpserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/autokeeper/internal/logging"
	"github.com/gorilla/mux"
)

// Options tunes the HTTP middleware.
type Options struct {
	CORSOrigins   []string
	AuthRateLimit float64
}

type handlers struct {
	svc    Services
	logger logging.Logger
	now    func() time.Time
}

// NewHandler builds the complete HTTP API: routes plus middleware.
func NewHandler(svc Services, opts Options, l logging.Logger) http.Handler {
	h := &handlers{svc: svc, logger: l, now: time.Now}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(routeNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(routeNotFound)

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	a := r.PathPrefix("/api/auth").Subrouter()
	a.Use(rateLimit(opts.AuthRateLimit))
	a.HandleFunc("/register", h.register).Methods(http.MethodPost)
	a.HandleFunc("/login", h.login).Methods(http.MethodPost)
	a.HandleFunc("/refresh", h.refresh).Methods(http.MethodPost)
	a.Handle("/logout", h.requireAuth(http.HandlerFunc(h.logout))).Methods(http.MethodPost)
	a.Handle("/me", h.requireAuth(http.HandlerFunc(h.me))).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.requireAuth)

	api.HandleFunc("/vehicles", h.listVehicles).Methods(http.MethodGet)
	api.HandleFunc("/vehicles", h.createVehicle).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/{id}", h.getVehicle).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}", h.updateVehicle).Methods(http.MethodPut)
	api.HandleFunc("/vehicles/{id}", h.deleteVehicle).Methods(http.MethodDelete)

	api.HandleFunc("/fuel-logs/{vehicleId}", h.listFuelLogs).Methods(http.MethodGet)
	api.HandleFunc("/fuel-logs/{vehicleId}", h.createFuelLog).Methods(http.MethodPost)
	api.HandleFunc("/fuel-logs/{vehicleId}/{id}", h.getFuelLog).Methods(http.MethodGet)
	api.HandleFunc("/fuel-logs/{vehicleId}/{id}", h.updateFuelLog).Methods(http.MethodPut)
	api.HandleFunc("/fuel-logs/{vehicleId}/{id}", h.deleteFuelLog).Methods(http.MethodDelete)

	api.HandleFunc("/service-logs/{vehicleId}", h.listServiceLogs).Methods(http.MethodGet)
	api.HandleFunc("/service-logs/{vehicleId}", h.createServiceLog).Methods(http.MethodPost)
	api.HandleFunc("/service-logs/{vehicleId}/{id}", h.getServiceLog).Methods(http.MethodGet)
	api.HandleFunc("/service-logs/{vehicleId}/{id}", h.updateServiceLog).Methods(http.MethodPut)
	api.HandleFunc("/service-logs/{vehicleId}/{id}", h.deleteServiceLog).Methods(http.MethodDelete)
	api.HandleFunc("/service-logs/{vehicleId}/{id}/receipt", h.receiptUploadURL).Methods(http.MethodPost)
	api.HandleFunc("/service-logs/{vehicleId}/{id}/receipt", h.receiptDownloadURL).Methods(http.MethodGet)

	api.HandleFunc("/reminders/{vehicleId}", h.listReminders).Methods(http.MethodGet)
	api.HandleFunc("/reminders/{vehicleId}", h.createReminder).Methods(http.MethodPost)
	api.HandleFunc("/reminders/{vehicleId}/{id}", h.getReminder).Methods(http.MethodGet)
	api.HandleFunc("/reminders/{vehicleId}/{id}", h.updateReminder).Methods(http.MethodPut)
	api.HandleFunc("/reminders/{vehicleId}/{id}", h.deleteReminder).Methods(http.MethodDelete)
	api.HandleFunc("/reminders/{vehicleId}/{id}/complete", h.completeReminder).Methods(http.MethodPost)
	api.HandleFunc("/reminders/{vehicleId}/{id}/incomplete", h.incompleteReminder).Methods(http.MethodPost)

	var handler http.Handler = r
	handler = withTracing(handler)
	handler = withCORS(opts.CORSOrigins)(handler)
	handler = withRecovery(l)(handler)
	handler = withLogging(l)(handler)
	handler = withRequestID(handler)
	return handler
}

func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	respondWithFailure(w, http.StatusNotFound, "Route not found")
}
