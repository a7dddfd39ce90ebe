package httpserver

import (
	"context"
	"net/http"
	"time"
)

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[credentialsRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	res, err := h.svc.Auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusCreated, res)
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[loginRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	res, err := h.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, res)
}

func (h *handlers) refresh(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[refreshRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	pair, err := h.svc.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"tokens": pair})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[refreshRequest](w, r)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	if err := h.svc.Auth.Logout(r.Context(), userIDFrom(r.Context()), req.RefreshToken); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Auth.Me(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]any{"user": u})
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Timestamp: h.now().UTC().Format(time.RFC3339Nano), DB: "connected"}
	status := http.StatusOK

	if err := h.svc.DB.PingContext(ctx); err != nil {
		h.logger.Warn(r.Context(), "health check: database unreachable", "error", err)
		resp.Status, resp.DB = "degraded", "disconnected"
		status = http.StatusServiceUnavailable
	}
	respondWithJSON(w, status, resp)
}
