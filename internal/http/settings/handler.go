package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budgettracker/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.flags)
}

func (h *Handler) flags(w http.ResponseWriter, r *http.Request) {
	flags, err := h.svc.Flags(r.Context())
	if err != nil {
		slog.Error("failed to read settings", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(flags); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
