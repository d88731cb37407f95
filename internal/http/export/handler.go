package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budgettracker/internal/export"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.summary)
	r.Post("/download", h.download)
}

type exportRequest struct {
	Kinds     []string   `json:"kinds,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (req exportRequest) filter() (export.Filter, error) {
	f := export.Filter{From: req.StartDate, To: req.EndDate}

	for _, s := range req.Kinds {
		k, err := record.ParseKind(s)
		if err != nil {
			return export.Filter{}, err
		}

		f.Kinds = append(f.Kinds, k)
	}

	return f, nil
}

type summaryResponse struct {
	Count   int    `json:"count"`
	Summary string `json:"summary"`
}

func (h *Handler) collect(w http.ResponseWriter, r *http.Request) ([]*record.Record, bool) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	filter, err := req.filter()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	recs, err := h.svc.Collect(r.Context(), filter)
	if err != nil {
		slog.Error("failed to collect records", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return recs, true
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	recs, ok := h.collect(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summaryResponse{
		Count:   len(recs),
		Summary: h.svc.Summary(recs),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// download streams a zip holding records.csv and summary.txt.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	recs, ok := h.collect(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"export_%s.zip\"", time.Now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	csvFile, err := zipWriter.Create("records.csv")
	if err != nil {
		slog.Error("failed to create zip entry", "error", err)
		return
	}

	if err := h.svc.WriteCSV(csvFile, recs); err != nil {
		slog.Error("failed to write csv", "error", err)
		return
	}

	summaryFile, err := zipWriter.Create("summary.txt")
	if err != nil {
		slog.Error("failed to create zip entry", "error", err)
		return
	}

	if _, err := summaryFile.Write([]byte(h.svc.Summary(recs))); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
}
