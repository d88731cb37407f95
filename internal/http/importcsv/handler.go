package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budgettracker/internal/importer"
	"github.com/MrJamesThe3rd/budgettracker/internal/importer/csvfile"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

const maxUpload = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/preview", h.preview)
}

type addedResponse struct {
	ID     uuid.UUID       `json:"id"`
	Kind   record.Kind     `json:"kind"`
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
}

type skippedResponse struct {
	Line  int    `json:"line"`
	Title string `json:"title"`
	Error string `json:"error"`
}

type importResponse struct {
	Imported int               `json:"imported"`
	Added    []addedResponse   `json:"added"`
	Skipped  []skippedResponse `json:"skipped"`
}

type previewRow struct {
	Line    int             `json:"line"`
	Kind    record.Kind     `json:"kind"`
	Title   string          `json:"title"`
	Amount  decimal.Decimal `json:"amount"`
	Date    string          `json:"date"`
	HasTime bool            `json:"has_time"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	file, ok := formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	res, err := h.svc.Import(r.Context(), file)
	if err != nil && len(res.Added) == 0 {
		writeImportError(w, err)
		return
	}

	if err != nil {
		slog.Error("import stopped early", "added", len(res.Added), "error", err)
	}

	resp := importResponse{
		Imported: len(res.Added),
		Added:    make([]addedResponse, 0, len(res.Added)),
		Skipped:  make([]skippedResponse, 0, len(res.Skipped)),
	}

	for _, rec := range res.Added {
		resp.Added = append(resp.Added, addedResponse{ID: rec.ID, Kind: rec.Kind, Title: rec.Title, Amount: rec.Amount})
	}

	for _, s := range res.Skipped {
		resp.Skipped = append(resp.Skipped, skippedResponse{Line: s.Line, Title: s.Title, Error: s.Err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	file, ok := formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	entries, err := h.svc.Parse(file)
	if err != nil {
		writeImportError(w, err)
		return
	}

	resp := make([]previewRow, 0, len(entries))
	for _, e := range entries {
		row := previewRow{
			Line:    e.Line,
			Kind:    e.Params.Kind,
			Title:   e.Params.Title,
			Amount:  e.Params.Amount,
			HasTime: e.Params.HasTime,
		}

		if e.Params.Date != nil {
			row.Date = e.Params.Date.Format(time.RFC3339)
		}

		resp = append(resp, row)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func formFile(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return nil, false
	}

	return file, true
}

func writeImportError(w http.ResponseWriter, err error) {
	if errors.Is(err, csvfile.ErrUnknownLayout) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if errors.Is(err, record.ErrUnavailable) {
		slog.Error("import failed", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)

		return
	}

	http.Error(w, err.Error(), http.StatusBadRequest)
}
