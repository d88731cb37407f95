package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
	"github.com/MrJamesThe3rd/budgettracker/internal/ledger"
	"github.com/MrJamesThe3rd/budgettracker/internal/listing"
	"github.com/MrJamesThe3rd/budgettracker/internal/money"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

const maxLimit = 500

type Handler struct {
	records *record.Service
	ledger  *ledger.Service
	lists   *listing.Aggregator
	money   *money.Formatter
	now     func() time.Time
}

func NewHandler(records *record.Service, l *ledger.Service, lists *listing.Aggregator, f *money.Formatter) *Handler {
	return &Handler{records: records, ledger: l, lists: lists, money: f, now: time.Now}
}

// Routes expects to be mounted under a path carrying a {kind} parameter.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/sections", h.sections)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

func kindFrom(r *http.Request) (record.Kind, error) {
	return record.ParseKind(chi.URLParam(r, "kind"))
}

type createRecordRequest struct {
	Title  string          `json:"title"`
	Note   string          `json:"note"`
	Amount decimal.Decimal `json:"amount"`
	// Date is YYYY-MM-DD for a date-only entry or RFC 3339 for a timed one.
	Date string `json:"date"`
}

func (req createRecordRequest) params(kind record.Kind) (ledger.AddParams, error) {
	p := ledger.AddParams{Kind: kind, Title: req.Title, Note: req.Note, Amount: req.Amount}

	if req.Date == "" {
		return p, nil
	}

	if t, err := time.ParseInLocation(time.DateOnly, req.Date, time.Local); err == nil {
		p.Date = new(t)
		return p, nil
	}

	t, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return p, fmt.Errorf("invalid date %q", req.Date)
	}

	p.Date = new(t)
	p.HasTime = true

	return p, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.params(kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.ledger.Add(r.Context(), params)
	if err != nil && rec == nil {
		writeError(w, err)
		return
	}

	if err != nil {
		slog.Warn("record added with stale flag", "id", rec.ID, "error", err)
	}

	writeJSON(w, http.StatusCreated, toResponse(rec, h.money))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := record.Query{Kind: kind, Sort: record.ByRecency, Limit: maxLimit}

	if s := r.URL.Query().Get("sort"); s != "" {
		if q.Sort, err = record.ParseSortOrder(s); err != nil {
			writeError(w, err)
			return
		}
	}

	if s := r.URL.Query().Get("date"); s != "" {
		b, err := bucket.ParseDay(s, time.Local)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		q.Day = &b
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxLimit {
			http.Error(w, fmt.Sprintf("limit must be between 1 and %d", maxLimit), http.StatusBadRequest)
			return
		}

		q.Limit = n
	}

	recs, err := h.records.Fetch(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(recs, h.money))
}

// sections composes the day sections. expand lists days (YYYY-MM-DD) whose toggle is
// pressed once; a day too large to expand in place is flagged see_more instead.
func (h *Handler) sections(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	order := record.ByRecency
	if s := r.URL.Query().Get("sort"); s != "" {
		if order, err = record.ParseSortOrder(s); err != nil {
			writeError(w, err)
			return
		}
	}

	var expand []string
	if s := r.URL.Query().Get("expand"); s != "" {
		expand = strings.Split(s, ",")
	}

	now := h.now()

	l, err := h.lists.Compose(r.Context(), kind, order, now)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := listResponse{
		Kind:     kind.Plural(),
		Sort:     order.Name(),
		Empty:    l.Empty,
		Sections: make([]sectionResponse, 0, len(l.Sections)),
	}

	for _, s := range l.Visible() {
		seeMore := false
		if slices.Contains(expand, s.Bucket().Day()) {
			seeMore = s.Toggle() != nil
		}

		resp.Sections = append(resp.Sections, toSectionResponse(s, now, seeMore, h.money))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.records.Get(r.Context(), kind, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(rec, h.money))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.records.Get(r.Context(), kind, id)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.ledger.Remove(r.Context(), rec)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{
		ID:              id,
		CollectionEmpty: slices.Contains(res.Emptied, kind),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, record.ErrNotFound):
		http.Error(w, "record not found", http.StatusNotFound)
	case errors.Is(err, record.ErrInvalidKind), errors.Is(err, record.ErrInvalidSort):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, record.ErrEmptyTitle),
		errors.Is(err, record.ErrInvalidAmount),
		errors.Is(err, record.ErrMissingDate):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, record.ErrUnavailable):
		slog.Error("record store unavailable", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
