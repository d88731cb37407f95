package record

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budgettracker/internal/money"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
	"github.com/MrJamesThe3rd/budgettracker/internal/section"
)

type recordResponse struct {
	ID        uuid.UUID       `json:"id"`
	Kind      record.Kind     `json:"kind"`
	Title     string          `json:"title"`
	Note      string          `json:"note,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Display   string          `json:"display_amount"`
	Date      *time.Time      `json:"date,omitempty"`
	HasTime   bool            `json:"has_time"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toResponse(r *record.Record, f *money.Formatter) recordResponse {
	return recordResponse{
		ID:        r.ID,
		Kind:      r.Kind,
		Title:     r.Title,
		Note:      r.Note,
		Amount:    r.Amount,
		Display:   f.Format(r.Amount),
		Date:      r.Date,
		HasTime:   r.HasTime,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toResponseList(recs []*record.Record, f *money.Formatter) []recordResponse {
	resp := make([]recordResponse, len(recs))
	for i, r := range recs {
		resp[i] = toResponse(r, f)
	}

	return resp
}

type sectionResponse struct {
	Day          string           `json:"day"`
	Label        string           `json:"label"`
	Total        decimal.Decimal  `json:"total"`
	DisplayTotal string           `json:"display_total"`
	WindowTotal  decimal.Decimal  `json:"window_total"`
	Count        int              `json:"count"`
	DisplayLimit int              `json:"display_limit"`
	Expanded     bool             `json:"expanded"`
	ShowsToggle  bool             `json:"shows_toggle"`
	ToggleLabel  string           `json:"toggle_label,omitempty"`
	SeeMore      bool             `json:"see_more,omitempty"`
	Records      []recordResponse `json:"records"`
}

type listResponse struct {
	Kind     string            `json:"kind"`
	Sort     string            `json:"sort"`
	Empty    bool              `json:"empty"`
	Sections []sectionResponse `json:"sections"`
}

func toSectionResponse(s *section.Section, now time.Time, seeMore bool, f *money.Formatter) sectionResponse {
	resp := sectionResponse{
		Day:          s.Bucket().Day(),
		Label:        s.Label(now),
		Total:        s.Total(),
		DisplayTotal: f.Format(s.Total()),
		WindowTotal:  s.WindowTotal(),
		Count:        s.Count(),
		DisplayLimit: s.DisplayLimit(),
		Expanded:     s.Expanded(),
		ShowsToggle:  s.ShowsToggle(),
		SeeMore:      seeMore,
		Records:      toResponseList(s.Displayed(), f),
	}

	if resp.ShowsToggle {
		resp.ToggleLabel = s.ToggleLabel()
	}

	return resp
}

type deleteResponse struct {
	ID              uuid.UUID `json:"id"`
	CollectionEmpty bool      `json:"collection_empty"`
}
