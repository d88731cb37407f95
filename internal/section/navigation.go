package section

import (
	"fmt"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

type Route int

const (
	// RouteSeeMore asks for the full list of a day that no longer fits in the section.
	RouteSeeMore Route = iota
	RouteDetail
)

// NavigationRequest is emitted by a section for the presentation layer to act on.
type NavigationRequest struct {
	Route   Route
	Kind    record.Kind
	Bucket  bucket.Bucket
	Records []*record.Record
	Record  *record.Record
}

// ConfirmationRequest describes the two-option prompt shown before a delete.
type ConfirmationRequest struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	Count        int
}

// NewConfirmation builds the delete prompt for n records of kind.
func NewConfirmation(kind record.Kind, n int) ConfirmationRequest {
	subject := "this " + string(kind)
	if n != 1 {
		subject = "these " + kind.Plural()
	}

	return ConfirmationRequest{
		Title:        fmt.Sprintf("Are you sure you want to delete %s?", subject),
		Message:      "You cannot undo this action once done.",
		ConfirmLabel: "Delete",
		CancelLabel:  "Cancel",
		Count:        n,
	}
}
