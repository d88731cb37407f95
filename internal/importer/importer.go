package importer

import (
	"io"

	"github.com/MrJamesThe3rd/budgettracker/internal/ledger"
)

// Entry is one parsed row, with its 1-based line in the source file.
type Entry struct {
	Line   int
	Params ledger.AddParams
}

type Parser interface {
	Parse(r io.Reader) ([]Entry, error)
}
