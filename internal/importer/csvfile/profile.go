package csvfile

type amountMode int

const (
	// amountSigned is one column whose sign picks the kind: negative is an expense.
	amountSigned amountMode = iota
	// amountSplit is separate debit (expense) and credit (income) columns.
	amountSplit
	// amountWithKind is a positive amount plus an explicit kind column.
	amountWithKind
)

type decimalMark int

const (
	decimalPoint decimalMark = iota
	decimalComma
)

// Profile describes the column layout of one CSV export. Profiles are tried in order,
// so more specific layouts come first.
type Profile struct {
	Name        string
	Comma       rune
	DateCol     string
	DateLayout  string
	TimeCol     string
	TitleCol    string
	NoteCol     string
	KindCol     string
	AmountMode  amountMode
	AmountCol   string
	DebitCol    string
	CreditCol   string
	DecimalMark decimalMark
}

// requiredCols returns the columns that must all be present for p to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.TitleCol}

	switch p.AmountMode {
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	case amountWithKind:
		cols = append(cols, p.AmountCol, p.KindCol)
	}

	return cols
}

var profiles = []Profile{
	{
		// Files written by the exporter.
		Name:       "budgettracker",
		Comma:      ',',
		DateCol:    "Date",
		DateLayout: "2006-01-02",
		TimeCol:    "Time",
		TitleCol:   "Title",
		NoteCol:    "Note",
		KindCol:    "Kind",
		AmountMode: amountWithKind,
		AmountCol:  "Amount",
	},
	{
		Name:       "generic",
		Comma:      ',',
		DateCol:    "Date",
		DateLayout: "2006-01-02",
		TitleCol:   "Description",
		AmountMode: amountSigned,
		AmountCol:  "Amount",
	},
	{
		Name:        "cgd-cartao",
		Comma:       ';',
		DateCol:     "Data",
		DateLayout:  "02-01-2006",
		TitleCol:    "Descrição",
		AmountMode:  amountSplit,
		DebitCol:    "Débito",
		CreditCol:   "Crédito",
		DecimalMark: decimalComma,
	},
	{
		Name:        "cgd-extrato",
		Comma:       ';',
		DateCol:     "Data mov.",
		DateLayout:  "02-01-2006",
		TitleCol:    "Descrição",
		AmountMode:  amountSigned,
		AmountCol:   "Movimento",
		DecimalMark: decimalComma,
	},
	{
		Name:        "cgd-conta",
		Comma:       ';',
		DateCol:     "Data mov.",
		DateLayout:  "02-01-2006",
		TitleCol:    "Descrição",
		AmountMode:  amountSigned,
		AmountCol:   "Montante",
		DecimalMark: decimalComma,
	},
}
