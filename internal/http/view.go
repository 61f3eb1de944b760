package http

import (
	"cashchange/internal/core"
)

// rowView is one line of the breakdown table.
type rowView struct {
	Label    string
	Count    int64
	Subtotal string
}

// resultView is everything the result partial renders. It is built from a
// settlement and holds only display strings.
type resultView struct {
	Outcome    string
	Notice     string
	NoticeType NotificationType
	BillError  string
	CashError  string

	// CashInvalid highlights the cash field even without an inline message.
	CashInvalid bool

	ShowSummary bool
	Bill        string
	Cash        string
	Change      string
	Dropped     string
	Rows        []rowView
	TotalNotes  int64
}

// formView carries the values to refill the form with.
type formView struct {
	Bill string
	Cash string
}

type pageView struct {
	Currency      core.Currency
	Denominations []string
	Form          formView
	Result        *resultView

	// DismissMs is how long a success banner stays up; 0 keeps it.
	DismissMs int64
}

func newResultView(s core.Settlement, currency core.Currency) *resultView {
	v := &resultView{
		Outcome: string(s.Validation.Outcome),
		Notice:  s.Notice(currency),
	}
	fieldErrors := s.Validation.FieldErrors()
	if !s.Validation.Has(core.InsufficientCash) {
		v.CashError = fieldErrors[core.FieldCashGiven]
	}
	v.BillError = fieldErrors[core.FieldBillAmount]
	_, v.CashInvalid = fieldErrors[core.FieldCashGiven]

	switch s.Validation.Outcome {
	case core.Rejected:
		v.NoticeType = NotificationError
	default:
		v.NoticeType = NotificationSuccess
	}

	if s.Breakdown == nil {
		return v
	}

	v.ShowSummary = true
	v.Bill = currency.Format(s.Bill)
	v.Cash = currency.Format(s.Cash)
	v.Change = currency.Format(s.Change)
	v.TotalNotes = s.Breakdown.TotalNoteCount
	if s.Breakdown.Dropped.Decimal().IsPositive() {
		v.Dropped = currency.Format(s.Breakdown.Dropped)
	}
	for _, e := range s.Breakdown.Entries {
		v.Rows = append(v.Rows, rowView{
			Label:    denominationLabel(e.Denomination, currency),
			Count:    e.Count,
			Subtotal: currency.FormatUnits(e.Subtotal),
		})
	}
	return v
}

func newPageView(register core.Register, form formView, result *resultView) pageView {
	page := pageView{Currency: register.Currency, Form: form, Result: result}
	for _, d := range register.Denominations.Values() {
		page.Denominations = append(page.Denominations, denominationLabel(d, register.Currency))
	}
	return page
}

// denominationLabel renders "₹500 Note" or "₹2 Coin".
func denominationLabel(d int64, currency core.Currency) string {
	return currency.FormatUnits(d) + " " + currency.Kind(d)
}
