package core

// Settlement is the outcome of one form submission.
type Settlement struct {
	Bill       Amount           `json:"bill"`
	Cash       Amount           `json:"cash"`
	Change     Amount           `json:"change"`
	Validation ValidationResult `json:"validation"`
	// Breakdown is set only when Validation is Accepted.
	Breakdown *ChangeBreakdown `json:"breakdown,omitempty"`
}

// Settle validates the inputs and, when accepted, breaks down cash - bill.
func (r Register) Settle(bill, cash Amount) Settlement {
	s := Settlement{
		Bill:       bill,
		Cash:       cash,
		Change:     NaN,
		Validation: Validate(bill, cash, r.Currency),
	}
	switch s.Validation.Outcome {
	case ExactPayment:
		s.Change = Amount{}
	case Accepted:
		s.Change = Change(bill, cash)
		b := Breakdown(s.Change, r.Denominations)
		s.Breakdown = &b
	}
	return s
}

// Notice returns the banner text for the settlement, if any.
func (s Settlement) Notice(currency Currency) string {
	if s.Validation.IsAccepted() {
		return "Change calculated successfully! Return " + currency.Format(s.Change) + " to the customer."
	}
	return s.Validation.Notice()
}
