package core

import (
	"errors"
	"strconv"
)

const (
	Accepted     Outcome = "accepted"
	Rejected     Outcome = "rejected"
	ExactPayment Outcome = "exact_payment"
)

const (
	InvalidBillAmount ReasonCode = "invalid_bill_amount"
	InvalidCashAmount ReasonCode = "invalid_cash_amount"
	InsufficientCash  ReasonCode = "insufficient_cash"
)

// Form field names reasons are attached to.
const (
	FieldBillAmount = "bill_amount"
	FieldCashGiven  = "cash_given"
)

type (
	Outcome    string
	ReasonCode string

	// Reason explains why a submission was rejected.
	Reason struct {
		Code    ReasonCode `json:"code"`
		Field   string     `json:"field"`
		Message string     `json:"message"`
	}

	ValidationResult struct {
		Outcome Outcome  `json:"outcome"`
		Reasons []Reason `json:"reasons,omitempty"`
	}

	// Currency describes the single currency the register works in.
	Currency struct {
		Code   string
		Symbol string
		// Denominations at or above NoteThreshold are notes, below are coins.
		NoteThreshold int64
	}

	// Entry is one line of a breakdown: Count pieces of Denomination.
	Entry struct {
		Denomination int64 `json:"denomination"`
		Count        int64 `json:"count"`
		Subtotal     int64 `json:"subtotal"`
	}

	ChangeBreakdown struct {
		Entries        []Entry `json:"entries"`
		TotalNoteCount int64   `json:"total_note_count"`
		// Amount is the truncated whole-unit change that was decomposed.
		Amount int64 `json:"amount"`
		// Dropped is the fractional change below the smallest unit.
		Dropped Amount `json:"dropped"`
	}

	// Register holds the fixed configuration a settlement runs against.
	Register struct {
		Currency      Currency
		Denominations DenominationSet
	}
)

var (
	ErrEmptyDenominations      = errors.New("denomination set is empty")
	ErrNonPositiveDenomination = errors.New("denomination must be greater than 0")
	ErrDenominationOrder       = errors.New("denominations must be strictly descending")
	ErrMissingUnitDenomination = errors.New("denomination set must end with 1")
	ErrDenominationTooLarge    = errors.New("denomination is too large")
)

// INR is the default currency.
var INR = Currency{Code: "INR", Symbol: "₹", NoteThreshold: 10}

// Format renders an amount with the currency symbol and two decimals.
func (c Currency) Format(a Amount) string {
	return c.Symbol + a.Fixed()
}

// FormatUnits renders a whole number of units with the currency symbol.
func (c Currency) FormatUnits(units int64) string {
	return c.Symbol + strconv.FormatInt(units, 10)
}

// Kind returns "Note" or "Coin" for a denomination.
func (c Currency) Kind(denomination int64) string {
	if denomination >= c.NoteThreshold {
		return "Note"
	}
	return "Coin"
}

// IsAccepted reports whether change should be computed.
func (r ValidationResult) IsAccepted() bool {
	return r.Outcome == Accepted
}

// Has reports whether the result carries a reason with the given code.
func (r ValidationResult) Has(code ReasonCode) bool {
	for _, reason := range r.Reasons {
		if reason.Code == code {
			return true
		}
	}
	return false
}

// FieldErrors maps form field names to their reason messages.
func (r ValidationResult) FieldErrors() map[string]string {
	out := make(map[string]string, len(r.Reasons))
	for _, reason := range r.Reasons {
		if _, seen := out[reason.Field]; !seen {
			out[reason.Field] = reason.Message
		}
	}
	return out
}

// Notice returns the banner text for terminal outcomes, or "" if none applies.
func (r ValidationResult) Notice() string {
	switch r.Outcome {
	case ExactPayment:
		return "Exact amount paid! No change to return."
	case Rejected:
		for _, reason := range r.Reasons {
			if reason.Code == InsufficientCash {
				return reason.Message
			}
		}
	}
	return ""
}

// IsEmpty reports whether no pieces are returned.
func (b ChangeBreakdown) IsEmpty() bool {
	return len(b.Entries) == 0
}
