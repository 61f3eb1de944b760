package core

// Validate checks a bill amount and the cash handed over.
//
// Both base checks always run, so a submission with a bad bill and bad cash
// reports two reasons. Amounts must be positive and below MaxUnits. The cross
// check between the two values only happens once both pass. Nothing here
// mutates its inputs.
func Validate(bill, cash Amount, currency Currency) ValidationResult {
	var reasons []Reason

	switch {
	case !bill.IsPositive():
		reasons = append(reasons, Reason{
			Code:    InvalidBillAmount,
			Field:   FieldBillAmount,
			Message: "Please enter a valid bill amount greater than 0",
		})
	case !bill.InRange():
		reasons = append(reasons, Reason{
			Code:    InvalidBillAmount,
			Field:   FieldBillAmount,
			Message: "Bill amount must be less than " + currency.FormatUnits(MaxUnits),
		})
	}
	switch {
	case !cash.IsPositive():
		reasons = append(reasons, Reason{
			Code:    InvalidCashAmount,
			Field:   FieldCashGiven,
			Message: "Please enter a valid cash amount greater than 0",
		})
	case !cash.InRange():
		reasons = append(reasons, Reason{
			Code:    InvalidCashAmount,
			Field:   FieldCashGiven,
			Message: "Cash amount must be less than " + currency.FormatUnits(MaxUnits),
		})
	}
	if len(reasons) > 0 {
		return ValidationResult{Outcome: Rejected, Reasons: reasons}
	}

	switch cash.Cmp(bill) {
	case -1:
		return ValidationResult{Outcome: Rejected, Reasons: []Reason{{
			Code:    InsufficientCash,
			Field:   FieldCashGiven,
			Message: "Cash given is less than bill amount! Please pay at least " + currency.Symbol + bill.String(),
		}}}
	case 0:
		return ValidationResult{Outcome: ExactPayment}
	default:
		return ValidationResult{Outcome: Accepted}
	}
}
