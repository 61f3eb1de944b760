package core

// Breakdown decomposes change into the fewest pieces of the given set.
//
// The amount is truncated toward zero first; the fractional part is reported
// in Dropped and never rounded up. Denominations with a zero count are left
// out. NaN, zero, negative and out of range amounts give an empty
// breakdown; Validate never accepts the latter.
func Breakdown(change Amount, denominations DenominationSet) ChangeBreakdown {
	remaining, dropped := change.Units()
	result := ChangeBreakdown{Entries: []Entry{}, Dropped: dropped}
	if remaining <= 0 {
		return result
	}
	result.Amount = remaining

	for _, d := range denominations.values {
		count := remaining / d
		if count == 0 {
			continue
		}
		result.Entries = append(result.Entries, Entry{
			Denomination: d,
			Count:        count,
			Subtotal:     d * count,
		})
		result.TotalNoteCount += count
		remaining %= d
	}
	return result
}
