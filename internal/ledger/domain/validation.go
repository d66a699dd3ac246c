package domain

// ValidateEntry checks sign conventions before an entry is appended:
// revenue amounts must be positive, expense amounts negative.
func ValidateEntry(entry Entry) error {
	if entry.OccurredAt.IsZero() {
		return ErrInvalidOccurredAt
	}
	switch entry.Type {
	case TransactionTypeRevenue:
		if entry.Amount <= 0 {
			return ErrInvalidAmount
		}
	case TransactionTypeExpense:
		if entry.Amount >= 0 {
			return ErrInvalidAmount
		}
	default:
		return ErrInvalidType
	}
	return nil
}
