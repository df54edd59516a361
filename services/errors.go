package services

import (
	"errors"
	"fmt"

	"splitsight-bff/models"
)

// Validation failures surfaced to the caller. None of these are retried:
// they are user-input problems, and the caller is expected to block
// submission and show the offending discrepancy.
var (
	ErrEmptySelection     = errors.New("no participants selected")
	ErrUnknownSplitMethod = errors.New("unknown split method")
	ErrAmbiguousCurrency  = errors.New("friend has balances in more than one currency, pick one")
)

// PercentageMismatchError reports a percentage split whose percents do not
// add up to 100. Observed carries the sum so the UI can show e.g.
// "Total: 97.00% / 100%".
type PercentageMismatchError struct {
	Observed float64
}

func (e *PercentageMismatchError) Error() string {
	return fmt.Sprintf("percentages must add up to 100, got %.2f", e.Observed)
}

// AmountMismatchError reports split shares that do not add up to the expense
// total: custom amounts entered short or over, or a percentage split whose
// rounded shares drift off the total by a cent.
type AmountMismatchError struct {
	Observed models.Money
	Expected models.Money
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("split amounts (%s) don't add up to total (%s)", e.Observed, e.Expected)
}
