package services

import (
	"fmt"
	"math"

	"splitsight-bff/models"
)

// ComputeSplits turns one expense entry plus its chosen split method into a
// validated list of per-participant shares. For every method the shares sum
// to the total exactly, to the cent, and recomputing from the same input
// yields the same list in the same order.
func ComputeSplits(input models.ExpenseInput) ([]models.Split, error) {
	switch input.Method {
	case models.SplitEqual:
		return computeEqualSplits(input)
	case models.SplitPercentage:
		return computePercentageSplits(input)
	case models.SplitCustom:
		return computeCustomSplits(input)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSplitMethod, input.Method)
	}
}

// computeEqualSplits divides the total evenly over the selected participants.
// Each share is the floored per-head amount in cents; the last participant in
// entry order absorbs the residual cents so the sum stays exact. Every
// selected participant gets a row, even for a zero share.
func computeEqualSplits(input models.ExpenseInput) ([]models.Split, error) {
	n := int64(len(input.Participants))
	if n == 0 {
		return nil, ErrEmptySelection
	}

	total := input.TotalAmount.Cents()
	perHead := total / n
	lastShare := total - perHead*(n-1)

	splits := make([]models.Split, 0, n)
	for i, p := range input.Participants {
		cents := perHead
		if int64(i) == n-1 {
			cents = lastShare
		}
		splits = append(splits, models.Split{
			Participant: p,
			Amount:      models.NewMoney(cents, input.TotalAmount.Currency),
		})
	}
	return splits, nil
}

// computePercentageSplits assigns each participant round(total * pct / 100).
// The percents must add up to 100 within tolerance; rounding residuals are
// not auto-corrected here because a percentage split has no natural "last
// payer" to absorb drift, so a bad input is rejected instead.
func computePercentageSplits(input models.ExpenseInput) ([]models.Split, error) {
	if len(input.Participants) == 0 {
		return nil, ErrEmptySelection
	}

	var totalPct float64
	for _, p := range input.Participants {
		totalPct += input.Percentages[p.UserID]
	}
	if math.Abs(totalPct-100) >= models.SettleTolerance() {
		return nil, &PercentageMismatchError{Observed: totalPct}
	}

	total := input.TotalAmount.Cents()
	var distributed int64
	splits := make([]models.Split, 0, len(input.Participants))
	for _, p := range input.Participants {
		pct := input.Percentages[p.UserID]
		if pct == 0 {
			continue
		}
		cents := int64(math.Round(float64(total) * pct / 100))
		distributed += cents
		splits = append(splits, models.Split{
			Participant: p,
			Amount:      models.NewMoney(cents, input.TotalAmount.Currency),
			Percentage:  pct,
		})
	}
	// Percent rounding can still drift off the total by a cent even when the
	// percents sum to 100 (e.g. 33.33/33.33/33.34). Those inputs are rejected
	// rather than silently patched.
	if distributed != total {
		return nil, &AmountMismatchError{
			Observed: models.NewMoney(distributed, input.TotalAmount.Currency),
			Expected: input.TotalAmount,
		}
	}
	return splits, nil
}

// computeCustomSplits takes each participant's exact share as entered. The
// shares must add up to the total within tolerance; no rounding is performed.
func computeCustomSplits(input models.ExpenseInput) ([]models.Split, error) {
	if len(input.Participants) == 0 {
		return nil, ErrEmptySelection
	}

	observed := models.NewMoney(0, input.TotalAmount.Currency)
	for _, p := range input.Participants {
		share, ok := input.Amounts[p.UserID]
		if !ok {
			continue
		}
		sum, err := observed.Add(share)
		if err != nil {
			return nil, err
		}
		observed = sum
	}

	diff, err := observed.Sub(input.TotalAmount)
	if err != nil {
		return nil, err
	}
	if !diff.IsZero() {
		return nil, &AmountMismatchError{Observed: observed, Expected: input.TotalAmount}
	}

	splits := make([]models.Split, 0, len(input.Participants))
	for _, p := range input.Participants {
		share, ok := input.Amounts[p.UserID]
		if !ok || share.Cents() == 0 {
			continue
		}
		splits = append(splits, models.Split{Participant: p, Amount: share})
	}
	return splits, nil
}
