package models

import "github.com/google/uuid"

// SplitMethod is the rule used to divide one expense among participants.
type SplitMethod string

const (
	SplitEqual      SplitMethod = "equal"      // equal shares, last participant absorbs residual cents
	SplitPercentage SplitMethod = "percentage" // per-participant percent, must sum to 100
	SplitCustom     SplitMethod = "custom"     // per-participant exact amounts, must sum to total
)

// ExpenseInput is one expense entry plus its chosen split method. It is built
// transiently by the entry flow and consumed once by the split calculator.
type ExpenseInput struct {
	TotalAmount  Money
	Payer        Participant
	Method       SplitMethod
	Participants []Participant           // the selected participants, in entry order
	Percentages  map[uuid.UUID]float64   // percentage method only
	Amounts      map[uuid.UUID]Money     // custom method only
}

// Split is one row of the calculator's output: what one participant owes for
// the expense. Every method guarantees sum(splits) == total to the cent.
type Split struct {
	Participant Participant `json:"participant"`
	Amount      Money       `json:"amount"`
	Percentage  float64     `json:"percentage,omitempty"`
}

// Request structs

type MemberInput struct {
	UserID  string `json:"user_id" binding:"required"`
	Name    string `json:"name"`
	IsGuest bool   `json:"is_guest"`
}

type SplitInput struct {
	UserID string  `json:"user_id" binding:"required"`
	Value  float64 `json:"value"` // percentage or exact amount, per split_method
}

type ComputeSplitsRequest struct {
	Amount       float64       `json:"amount" binding:"required,gt=0"`
	Currency     string        `json:"currency" binding:"required,len=3"`
	PaidBy       string        `json:"paid_by" binding:"required"`
	SplitMethod  string        `json:"split_method" binding:"required,oneof=equal percentage custom"`
	Participants []MemberInput `json:"participants" binding:"required,min=1"`
	Splits       []SplitInput  `json:"splits"` // required for percentage and custom
}

type CreateExpenseRequest struct {
	Title               string `json:"title" binding:"required"`
	Category            string `json:"category"`
	Note                string `json:"note"`
	Date                string `json:"date"` // RFC 3339, defaults to now upstream
	ComputeSplitsRequest
}
