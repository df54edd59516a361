package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/strongo/decimal"
)

// ErrCurrencyMismatch is returned by any Money operation whose operands carry
// different currency codes. Amounts in different currencies are never
// converted or combined.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// settleTolerance is the magnitude (in major units) below which a balance is
// considered settled. Upstream APIs compute amounts with IEEE-754 doubles, so
// "is this zero" checks absorb up to a cent of float noise instead of testing
// exact equality.
var settleTolerance = 0.01

// SetSettleTolerance overrides the settled-balance tolerance, in cents.
func SetSettleTolerance(cents int64) {
	settleTolerance = float64(cents) / 100
}

// SettleTolerance returns the current settled-balance tolerance in major units.
func SettleTolerance() float64 {
	return settleTolerance
}

// Money is a currency-tagged amount stored as fixed-point minor units
// (cents). Storing cents as integers keeps sums exact; floats only appear at
// the network boundary.
type Money struct {
	Amount   decimal.Decimal64p2
	Currency string
}

// NewMoney builds a Money from an amount in minor units (cents).
func NewMoney(cents int64, currency string) Money {
	return Money{Amount: decimal.Decimal64p2(cents), Currency: currency}
}

// MoneyFromFloat converts an upstream float amount to Money. Values within
// the settle tolerance collapse to zero before quantization so float noise
// from the wire never survives as a phantom cent.
func MoneyFromFloat(amount float64, currency string) Money {
	if math.Abs(amount) < settleTolerance {
		return Money{Amount: 0, Currency: currency}
	}
	return Money{Amount: decimal.NewDecimal64p2FromFloat64(amount), Currency: currency}
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return int64(m.Amount)
}

// Float returns the amount in major units for wire serialization.
func (m Money) Float() float64 {
	return m.Amount.AsFloat64()
}

func (m Money) sameCurrency(o Money) error {
	if m.Currency != o.Currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return nil
}

// Add returns m + o. Fails if the currencies differ.
func (m Money) Add(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount + o.Amount, Currency: m.Currency}, nil
}

// Sub returns m - o. Fails if the currencies differ.
func (m Money) Sub(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount - o.Amount, Currency: m.Currency}, nil
}

// Negate returns m with the sign flipped.
func (m Money) Negate() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m.Amount < 0 {
		return m.Negate()
	}
	return m
}

// IsZero reports whether the amount is settled, i.e. within the configured
// tolerance of zero.
func (m Money) IsZero() bool {
	return math.Abs(m.Amount.AsFloat64()) < settleTolerance
}

// Compare returns -1, 0 or 1. Fails if the currencies differ.
func (m Money) Compare(o Money) (int, error) {
	if err := m.sameCurrency(o); err != nil {
		return 0, err
	}
	switch {
	case m.Amount < o.Amount:
		return -1, nil
	case m.Amount > o.Amount:
		return 1, nil
	default:
		return 0, nil
	}
}

func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON renders the amount as a decimal string, never a binary float.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.Amount.String(), Currency: m.Currency})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := decimal.ParseDecimal64p2(raw.Amount)
	if err != nil {
		return fmt.Errorf("invalid money amount %q: %w", raw.Amount, err)
	}
	m.Amount = amount
	m.Currency = raw.Currency
	return nil
}
