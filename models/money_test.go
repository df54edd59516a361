package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(2050, "USD")
	b := NewMoney(550, "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(2600), sum.Cents())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), diff.Cents())

	assert.Equal(t, int64(-2050), a.Negate().Cents())
	assert.Equal(t, int64(2050), a.Negate().Abs().Cents())

	cmp, err := a.Compare(b)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = b.Compare(a)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = a.Compare(a)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	usd := NewMoney(100, "USD")
	eur := NewMoney(100, "EUR")

	_, err := usd.Add(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = usd.Sub(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = usd.Compare(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoneySettledTolerance(t *testing.T) {
	// Float noise below the tolerance collapses to zero at conversion;
	// anything at or above a cent survives.
	assert.True(t, MoneyFromFloat(0.009, "USD").IsZero())
	assert.True(t, MoneyFromFloat(-0.009, "USD").IsZero())
	assert.False(t, MoneyFromFloat(0.011, "USD").IsZero())
	assert.False(t, MoneyFromFloat(-0.011, "USD").IsZero())

	assert.True(t, NewMoney(0, "USD").IsZero())
	assert.False(t, NewMoney(1, "USD").IsZero())
}

func TestMoneyFromFloatQuantizes(t *testing.T) {
	m := MoneyFromFloat(33.34, "USD")
	assert.Equal(t, int64(3334), m.Cents())

	// Classic IEEE-754 artifact: 0.1 + 0.2
	m = MoneyFromFloat(0.1+0.2, "USD")
	assert.Equal(t, int64(30), m.Cents())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoney(-1234, "EUR")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"-12.34","currency":"EUR"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, back)
}
