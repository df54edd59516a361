package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitsight-bff/models"
)

func group(name, currency string) models.GroupRef {
	return models.GroupRef{ID: uuid.New(), Name: name, Currency: currency}
}

func TestAggregateBalancesCurrencySegregation(t *testing.T) {
	viewer := participant("Viewer")
	friend := participant("Sam")

	trip := group("Trip", "USD")
	flat := group("Flat", "EUR")

	perGroup := []models.GroupBalances{
		{
			Group: trip,
			Balances: []models.Balance{
				{Participant: friend, Amount: models.NewMoney(2000, "USD")},
			},
		},
		{
			Group: flat,
			Balances: []models.Balance{
				{Participant: friend, Amount: models.NewMoney(-500, "EUR")},
			},
		},
	}

	friends, err := AggregateBalances(perGroup, viewer)
	require.NoError(t, err)
	require.Len(t, friends, 1)

	fb := friends[0]
	assert.Equal(t, friend.UserID, fb.Friend.UserID)
	assert.False(t, fb.Settled)

	// One entry per currency, never a combined value. Currencies sort by code.
	require.Len(t, fb.PerCurrency, 2)
	assert.Equal(t, "EUR", fb.PerCurrency[0].Currency)
	assert.Equal(t, int64(-500), fb.PerCurrency[0].Amount.Cents())
	assert.Equal(t, "USD", fb.PerCurrency[1].Currency)
	assert.Equal(t, int64(2000), fb.PerCurrency[1].Amount.Cents())

	require.Len(t, fb.PerGroup, 2)
	assert.Equal(t, trip.ID, fb.PerGroup[0].Group.ID)
	assert.Equal(t, flat.ID, fb.PerGroup[1].Group.ID)
}

func TestAggregateBalancesExcludesViewer(t *testing.T) {
	viewer := participant("Viewer")
	friend := participant("Sam")

	perGroup := []models.GroupBalances{
		{
			Group: group("Trip", "USD"),
			Balances: []models.Balance{
				{Participant: viewer, Amount: models.NewMoney(-2000, "USD")},
				{Participant: friend, Amount: models.NewMoney(2000, "USD")},
			},
		},
	}

	friends, err := AggregateBalances(perGroup, viewer)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	for _, fb := range friends {
		assert.NotEqual(t, viewer.UserID, fb.Friend.UserID)
	}
}

func TestAggregateBalancesBreakdownSumsToTotals(t *testing.T) {
	viewer := participant("Viewer")
	friend := participant("Sam")

	groups := []models.GroupBalances{
		{
			Group: group("Trip", "USD"),
			Balances: []models.Balance{
				{Participant: friend, Amount: models.NewMoney(1250, "USD")},
			},
		},
		{
			Group: group("Dinner club", "USD"),
			Balances: []models.Balance{
				{Participant: friend, Amount: models.NewMoney(-750, "USD")},
			},
		},
	}

	friends, err := AggregateBalances(groups, viewer)
	require.NoError(t, err)
	require.Len(t, friends, 1)

	fb := friends[0]
	require.Len(t, fb.PerCurrency, 1)
	assert.Equal(t, int64(500), fb.PerCurrency[0].Amount.Cents())

	var breakdownSum int64
	for _, row := range fb.PerGroup {
		breakdownSum += row.Amount.Cents()
	}
	assert.Equal(t, fb.PerCurrency[0].Amount.Cents(), breakdownSum)
}

func TestAggregateBalancesSettledFriendStillReturned(t *testing.T) {
	viewer := participant("Viewer")
	friend := participant("Sam")

	perGroup := []models.GroupBalances{
		{
			Group: group("Trip", "USD"),
			Balances: []models.Balance{
				{Participant: friend, Amount: models.NewMoney(0, "USD")},
			},
		},
	}

	friends, err := AggregateBalances(perGroup, viewer)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.True(t, friends[0].Settled)
}

func TestAggregateBalancesSortsFriendsByName(t *testing.T) {
	viewer := participant("Viewer")
	zoe := participant("Zoe")
	amy := participant("Amy")

	perGroup := []models.GroupBalances{
		{
			Group: group("Trip", "USD"),
			Balances: []models.Balance{
				{Participant: zoe, Amount: models.NewMoney(100, "USD")},
				{Participant: amy, Amount: models.NewMoney(200, "USD")},
			},
		},
	}

	friends, err := AggregateBalances(perGroup, viewer)
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, "Amy", friends[0].Friend.Name)
	assert.Equal(t, "Zoe", friends[1].Friend.Name)
}

func TestSummarizeBalances(t *testing.T) {
	viewer := participant("Viewer")
	sam := participant("Sam")
	kim := participant("Kim")

	perGroup := []models.GroupBalances{
		{
			Group: group("Trip", "USD"),
			Balances: []models.Balance{
				{Participant: sam, Amount: models.NewMoney(2000, "USD")},
				{Participant: kim, Amount: models.NewMoney(-1500, "USD")},
			},
		},
		{
			Group: group("Flat", "EUR"),
			Balances: []models.Balance{
				{Participant: sam, Amount: models.NewMoney(-500, "EUR")},
			},
		},
	}

	friends, err := AggregateBalances(perGroup, viewer)
	require.NoError(t, err)

	summary := SummarizeBalances(friends)
	require.Len(t, summary.TotalOwed, 1)
	assert.Equal(t, "USD", summary.TotalOwed[0].Currency)
	assert.Equal(t, int64(2000), summary.TotalOwed[0].Amount.Cents())

	require.Len(t, summary.TotalOwing, 2)
	assert.Equal(t, "EUR", summary.TotalOwing[0].Currency)
	assert.Equal(t, int64(500), summary.TotalOwing[0].Amount.Cents())
	assert.Equal(t, "USD", summary.TotalOwing[1].Currency)
	assert.Equal(t, int64(1500), summary.TotalOwing[1].Amount.Cents())
}
