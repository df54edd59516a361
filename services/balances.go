package services

import (
	"sort"

	"github.com/google/uuid"

	"splitsight-bff/models"
)

// AggregateBalances combines per-group balance snapshots into one per-friend
// picture for the viewer. Amounts are accumulated per friend per currency and
// never netted across currencies; each counterpart row also lands in the
// friend's per-group breakdown, so the breakdown rows for a currency always
// sum to that currency's total.
//
// The viewer's own row is excluded. A friend whose balance is settled in
// every currency is still returned as long as they share a group with the
// viewer, flagged Settled, because the UI renders settled friends too.
func AggregateBalances(perGroup []models.GroupBalances, viewer models.Participant) ([]models.FriendBalance, error) {
	type friendAcc struct {
		friend      models.Participant
		perCurrency map[string]models.Money
		perGroup    []models.GroupAmount
	}

	accs := make(map[uuid.UUID]*friendAcc)
	var order []uuid.UUID // first-seen order, re-sorted below

	for _, group := range perGroup {
		for _, row := range group.Balances {
			if row.Participant.UserID == viewer.UserID {
				continue
			}

			acc, ok := accs[row.Participant.UserID]
			if !ok {
				acc = &friendAcc{
					friend:      row.Participant,
					perCurrency: make(map[string]models.Money),
				}
				accs[row.Participant.UserID] = acc
				order = append(order, row.Participant.UserID)
			}

			running, ok := acc.perCurrency[row.Amount.Currency]
			if !ok {
				running = models.NewMoney(0, row.Amount.Currency)
			}
			running, err := running.Add(row.Amount)
			if err != nil {
				return nil, err
			}
			acc.perCurrency[row.Amount.Currency] = running
			acc.perGroup = append(acc.perGroup, models.GroupAmount{
				Group:  group.Group,
				Amount: row.Amount,
			})
		}
	}

	friends := make([]models.FriendBalance, 0, len(order))
	for _, id := range order {
		acc := accs[id]

		currencies := make([]string, 0, len(acc.perCurrency))
		for currency := range acc.perCurrency {
			currencies = append(currencies, currency)
		}
		sort.Strings(currencies)

		settled := true
		perCurrency := make([]models.CurrencyAmount, 0, len(currencies))
		for _, currency := range currencies {
			amount := acc.perCurrency[currency]
			if !amount.IsZero() {
				settled = false
			}
			perCurrency = append(perCurrency, models.CurrencyAmount{Currency: currency, Amount: amount})
		}

		friends = append(friends, models.FriendBalance{
			Friend:      acc.friend,
			PerCurrency: perCurrency,
			PerGroup:    acc.perGroup,
			Settled:     settled,
		})
	}

	sort.SliceStable(friends, func(i, j int) bool {
		if friends[i].Friend.Name != friends[j].Friend.Name {
			return friends[i].Friend.Name < friends[j].Friend.Name
		}
		return friends[i].Friend.UserID.String() < friends[j].Friend.UserID.String()
	})

	return friends, nil
}

// SummarizeBalances folds aggregated friend balances into the viewer's
// per-currency grand totals: what others owe them and what they owe others.
func SummarizeBalances(friends []models.FriendBalance) models.OverallBalanceSummary {
	owed := make(map[string]models.Money)
	owing := make(map[string]models.Money)

	for _, friend := range friends {
		for _, entry := range friend.PerCurrency {
			if entry.Amount.IsZero() {
				continue
			}
			bucket := owed
			amount := entry.Amount
			if amount.Cents() < 0 {
				bucket = owing
				amount = amount.Abs()
			}
			running, ok := bucket[entry.Currency]
			if !ok {
				running = models.NewMoney(0, entry.Currency)
			}
			// Same currency by construction, the error path is unreachable.
			running, _ = running.Add(amount)
			bucket[entry.Currency] = running
		}
	}

	return models.OverallBalanceSummary{
		TotalOwed:  sortedCurrencyAmounts(owed),
		TotalOwing: sortedCurrencyAmounts(owing),
		Friends:    friends,
	}
}

func sortedCurrencyAmounts(byCurrency map[string]models.Money) []models.CurrencyAmount {
	currencies := make([]string, 0, len(byCurrency))
	for currency := range byCurrency {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	amounts := make([]models.CurrencyAmount, 0, len(currencies))
	for _, currency := range currencies {
		amounts = append(amounts, models.CurrencyAmount{Currency: currency, Amount: byCurrency[currency]})
	}
	return amounts
}
