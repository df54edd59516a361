package models

// Balance is the signed net position of one participant in one group:
// positive = owed to them, negative = they owe. Balances are computed by the
// upstream ledger; this layer only reads snapshots.
type Balance struct {
	Participant Participant `json:"participant"`
	Amount      Money       `json:"amount"`
}

// GroupBalances is one group's balance snapshot. Each group carries a single
// currency; amounts from different groups are never mixed across currencies.
type GroupBalances struct {
	Group    GroupRef  `json:"group"`
	Balances []Balance `json:"balances"`
}

// CurrencyAmount is a per-currency net total.
type CurrencyAmount struct {
	Currency string `json:"currency"`
	Amount   Money  `json:"amount"`
}

// GroupAmount is one row of a friend's per-group breakdown.
type GroupAmount struct {
	Group  GroupRef `json:"group"`
	Amount Money    `json:"amount"`
}

// FriendBalance is the viewer's net position against one other person,
// aggregated across every group they share. Currencies are kept segregated:
// PerCurrency has one entry per currency, and the breakdown rows for a
// currency always sum to that currency's entry.
type FriendBalance struct {
	Friend      Participant      `json:"friend"`
	PerCurrency []CurrencyAmount `json:"per_currency"`
	PerGroup    []GroupAmount    `json:"per_group"`
	Settled     bool             `json:"settled"`
}

// OverallBalanceSummary is returned for GET /api/balances.
type OverallBalanceSummary struct {
	TotalOwed  []CurrencyAmount `json:"total_owed"`  // others owe the viewer, per currency
	TotalOwing []CurrencyAmount `json:"total_owing"` // the viewer owes others, per currency
	Friends    []FriendBalance  `json:"friends"`
}
