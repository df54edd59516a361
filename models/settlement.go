package models

// SimplifiedSettlement is one edge of the minimum-transaction debt graph for
// a group. The graph is computed by the upstream ledger; this layer never
// invents edges, it only indexes them by participant.
type SimplifiedSettlement struct {
	From   Participant `json:"from"`
	To     Participant `json:"to"`
	Amount Money       `json:"amount"`
}

// Edge is one directed debt against a single counterpart.
type Edge struct {
	Counterpart Participant `json:"counterpart"`
	Amount      Money       `json:"amount"`
}

// MemberBreakdown is a participant's directional view of the simplified
// settlement graph: who they owe and who owes them back. Both sides may be
// non-empty at once; netting across counterparts is the upstream optimizer's
// job, not ours.
type MemberBreakdown struct {
	Participant Participant `json:"participant"`
	Owes        []Edge      `json:"owes"`
	GetsBack    []Edge      `json:"gets_back"`
}

// SettlementProposal is the pre-filled draft a user edits before recording a
// payment. It is a UI staging value, never persisted here.
type SettlementProposal struct {
	From   Participant `json:"from"`
	To     Participant `json:"to"`
	Amount Money       `json:"amount"`
	Note   string      `json:"note,omitempty"`
}

// Request structs

type ProposalRequest struct {
	Direction     string `json:"direction" binding:"required,oneof=owes gets_back"`
	CounterpartID string `json:"counterpart_id"` // empty picks the first edge in the direction
}

type SettleFriendRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"required,len=3"`
	Note     string  `json:"note"`
}

type RecordSettlementRequest struct {
	FromUserID string  `json:"from_user_id" binding:"required"`
	ToUserID   string  `json:"to_user_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Currency   string  `json:"currency" binding:"required,len=3"`
	Note       string  `json:"note"`
}

// FriendSettlementResult reports the settlements recorded when settling up
// with a friend across every shared group.
type FriendSettlementResult struct {
	Settlements []FriendGroupSettlement `json:"settlements"`
}

type FriendGroupSettlement struct {
	Group        GroupRef `json:"group"`
	SettlementID string   `json:"settlement_id"`
	Amount       Money    `json:"amount"`
}
