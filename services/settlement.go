package services

import (
	"errors"
	"fmt"

	"splitsight-bff/models"
)

// ErrSettledUp means there is nothing to settle with the friend: every
// currency is within tolerance of zero.
var ErrSettledUp = errors.New("already settled up")

// Direction says which side of an edge the acting participant is on.
type Direction string

const (
	DirectionOwes     Direction = "owes"      // the participant pays the counterpart
	DirectionGetsBack Direction = "gets_back" // the counterpart pays the participant
)

// Breakdown partitions a group's simplified settlement graph into the edges
// where the participant pays and the edges where they are paid. Both sides
// can be non-empty at once; edges are never netted across counterparts, that
// optimization already happened upstream. Edge order follows the input.
func Breakdown(simplified []models.SimplifiedSettlement, participant models.Participant) models.MemberBreakdown {
	breakdown := models.MemberBreakdown{Participant: participant}
	for _, s := range simplified {
		switch participant.UserID {
		case s.From.UserID:
			breakdown.Owes = append(breakdown.Owes, models.Edge{Counterpart: s.To, Amount: s.Amount})
		case s.To.UserID:
			breakdown.GetsBack = append(breakdown.GetsBack, models.Edge{Counterpart: s.From, Amount: s.Amount})
		}
	}
	return breakdown
}

// GroupBreakdowns builds the per-member directional view for every member
// with a balance row, dropping members untouched by the simplified graph.
func GroupBreakdowns(simplified []models.SimplifiedSettlement, balances []models.Balance) []models.MemberBreakdown {
	var breakdowns []models.MemberBreakdown
	for _, b := range balances {
		breakdown := Breakdown(simplified, b.Participant)
		if len(breakdown.Owes) == 0 && len(breakdown.GetsBack) == 0 {
			continue
		}
		breakdowns = append(breakdowns, breakdown)
	}
	return breakdowns
}

// ProposeSettlement pre-fills a settlement draft for a clicked edge. The
// amount is always positive and keeps the edge's own currency.
func ProposeSettlement(participant models.Participant, edge models.Edge, direction Direction) (models.SettlementProposal, error) {
	proposal := models.SettlementProposal{Amount: edge.Amount.Abs()}
	switch direction {
	case DirectionOwes:
		proposal.From = participant
		proposal.To = edge.Counterpart
	case DirectionGetsBack:
		proposal.From = edge.Counterpart
		proposal.To = participant
	default:
		return models.SettlementProposal{}, fmt.Errorf("unknown settlement direction: %s", direction)
	}
	return proposal, nil
}

// ProposeFriendSettlement pre-fills a settlement draft against a friend's
// aggregated balance. A friend with exactly one unsettled currency is
// unambiguous and that currency is auto-selected; with several, the caller
// must pass selectedCurrency explicitly or get ErrAmbiguousCurrency. The UI
// is expected to answer that error with a currency picker, never a silent
// guess.
func ProposeFriendSettlement(viewer models.Participant, friend models.FriendBalance, selectedCurrency string) (models.SettlementProposal, error) {
	var open []models.CurrencyAmount
	for _, entry := range friend.PerCurrency {
		if !entry.Amount.IsZero() {
			open = append(open, entry)
		}
	}

	var chosen models.CurrencyAmount
	switch {
	case len(open) == 0:
		return models.SettlementProposal{}, ErrSettledUp
	case selectedCurrency != "":
		found := false
		for _, entry := range open {
			if entry.Currency == selectedCurrency {
				chosen = entry
				found = true
				break
			}
		}
		if !found {
			return models.SettlementProposal{}, fmt.Errorf("%w in %s", ErrSettledUp, selectedCurrency)
		}
	case len(open) == 1:
		chosen = open[0]
	default:
		return models.SettlementProposal{}, ErrAmbiguousCurrency
	}

	// Positive balance: the friend owes the viewer and pays. Negative: the
	// viewer pays the friend. Magnitude always positive.
	proposal := models.SettlementProposal{Amount: chosen.Amount.Abs()}
	if chosen.Amount.Cents() > 0 {
		proposal.From = friend.Friend
		proposal.To = viewer
	} else {
		proposal.From = viewer
		proposal.To = friend.Friend
	}
	return proposal, nil
}
