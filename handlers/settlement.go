package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"splitsight-bff/models"
	"splitsight-bff/services"
	"splitsight-bff/utils"
)

// POST /api/groups/:id/proposals — pre-fill a settlement draft from the
// viewer's side of the simplified settlement graph. The client passes the
// direction of the clicked row and optionally the counterpart; without a
// counterpart the first edge in that direction is used.
func ProposeGroupSettlement(c *gin.Context) {
	group, ok := findGroup(c)
	if !ok {
		return
	}

	var req models.ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	simplified, err := Ledger.SimplifiedSettlements(c.Request.Context(), utils.GetToken(c), group)
	if err != nil {
		utils.BadGateway(c, err.Error())
		return
	}

	viewer := models.Participant{
		UserID: utils.GetCurrentUserID(c),
		Name:   utils.GetCurrentUserName(c),
	}
	breakdown := services.Breakdown(simplified, viewer)

	direction := services.Direction(req.Direction)
	edges := breakdown.Owes
	if direction == services.DirectionGetsBack {
		edges = breakdown.GetsBack
	}

	edge, ok := pickEdge(c, edges, req.CounterpartID)
	if !ok {
		return
	}

	proposal, err := services.ProposeSettlement(viewer, edge, direction)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", proposal)
}

func pickEdge(c *gin.Context, edges []models.Edge, counterpartID string) (models.Edge, bool) {
	if len(edges) == 0 {
		utils.NotFound(c, "Nothing to settle in this direction")
		return models.Edge{}, false
	}
	if counterpartID == "" {
		return edges[0], true
	}

	id, err := utils.ParseUUID(counterpartID)
	if err != nil {
		utils.BadRequest(c, "Invalid counterpart ID")
		return models.Edge{}, false
	}
	for _, edge := range edges {
		if edge.Counterpart.UserID == id {
			return edge, true
		}
	}
	utils.NotFound(c, "No settlement edge with that counterpart")
	return models.Edge{}, false
}

// POST /api/friends/:id/proposals — pre-fill a settlement draft against a
// friend's aggregated balance. A friend unsettled in several currencies
// needs an explicit ?currency=; the 409 tells the client to show a picker.
func ProposeFriendSettlement(c *gin.Context) {
	friendID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid friend ID")
		return
	}

	friends, err := Ledger.FriendBalances(c.Request.Context(), utils.GetToken(c))
	if err != nil {
		utils.BadGateway(c, err.Error())
		return
	}

	viewer := models.Participant{
		UserID: utils.GetCurrentUserID(c),
		Name:   utils.GetCurrentUserName(c),
	}

	for _, friend := range friends {
		if friend.Friend.UserID != friendID {
			continue
		}

		proposal, err := services.ProposeFriendSettlement(viewer, friend, c.Query("currency"))
		switch {
		case errors.Is(err, services.ErrAmbiguousCurrency):
			utils.Conflict(c, err.Error())
		case errors.Is(err, services.ErrSettledUp):
			utils.BadRequest(c, err.Error())
		case err != nil:
			utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		default:
			utils.SuccessResponse(c, http.StatusOK, "", proposal)
		}
		return
	}

	utils.NotFound(c, "Friend not found")
}

// POST /api/groups/:id/settle — forward a confirmed settlement draft to the
// ledger.
func RecordSettlement(c *gin.Context) {
	group, ok := findGroup(c)
	if !ok {
		return
	}

	var req models.RecordSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.Currency != group.Currency {
		utils.BadRequest(c, "Settlement currency must match the group currency")
		return
	}

	payload := map[string]any{
		"groupId":    group.ID.String(),
		"fromUserId": req.FromUserID,
		"toUserId":   req.ToUserID,
		"amount":     req.Amount,
	}
	if req.Note != "" {
		payload["note"] = req.Note
	}

	settlement, err := Ledger.RecordSettlement(c.Request.Context(), utils.GetToken(c), payload)
	if err != nil {
		utils.BadGateway(c, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Settlement recorded", settlement)
}

// POST /api/friends/:id/settle — record one settlement per shared group with
// the friend, in the given currency.
func SettleFriend(c *gin.Context) {
	friendID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid friend ID")
		return
	}

	var req models.SettleFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	amount := models.MoneyFromFloat(req.Amount, req.Currency)
	result, err := Ledger.SettleFriend(c.Request.Context(), utils.GetToken(c), friendID, amount, req.Note)
	if err != nil {
		utils.BadGateway(c, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Settled up", result)
}
