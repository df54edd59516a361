package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"splitsight-bff/models"
	"splitsight-bff/services"
	"splitsight-bff/utils"
)

// GET /api/balances — the viewer's position across every group: per-currency
// grand totals plus a per-friend, per-currency net with a group breakdown.
func GetOverallBalances(c *gin.Context) {
	viewer := models.Participant{
		UserID: utils.GetCurrentUserID(c),
		Name:   utils.GetCurrentUserName(c),
	}

	snapshots, err := Ledger.AllGroupBalances(c.Request.Context(), utils.GetToken(c))
	if err != nil {
		utils.BadGateway(c, err.Error())
		return
	}

	friends, err := services.AggregateBalances(snapshots, viewer)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", services.SummarizeBalances(friends))
}

// GET /api/friends/balances — the ledger's own friend aggregation, passed
// through. Kept alongside GetOverallBalances so clients can use whichever
// snapshot is fresher; both paths apply the same tolerance and
// currency-segregation rules.
func GetFriendBalances(c *gin.Context) {
	friends, err := Ledger.FriendBalances(c.Request.Context(), utils.GetToken(c))
	if err != nil {
		utils.BadGateway(c, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", friends)
}

// GET /api/groups/:id/breakdown — per-member "owes X / gets back from Y"
// rows mapped from the group's simplified settlement graph.
func GetGroupBreakdown(c *gin.Context) {
	group, ok := findGroup(c)
	if !ok {
		return
	}

	token := utils.GetToken(c)
	snapshot, err := Ledger.GroupBalances(c.Request.Context(), token, group)
	if err != nil {
		utils.BadGateway(c, err.Error())
		return
	}

	simplified, err := Ledger.SimplifiedSettlements(c.Request.Context(), token, group)
	if err != nil {
		utils.BadGateway(c, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"group":      group,
		"balances":   snapshot.Balances,
		"breakdowns": services.GroupBreakdowns(simplified, snapshot.Balances),
	})
}

// findGroup resolves the :id route param against the viewer's groups. A
// group outside the viewer's membership is reported as not found, the same
// answer the ledger would give.
func findGroup(c *gin.Context) (models.GroupRef, bool) {
	groupID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return models.GroupRef{}, false
	}

	groups, err := Ledger.Groups(c.Request.Context(), utils.GetToken(c))
	if err != nil {
		utils.BadGateway(c, err.Error())
		return models.GroupRef{}, false
	}

	for _, g := range groups {
		if g.ID == groupID {
			return g, true
		}
	}
	utils.NotFound(c, "Group not found")
	return models.GroupRef{}, false
}
