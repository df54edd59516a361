package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"splitsight-bff/models"
	"splitsight-bff/services"
	"splitsight-bff/utils"
)

// POST /api/splits/preview — compute splits for a draft expense without
// touching the upstream ledger. The entry flow calls this on every edit to
// show live per-person shares.
func PreviewSplits(c *gin.Context) {
	var req models.ComputeSplitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	input, err := buildExpenseInput(req)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	splits, err := services.ComputeSplits(input)
	if err != nil {
		respondSplitError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", splits)
}

// POST /api/groups/:id/expenses — validate the entry, compute splits and
// forward the expense to the ledger.
func CreateExpense(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	input, err := buildExpenseInput(req.ComputeSplitsRequest)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	splits, err := services.ComputeSplits(input)
	if err != nil {
		respondSplitError(c, err)
		return
	}

	wireSplits := make([]map[string]any, 0, len(splits))
	for _, s := range splits {
		row := map[string]any{
			"userId": s.Participant.UserID.String(),
			"amount": s.Amount.Float(),
		}
		if s.Percentage != 0 {
			row["percentage"] = s.Percentage
		}
		wireSplits = append(wireSplits, row)
	}

	payload := map[string]any{
		"groupId":     groupID.String(),
		"title":       req.Title,
		"amount":      input.TotalAmount.Float(),
		"paidBy":      input.Payer.UserID.String(),
		"splitMethod": string(input.Method),
		"splits":      wireSplits,
	}
	if req.Category != "" {
		payload["category"] = req.Category
	}
	if req.Note != "" {
		payload["note"] = req.Note
	}
	if req.Date != "" {
		payload["date"] = req.Date
	}

	expense, err := Ledger.CreateExpense(c.Request.Context(), utils.GetToken(c), payload)
	if err != nil {
		utils.BadGateway(c, err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Expense added", expense)
}

// buildExpenseInput converts a wire request into the calculator's input,
// quantizing wire floats to cents.
func buildExpenseInput(req models.ComputeSplitsRequest) (models.ExpenseInput, error) {
	payerID, err := uuid.Parse(req.PaidBy)
	if err != nil {
		return models.ExpenseInput{}, errors.New("invalid paid_by user ID")
	}

	input := models.ExpenseInput{
		TotalAmount: models.MoneyFromFloat(req.Amount, req.Currency),
		Payer:       models.Participant{UserID: payerID},
		Method:      models.SplitMethod(req.SplitMethod),
	}

	for _, m := range req.Participants {
		id, err := uuid.Parse(m.UserID)
		if err != nil {
			return models.ExpenseInput{}, errors.New("invalid participant user ID: " + m.UserID)
		}
		participant := models.Participant{UserID: id, Name: m.Name, IsGuest: m.IsGuest}
		if participant.UserID == payerID {
			input.Payer = participant
		}
		input.Participants = append(input.Participants, participant)
	}

	switch input.Method {
	case models.SplitPercentage:
		input.Percentages = make(map[uuid.UUID]float64, len(req.Splits))
		for _, s := range req.Splits {
			id, err := uuid.Parse(s.UserID)
			if err != nil {
				return models.ExpenseInput{}, errors.New("invalid split user ID: " + s.UserID)
			}
			input.Percentages[id] = s.Value
		}
	case models.SplitCustom:
		input.Amounts = make(map[uuid.UUID]models.Money, len(req.Splits))
		for _, s := range req.Splits {
			id, err := uuid.Parse(s.UserID)
			if err != nil {
				return models.ExpenseInput{}, errors.New("invalid split user ID: " + s.UserID)
			}
			input.Amounts[id] = models.MoneyFromFloat(s.Value, req.Currency)
		}
	}

	return input, nil
}

// respondSplitError maps calculator failures to HTTP responses. These are
// user-input problems: the client blocks submission and shows the
// discrepancy, nothing is retried.
func respondSplitError(c *gin.Context, err error) {
	var pctErr *services.PercentageMismatchError
	var amountErr *services.AmountMismatchError
	switch {
	case errors.As(err, &pctErr), errors.As(err, &amountErr),
		errors.Is(err, services.ErrEmptySelection),
		errors.Is(err, models.ErrCurrencyMismatch),
		errors.Is(err, services.ErrUnknownSplitMethod):
		utils.BadRequest(c, err.Error())
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
