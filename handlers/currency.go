package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"splitsight-bff/services"
	"splitsight-bff/utils"
)

// GET /api/currencies/default — infer a default currency for the caller.
// The client reports its IANA timezone in X-Timezone; the locale falls back
// to the Accept-Language header. Inference never fails: worst case is USD.
func GetDefaultCurrency(c *gin.Context) {
	timezone := c.GetHeader("X-Timezone")
	if timezone == "" {
		timezone = c.Query("tz")
	}

	locale := c.Query("locale")
	if locale == "" {
		locale = firstLanguage(c.GetHeader("Accept-Language"))
	}

	currency := services.DefaultCurrency(timezone, locale)
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"currency": currency,
		"symbol":   services.CurrencySymbol(currency),
	})
}

func firstLanguage(acceptLanguage string) string {
	first := strings.Split(acceptLanguage, ",")[0]
	return strings.TrimSpace(strings.Split(first, ";")[0])
}
