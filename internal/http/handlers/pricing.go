package handlers

import (
	"net/http"

	"fleetdesk/internal/http/middleware"
	"fleetdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/pricing/quote
func QuotePrice(c *gin.Context) {
	var req services.PriceRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.PricingService{RequestID: middleware.GetRequestID(c)}
	result, err := svc.CalculatePrice(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
