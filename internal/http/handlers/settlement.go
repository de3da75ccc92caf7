package handlers

import (
	"net/http"

	"fleetdesk/internal/http/middleware"
	"fleetdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/drivers/:id/settlement?year=&month=
func GetSettlement(c *gin.Context) {
	driverID, ok := driverIDParam(c)
	if !ok {
		return
	}
	year, month, ok := periodQuery(c)
	if !ok {
		return
	}

	svc := services.SettlementService{
		Earnings:  earningsService(c),
		RequestID: middleware.GetRequestID(c),
	}
	settlement, err := svc.Settle(driverID, year, month)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// GET /api/drivers/:id/settlement/statement?year=&month= (inline PDF)
func GetSettlementStatement(c *gin.Context) {
	driverID, ok := driverIDParam(c)
	if !ok {
		return
	}
	year, month, ok := periodQuery(c)
	if !ok {
		return
	}

	svc := services.StatementService{
		Settlement: services.SettlementService{
			Earnings:  earningsService(c),
			RequestID: middleware.GetRequestID(c),
		},
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateStatement(driverID, year, month)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
