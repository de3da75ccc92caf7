package handlers

import (
	"net/http"
	"strings"
	"time"

	"fleetdesk/internal/http/middleware"
	"fleetdesk/internal/services"
	"fleetdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

func earningsService(c *gin.Context) services.EarningsService {
	return services.EarningsService{
		Config:    services.ConfigService{RequestID: middleware.GetRequestID(c)},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/drivers/:id/earnings/daily?date=YYYY-MM-DD
func GetDailyEarnings(c *gin.Context) {
	driverID, ok := driverIDParam(c)
	if !ok {
		return
	}

	var date *time.Time
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid_date", "format date harus YYYY-MM-DD", nil)
			return
		}
		date = &parsed
	}

	stats, err := earningsService(c).DailyStats(driverID, date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/drivers/:id/earnings/monthly?year=&month=
func GetMonthlyEarnings(c *gin.Context) {
	driverID, ok := driverIDParam(c)
	if !ok {
		return
	}
	year, month, ok := periodQuery(c)
	if !ok {
		return
	}

	stats, err := earningsService(c).MonthlyStats(driverID, year, month)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
