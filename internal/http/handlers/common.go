package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "empty_body", "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "payload tidak valid", err.Error())
		return false
	}
	return true
}

// driverIDParam parses the :id path segment.
func driverIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_driver_id", "id driver tidak valid", nil)
		return 0, false
	}
	return id, true
}

// periodQuery parses year/month query params.
func periodQuery(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		respondError(c, http.StatusBadRequest, "invalid_year", "year tidak valid", nil)
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_month", "month tidak valid", nil)
		return 0, 0, false
	}
	return year, month, true
}
