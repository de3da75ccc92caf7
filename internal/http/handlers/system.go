package handlers

import (
	"net/http"

	intconfig "fleetdesk/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "fleetdesk backend berjalan"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database belum terhubung: " + err.Error()})
		return
	}
	var count int
	err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM trip_type_configs WHERE status = 'ACTIVE'").Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query ke database: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK", "active_trip_type_configs": count})
}
