package handlers

import (
	"net/http"

	"fleetdesk/internal/domain/models"
	"fleetdesk/internal/http/middleware"
	"fleetdesk/internal/services"

	"github.com/gin-gonic/gin"
)

func configService(c *gin.Context) services.ConfigService {
	return services.ConfigService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/trip-type-configs
func ListTripTypeConfigs(c *gin.Context) {
	configs, err := configService(c).TripTypeRepo.ListActive()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, configs)
}

// GET /api/trip-type-configs/:name
func GetTripTypeConfig(c *gin.Context) {
	cfg, err := configService(c).ResolveTripTypeConfig(c.Param("name"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if cfg == nil {
		respondError(c, http.StatusNotFound, "not_found", "trip type config tidak ditemukan", nil)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// POST /api/trip-type-configs — deactivates the old version and inserts the
// new one; never edits an ACTIVE row in place.
func SetTripTypeConfig(c *gin.Context) {
	var input models.TripTypeConfig
	if !BindJSONOrError(c, &input) {
		return
	}

	id, err := configService(c).SetTripTypeConfig(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "name": input.Name, "status": models.ConfigStatusActive})
}

// DELETE /api/trip-type-configs/:name — soft delete (status flip).
func DeleteTripTypeConfig(c *gin.Context) {
	if err := configService(c).DeactivateTripTypeConfig(c.Param("name")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.ConfigStatusInactive})
}
