package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleetdesk/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/earnings-configs?scope=driver&scope_id=42
func GetEarningsConfigs(c *gin.Context) {
	scope := strings.ToLower(strings.TrimSpace(c.DefaultQuery("scope", models.ScopeGlobal)))
	switch scope {
	case models.ScopeGlobal, models.ScopeFranchise, models.ScopeDriver:
	default:
		respondError(c, http.StatusBadRequest, "invalid_scope", "scope harus global, franchise, atau driver", nil)
		return
	}

	var scopeID *int64
	if raw := strings.TrimSpace(c.Query("scope_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(c, http.StatusBadRequest, "invalid_scope_id", "scope_id tidak valid", nil)
			return
		}
		scopeID = &id
	}
	if scope != models.ScopeGlobal && scopeID == nil {
		respondError(c, http.StatusBadRequest, "invalid_scope_id", "scope_id wajib diisi untuk scope "+scope, nil)
		return
	}

	configs, err := configService(c).EarningsRepo.ListActiveByScope(scope, scopeID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, configs)
}

// POST /api/earnings-configs — versioned write: deactivate old, insert new.
func SetEarningsConfig(c *gin.Context) {
	var input models.EarningsConfig
	if !BindJSONOrError(c, &input) {
		return
	}

	id, err := configService(c).SetEarningsConfig(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "scope_type": input.ScopeType})
}
