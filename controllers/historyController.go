package controllers

import (
	"strconv"

	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/gin-gonic/gin"
)

func GetHistories(c *gin.Context) {
	entityId := 0
	if raw := c.Query("entityId"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondBadRequest(c, "invalid entityId filter", nil)
			return
		}
		entityId = parsed
	}

	results, err := models.GetHistories(c.Request.Context(), c.Query("entityType"), entityId)
	if err != nil {
		respondError(c, "history", "GetHistories", err)
		return
	}
	respondList(c, results, len(results))
}
