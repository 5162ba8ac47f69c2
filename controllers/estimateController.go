package controllers

import (
	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/gin-gonic/gin"
)

func GetEstimates(c *gin.Context) {
	results, err := models.GetEstimates(c.Request.Context(), c.Query("status"), c.Query("customer"))
	if err != nil {
		respondError(c, "estimate", "GetEstimates", err)
		return
	}
	respondList(c, results, len(results))
}

func GetEstimateStats(c *gin.Context) {
	results, err := models.GetEstimateStats(c.Request.Context())
	if err != nil {
		respondError(c, "estimate", "GetEstimateStats", err)
		return
	}
	respondOne(c, results)
}

func GetEstimate(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.GetEstimate(c.Request.Context(), id)
	if err != nil {
		respondError(c, "estimate", "GetEstimate", err)
		return
	}
	respondOne(c, result)
}

func CreateEstimate(c *gin.Context) {
	var input models.NewEstimate
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateEstimate(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "estimate", "CreateEstimate", err)
		return
	}
	respondCreated(c, "estimate created", result)
}

func UpdateEstimate(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdateEstimateInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateEstimate(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "estimate", "UpdateEstimate", err)
		return
	}
	respondOne(c, result)
}

func DeleteEstimate(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.DeleteEstimate(c.Request.Context(), id)
	if err != nil {
		respondError(c, "estimate", "DeleteEstimate", err)
		return
	}
	respondDeleted(c, "estimate deleted", gin.H{"id": result.ID, "estimateNumber": result.EstimateNumber})
}
