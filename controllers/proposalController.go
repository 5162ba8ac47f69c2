package controllers

import (
	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/gin-gonic/gin"
)

func GetProposals(c *gin.Context) {
	results, err := models.GetProposals(c.Request.Context(), c.Query("status"), c.Query("customer"))
	if err != nil {
		respondError(c, "proposal", "GetProposals", err)
		return
	}
	respondList(c, results, len(results))
}

func GetProposalStats(c *gin.Context) {
	results, err := models.GetProposalStats(c.Request.Context())
	if err != nil {
		respondError(c, "proposal", "GetProposalStats", err)
		return
	}
	respondOne(c, results)
}

func GetProposal(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.GetProposal(c.Request.Context(), id)
	if err != nil {
		respondError(c, "proposal", "GetProposal", err)
		return
	}
	respondOne(c, result)
}

func CreateProposal(c *gin.Context) {
	var input models.NewProposal
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateProposal(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "proposal", "CreateProposal", err)
		return
	}
	respondCreated(c, "proposal created", result)
}

func UpdateProposal(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdateProposalInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateProposal(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "proposal", "UpdateProposal", err)
		return
	}
	respondOne(c, result)
}

func DeleteProposal(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.DeleteProposal(c.Request.Context(), id)
	if err != nil {
		respondError(c, "proposal", "DeleteProposal", err)
		return
	}
	respondDeleted(c, "proposal deleted", gin.H{"id": result.ID, "proposalNumber": result.ProposalNumber})
}
