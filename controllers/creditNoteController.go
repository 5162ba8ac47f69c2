package controllers

import (
	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/gin-gonic/gin"
)

func GetCreditNotes(c *gin.Context) {
	results, err := models.GetCreditNotes(c.Request.Context(), c.Query("status"), c.Query("customer"))
	if err != nil {
		respondError(c, "creditNote", "GetCreditNotes", err)
		return
	}
	respondList(c, results, len(results))
}

func GetCreditNoteStats(c *gin.Context) {
	results, err := models.GetCreditNoteStats(c.Request.Context())
	if err != nil {
		respondError(c, "creditNote", "GetCreditNoteStats", err)
		return
	}
	respondOne(c, results)
}

func GetCreditNote(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.GetCreditNote(c.Request.Context(), id)
	if err != nil {
		respondError(c, "creditNote", "GetCreditNote", err)
		return
	}
	respondOne(c, result)
}

func CreateCreditNote(c *gin.Context) {
	var input models.NewCreditNote
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateCreditNote(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "creditNote", "CreateCreditNote", err)
		return
	}
	respondCreated(c, "credit note created", result)
}

func UpdateCreditNote(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdateCreditNoteInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateCreditNote(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "creditNote", "UpdateCreditNote", err)
		return
	}
	respondOne(c, result)
}

func DeleteCreditNote(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.DeleteCreditNote(c.Request.Context(), id)
	if err != nil {
		respondError(c, "creditNote", "DeleteCreditNote", err)
		return
	}
	respondDeleted(c, "credit note deleted", gin.H{"id": result.ID, "creditNoteNumber": result.CreditNoteNumber})
}
