package controllers

import (
	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/gin-gonic/gin"
)

func GetInvoices(c *gin.Context) {
	results, err := models.GetInvoices(c.Request.Context(), c.Query("status"), c.Query("customer"))
	if err != nil {
		respondError(c, "invoice", "GetInvoices", err)
		return
	}
	respondList(c, results, len(results))
}

func GetInvoiceStats(c *gin.Context) {
	results, err := models.GetInvoiceStats(c.Request.Context())
	if err != nil {
		respondError(c, "invoice", "GetInvoiceStats", err)
		return
	}
	respondOne(c, results)
}

func GetInvoice(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice", "GetInvoice", err)
		return
	}
	respondOne(c, result)
}

func CreateInvoice(c *gin.Context) {
	var input models.NewInvoice
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateInvoice(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "invoice", "CreateInvoice", err)
		return
	}
	respondCreated(c, "invoice created", result)
}

func UpdateInvoice(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdateInvoiceInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateInvoice(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "invoice", "UpdateInvoice", err)
		return
	}
	respondOne(c, result)
}

func DeleteInvoice(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.DeleteInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice", "DeleteInvoice", err)
		return
	}
	respondDeleted(c, "invoice deleted", gin.H{"id": result.ID, "invoiceNumber": result.InvoiceNumber})
}
