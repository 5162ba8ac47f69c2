package controllers

import (
	"strconv"

	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/gin-gonic/gin"
)

func GetPayments(c *gin.Context) {
	invoiceId := 0
	if raw := c.Query("invoice"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondBadRequest(c, "invalid invoice filter", nil)
			return
		}
		invoiceId = parsed
	}

	results, err := models.GetPayments(c.Request.Context(), invoiceId, c.Query("status"))
	if err != nil {
		respondError(c, "payment", "GetPayments", err)
		return
	}
	respondList(c, results, len(results))
}

func GetPaymentStats(c *gin.Context) {
	results, err := models.GetPaymentStats(c.Request.Context())
	if err != nil {
		respondError(c, "payment", "GetPaymentStats", err)
		return
	}
	respondOne(c, results)
}

func GetPayment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.GetPayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, "payment", "GetPayment", err)
		return
	}
	respondOne(c, result)
}

func CreatePayment(c *gin.Context) {
	var input models.NewPayment
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreatePayment(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "payment", "CreatePayment", err)
		return
	}
	respondCreated(c, "payment recorded", result)
}

func UpdatePayment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdatePaymentInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdatePayment(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "payment", "UpdatePayment", err)
		return
	}
	respondOne(c, result)
}

func DeletePayment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.DeletePayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, "payment", "DeletePayment", err)
		return
	}
	respondDeleted(c, "payment deleted", gin.H{"id": result.ID, "paymentNumber": result.PaymentNumber})
}
