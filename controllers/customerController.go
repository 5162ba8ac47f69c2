package controllers

import (
	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/gin-gonic/gin"
)

func GetCustomers(c *gin.Context) {
	results, err := models.GetCustomers(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, "customer", "GetCustomers", err)
		return
	}
	respondList(c, results, len(results))
}

func GetCustomer(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, "customer", "GetCustomer", err)
		return
	}
	respondOne(c, result)
}

func CreateCustomer(c *gin.Context) {
	var input models.NewCustomer
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "customer", "CreateCustomer", err)
		return
	}
	respondCreated(c, "customer created", result)
}

func UpdateCustomer(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewCustomer
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateCustomer(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "customer", "UpdateCustomer", err)
		return
	}
	respondOne(c, result)
}

func DeleteCustomer(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	result, err := models.DeleteCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, "customer", "DeleteCustomer", err)
		return
	}
	respondDeleted(c, "customer deleted", gin.H{"id": result.ID, "name": result.Name})
}
