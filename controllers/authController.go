package controllers

import (
	"net/http"

	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/gin-gonic/gin"
)

func Login(c *gin.Context) {
	var input models.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	token, user, err := models.Login(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"data":    user,
	})
}

func Register(c *gin.Context) {
	var input models.NewUser
	if !bindJSON(c, &input) {
		return
	}

	user, err := models.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "auth", "Register", err)
		return
	}

	respondCreated(c, "account created", user)
}
