package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

func respondOne(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondDeleted(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondBadRequest(c *gin.Context, message string, fields map[string]string) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if len(fields) > 0 {
		errs := make([]gin.H, 0, len(fields))
		for field, msg := range fields {
			errs = append(errs, gin.H{"field": field, "message": msg})
		}
		body["errors"] = errs
	}
	c.JSON(http.StatusBadRequest, body)
}

// respondError maps model-layer errors onto the wire: validation failures
// become 400 with field details, missing rows become 404, anything else is a
// logged 500 with a generic message.
func respondError(c *gin.Context, moduleName string, functionName string, err error) {
	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		respondBadRequest(c, validationErr.Message, validationErr.Fields)
		return
	}
	if errors.Is(err, utils.ErrorRecordNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "record not found",
		})
		return
	}

	correlationId, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
	logger := config.GetLogger()
	config.LogError(logger, moduleName, functionName, "request failed", gin.H{
		"path":          c.Request.URL.Path,
		"correlationId": correlationId,
	}, err)
	body := gin.H{
		"success": false,
		"message": "something went wrong",
	}
	if correlationId != "" {
		body["correlationId"] = correlationId
	}
	c.JSON(http.StatusInternalServerError, body)
}

// bindJSON binds the request body and turns binding failures into the field
// error shape the clients expect.
func bindJSON(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make(map[string]string, len(validationErrs))
			for _, fieldErr := range validationErrs {
				name := strings.ToLower(fieldErr.Field()[:1]) + fieldErr.Field()[1:]
				switch fieldErr.Tag() {
				case "required":
					fields[name] = name + " is required"
				case "email":
					fields[name] = name + " must be a valid email address"
				case "min":
					fields[name] = name + " must be at least " + fieldErr.Param() + " characters"
				default:
					fields[name] = name + " is invalid"
				}
			}
			respondBadRequest(c, "validation failed", fields)
			return false
		}
		respondBadRequest(c, "invalid request body", nil)
		return false
	}
	return true
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondBadRequest(c, "invalid id", nil)
		return 0, false
	}
	return id, true
}
