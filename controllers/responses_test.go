package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, "/test/:id", handler)
	r.Handle(method, "/test", handler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRespondError_ValidationBecomesBadRequest(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		respondError(c, "test", "TestHandler", utils.FieldError("amount", "amount must be greater than zero"))
	}, http.MethodGet, "/test", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Success {
		t.Fatal("success = true on validation error")
	}
	if len(body.Errors) != 1 || body.Errors[0].Field != "amount" {
		t.Fatalf("errors = %+v, want one entry for amount", body.Errors)
	}
}

func TestRespondError_NotFound(t *testing.T) {
	for _, err := range []error{utils.ErrorRecordNotFound, gorm.ErrRecordNotFound} {
		w := performRequest(func(c *gin.Context) {
			respondError(c, "test", "TestHandler", err)
		}, http.MethodGet, "/test", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status for %v = %d, want 404", err, w.Code)
		}
	}
}

func TestRespondError_UnknownBecomesInternal(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		respondError(c, "test", "TestHandler", errors.New("connection reset"))
	}, http.MethodGet, "/test", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "connection reset") {
		t.Fatal("internal error detail leaked to the client")
	}
}

func TestBindJSON_RequiredFieldReported(t *testing.T) {
	type payload struct {
		Email string `json:"email" binding:"required,email"`
	}
	w := performRequest(func(c *gin.Context) {
		var input payload
		if !bindJSON(c, &input) {
			return
		}
		c.Status(http.StatusOK)
	}, http.MethodPost, "/test", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "email is required") {
		t.Fatalf("body %q does not report the missing email field", w.Body.String())
	}
}

func TestBindJSON_MalformedBody(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		var input struct{}
		if !bindJSON(c, &input) {
			return
		}
		c.Status(http.StatusOK)
	}, http.MethodPost, "/test", `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPathId_RejectsNonNumeric(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		if _, ok := pathId(c); !ok {
			return
		}
		c.Status(http.StatusOK)
	}, http.MethodGet, "/test/abc", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
