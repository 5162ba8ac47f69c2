package middlewares

import (
	"net/http"
	"strings"

	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware rejects requests without a valid bearer token and threads
// the signed-in admin id into the request context. Every query under
// /api/admin is scoped to that id from here on. The account row is loaded so
// audit entries carry the user's name.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authorization token is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(auth, "Bearer ")
		validated, err := utils.JwtValidate(tokenString)
		if err != nil || !validated.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			c.Abort()
			return
		}

		claim, ok := validated.Claims.(*utils.JwtCustomClaim)
		if !ok || claim.ID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			c.Abort()
			return
		}

		ctx := utils.SetAdminIdInContext(c.Request.Context(), claim.ID)
		ctx = utils.SetUserIdInContext(ctx, claim.ID)
		if config.GetDB() != nil {
			user, err := utils.FetchSingleModel[models.User](ctx, claim.ID)
			if err != nil {
				// valid token for a deleted account
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
				c.Abort()
				return
			}
			ctx = utils.SetUserNameInContext(ctx, user.Name)
			ctx = utils.SetUserEmailInContext(ctx, user.Email)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
