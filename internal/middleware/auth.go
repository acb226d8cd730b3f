package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"attendanceportal/internal/auth"
	"attendanceportal/internal/models"
)

type AuthConfig struct {
	JWTSecret string
}

type Claims struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and loads the account into the
// request context. Unauthenticated requests get the login redirect hint for
// the routing layer.
func AuthMiddleware(db *gorm.DB, cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "missing or invalid authorization header",
				"redirect": "/login",
			})
			return
		}
		tokenStr := strings.TrimSpace(header[len("Bearer "):])

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "invalid token",
				"redirect": "/login",
			})
			return
		}

		var acct models.Account
		if err := db.Where("account_id = ?", claims.AccountID).First(&acct).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "account not found",
				"redirect": "/login",
			})
			return
		}

		c.Set("account", acct)
		c.Next()
	}
}

// CurrentAccount pulls the authenticated account out of the gin context.
func CurrentAccount(c *gin.Context) (models.Account, bool) {
	v, ok := c.Get("account")
	if !ok {
		return models.Account{}, false
	}
	acct, ok := v.(models.Account)
	return acct, ok
}

// RequireRole gates a dashboard group on an exact role. The authorization
// decision itself lives in auth.Authorize; this only maps its result onto
// the response.
func RequireRole(required auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := CurrentAccount(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "redirect": "/login"})
			return
		}
		if err := auth.Authorize(auth.RoleOf(acct), required); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error(), "redirect": "/login"})
			return
		}
		c.Next()
	}
}

// RequireStaffArea gates the admin console, which both staff and admin use.
func RequireStaffArea() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := CurrentAccount(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "redirect": "/admin/login"})
			return
		}
		if err := auth.AuthorizeStaffArea(auth.RoleOf(acct)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error(), "redirect": "/admin/login"})
			return
		}
		c.Next()
	}
}
