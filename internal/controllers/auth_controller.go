package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"attendanceportal/internal/apperr"
	"attendanceportal/internal/auth"
	"attendanceportal/internal/middleware"
	"attendanceportal/internal/models"
)

type AuthController struct {
	DB        *gorm.DB
	JWTSecret string
	ExpiresIn time.Duration
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type registerRequest struct {
	Username string `json:"username"`
	Contact  string `json:"contact"`
	Password string `json:"password"`
}

// Login authenticates and, when the form requested a role, authorizes it.
// A credential failure and a role mismatch produce different messages and
// statuses.
func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acct, err := auth.Authenticate(a.DB, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	role := auth.RoleOf(*acct)
	if req.Role != "" {
		if err := auth.Authorize(role, auth.ParseRole(req.Role)); err != nil {
			respondError(c, err)
			return
		}
	}

	a.respondWithToken(c, *acct, role, auth.RouteFor(role))
}

// AdminLogin is the separate admin console entry point: no role parameter,
// but the account must be staff or admin.
func (a *AuthController) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acct, err := auth.Authenticate(a.DB, req.Username, req.Password)
	if err != nil {
		if apperr.Is(err, apperr.KindAuth) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin credentials"})
			return
		}
		respondError(c, err)
		return
	}

	role := auth.RoleOf(*acct)
	if err := auth.AuthorizeStaffArea(role); err != nil {
		respondError(c, err)
		return
	}

	// both staff and admin land on the admin console from this entry
	a.respondWithToken(c, *acct, role, "/admin/dashboard")
}

// Register is the full registration form with an explicit contact field.
func (a *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	acct, err := auth.Register(a.DB, req.Username, req.Contact, req.Password, auth.ExplicitContact)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "registration successful, please login",
		"username": acct.Username,
		"redirect": "/login",
	})
}

// Signup is the quick variant: no contact input, a placeholder is
// synthesized from the username.
func (a *AuthController) Signup(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	acct, err := auth.Register(a.DB, req.Username, "", req.Password, auth.PlaceholderContact)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "registration successful, please login",
		"username": acct.Username,
		"redirect": "/login",
	})
}

func (a *AuthController) Me(c *gin.Context) {
	acct, _ := middleware.CurrentAccount(c)
	role := auth.RoleOf(acct)
	c.JSON(http.StatusOK, gin.H{
		"account_id": acct.AccountID,
		"username":   acct.Username,
		"contact":    acct.Contact,
		"role":       role.String(),
		"created_at": acct.CreatedAt,
	})
}

// Dashboard routes an already-authenticated account to its dashboard
// without re-authentication; hitting a login entry while logged in lands
// here.
func (a *AuthController) Dashboard(c *gin.Context) {
	acct, _ := middleware.CurrentAccount(c)
	role := auth.RoleOf(acct)
	c.JSON(http.StatusOK, gin.H{
		"role":     role.String(),
		"redirect": auth.RouteFor(role),
	})
}

// Logout is stateless: the client discards its token.
func (a *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out", "redirect": "/login"})
}

func (a *AuthController) respondWithToken(c *gin.Context, acct models.Account, role auth.Role, redirect string) {
	now := time.Now().UTC()
	claims := middleware.Claims{
		AccountID: acct.AccountID,
		Username:  acct.Username,
		Role:      role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "attendanceportal",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ExpiresIn)),
			Subject:   acct.AccountID,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(a.ExpiresIn.Seconds()),
		"role":         role.String(),
		"redirect":     redirect,
	})
}

// respondError maps the error taxonomy onto a JSON body at the handler
// boundary.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
