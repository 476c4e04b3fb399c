package controllers

import (
	"errors"
	"net/http"
	"strings"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies the admin credentials and hands back a session token.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	var admin models.Admin
	if err := ac.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "login failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"admin": gin.H{
			"id":        admin.ID,
			"full_name": admin.FullName,
			"username":  admin.Username,
		},
	})
}
