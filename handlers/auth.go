package handlers

import (
	"net/http"

	"jenga/services/user"
	"jenga/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ValidationError("invalid request body: %v", err))
		return
	}

	result, err := h.Users.Register(c.Request.Context(), input.Email, input.Password, input.Name, input.Role)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": result})
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ValidationError("invalid request body: %v", err))
		return
	}

	result, err := h.Users.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
