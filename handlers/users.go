package handlers

import (
	"net/http"

	"jenga/middleware"
	"jenga/services/user"
	"jenga/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes user profile endpoints.
type UserHandler struct {
	Users user.UserService
}

func NewUserHandler(users user.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// MeHandler handles GET /api/users/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	actingUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	account, err := h.Users.GetByID(c.Request.Context(), actingUser.ID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": account})
}

// GetUserByIDHandler handles GET /api/users/:id (admin or self).
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	account, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": account})
}

// UpdateUserHandler handles PATCH /api/users/:id (admin or self).
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ValidationError("invalid request body: %v", err))
		return
	}

	account, err := h.Users.UpdateName(c.Request.Context(), c.Param("id"), input.Name)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": account})
}

// ListUsersHandler handles GET /api/users (admin only).
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	page, err := pageOptions(c)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	users, pagination, err := h.Users.List(c.Request.Context(), page)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": users, "pagination": pagination})
}
