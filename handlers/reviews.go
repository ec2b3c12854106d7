package handlers

import (
	"net/http"

	"jenga/middleware"
	"jenga/models"
	"jenga/services/review"
	"jenga/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes the review aggregator over HTTP.
type ReviewHandler struct {
	Reviews review.ReviewService
}

func NewReviewHandler(reviews review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

// CreateReviewHandler handles POST /api/reviews (client only).
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	actingUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		// A fractional rating fails the int bind; the contract calls that a
		// validation error, not a decode fault.
		utils.JSONError(c, utils.ValidationError("rating must be an integer between 1 and 5"))
		return
	}

	created, err := h.Reviews.Create(c.Request.Context(), actingUser.ID, actingUser.Name, input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// GetServiceReviewsHandler handles GET /api/reviews/services/:serviceId (public).
func (h *ReviewHandler) GetServiceReviewsHandler(c *gin.Context) {
	page, err := pageOptions(c)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	reviews, pagination, err := h.Reviews.GetForService(c.Request.Context(), c.Param("serviceId"), page)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews, "pagination": pagination})
}
