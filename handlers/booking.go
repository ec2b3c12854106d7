package handlers

import (
	"net/http"

	"jenga/middleware"
	"jenga/models"
	"jenga/services/booking"
	"jenga/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle engine over HTTP.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(bookings booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

// CreateBookingHandler handles POST /api/bookings (client only).
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	actingUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ValidationError("invalid request body: %v", err))
		return
	}

	created, err := h.Bookings.Create(c.Request.Context(), actingUser.ID, actingUser.Name, input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// GetBookingsHandler handles GET /api/bookings for the authenticated user.
func (h *BookingHandler) GetBookingsHandler(c *gin.Context) {
	actingUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, err := pageOptions(c)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	bookings, pagination, err := h.Bookings.GetForUser(c.Request.Context(), actingUser, page)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings, "pagination": pagination})
}

// GetBookingByIDHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingByIDHandler(c *gin.Context) {
	actingUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	found, err := h.Bookings.GetByID(c.Request.Context(), c.Param("id"), actingUser)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": found})
}

// UpdateBookingStatusHandler handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		utils.JSONError(c, utils.ValidationError("status is required"))
		return
	}
	h.updateStatus(c, models.BookingStatus(input.Status))
}

// AcceptBookingHandler handles PATCH /api/bookings/:id/accept (provider).
func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	h.updateStatus(c, models.StatusAccepted)
}

// DeclineBookingHandler handles PATCH /api/bookings/:id/decline (provider).
func (h *BookingHandler) DeclineBookingHandler(c *gin.Context) {
	h.updateStatus(c, models.StatusDeclined)
}

// CompleteBookingHandler handles PATCH /api/bookings/:id/complete (provider).
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	h.updateStatus(c, models.StatusCompleted)
}

// CancelBookingHandler handles PATCH /api/bookings/:id/cancel (client).
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	h.updateStatus(c, models.StatusCancelled)
}

func (h *BookingHandler) updateStatus(c *gin.Context, status models.BookingStatus) {
	actingUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	updated, err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), actingUser, status)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// UpdateBookingLocationHandler handles PATCH /api/bookings/:id/location
// (provider live tracking).
func (h *BookingHandler) UpdateBookingLocationHandler(c *gin.Context) {
	actingUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var input struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Lat == nil || input.Lng == nil {
		utils.JSONError(c, utils.ValidationError("invalid location format"))
		return
	}

	loc := models.GeoPoint{Lat: *input.Lat, Lng: *input.Lng}
	if err := h.Bookings.UpdateProviderLocation(c.Request.Context(), c.Param("id"), actingUser, loc); err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
