package handlers

import (
	"net/http"
	"strconv"

	"jenga/middleware"
	"jenga/models"
	"jenga/services/catalog"
	"jenga/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler exposes the service catalog over HTTP.
type ServiceHandler struct {
	Catalog catalog.ServiceCatalog
}

func NewServiceHandler(cat catalog.ServiceCatalog) *ServiceHandler {
	return &ServiceHandler{Catalog: cat}
}

// CreateServiceHandler handles POST /api/services (provider only).
func (h *ServiceHandler) CreateServiceHandler(c *gin.Context) {
	actingUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ValidationError("invalid request body: %v", err))
		return
	}

	svc, err := h.Catalog.Create(c.Request.Context(), actingUser.ID, actingUser.Name, input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": svc})
}

// ListServicesHandler handles GET /api/services (public).
func (h *ServiceHandler) ListServicesHandler(c *gin.Context) {
	filter := models.ServiceListFilter{
		Category: c.Query("category"),
		OrderBy:  c.Query("orderBy"),
	}
	var err error
	if filter.MinPrice, err = optionalFloatQuery(c, "minPrice"); err != nil {
		utils.JSONError(c, err)
		return
	}
	if filter.MaxPrice, err = optionalFloatQuery(c, "maxPrice"); err != nil {
		utils.JSONError(c, err)
		return
	}

	page, err := pageOptions(c)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	services, pagination, err := h.Catalog.List(c.Request.Context(), filter, page)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": services, "pagination": pagination})
}

// GetServiceByIDHandler handles GET /api/services/:id.
func (h *ServiceHandler) GetServiceByIDHandler(c *gin.Context) {
	svc, err := h.Catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": svc})
}

// GetProviderServicesHandler handles GET /api/services/provider/:providerId.
// Inactive services are only visible to the owner (or an admin).
func (h *ServiceHandler) GetProviderServicesHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	includeInactive := c.Query("includeInactive") == "true"
	if includeInactive {
		actingUser, ok := middleware.CurrentUser(c)
		if !ok || (actingUser.ID != providerID && actingUser.Role != models.RoleAdmin) {
			includeInactive = false
		}
	}

	page, err := pageOptions(c)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	services, pagination, err := h.Catalog.ListByProvider(c.Request.Context(), providerID, includeInactive, page)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": services, "pagination": pagination})
}

// UpdateServiceHandler handles PATCH /api/services/:id (owner only). The body
// is decoded into a raw map so unknown and protected fields fail loudly.
func (h *ServiceHandler) UpdateServiceHandler(c *gin.Context) {
	actingUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, utils.ValidationError("invalid request body: %v", err))
		return
	}

	svc, err := h.Catalog.Update(c.Request.Context(), c.Param("id"), actingUser.ID, fields)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": svc})
}

// DeleteServiceHandler handles DELETE /api/services/:id (owner only).
func (h *ServiceHandler) DeleteServiceHandler(c *gin.Context) {
	actingUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	result, err := h.Catalog.Delete(c.Request.Context(), c.Param("id"), actingUser.ID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// pageOptions reads the shared limit/startAfter query parameters.
func pageOptions(c *gin.Context) (models.PageOptions, error) {
	page := models.PageOptions{StartAfter: c.Query("startAfter")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return page, utils.ValidationError("limit must be an integer")
		}
		page.Limit = limit
	}
	return page, nil
}

func optionalFloatQuery(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, utils.ValidationError("%s must be a number", name)
	}
	return &value, nil
}
